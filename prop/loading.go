package prop

import "github.com/casualjim/tracked/events"

// LoadingState is the lifecycle of an asynchronous load as seen by observers.
type LoadingState string

const (
	LoadingIdle    LoadingState = "IDLE"
	LoadingLoading LoadingState = "LOADING"
	LoadingError   LoadingState = "ERROR"
	LoadingDone    LoadingState = "DONE"
)

func (s LoadingState) String() string {
	return string(s)
}

// LoadingStateBroker is a Prop restricted to loading states.
type LoadingStateBroker struct {
	*Prop[LoadingState]
}

// NewLoadingStateBroker creates a broker on emitter, starting at initial.
func NewLoadingStateBroker(emitter *events.Emitter, initial LoadingState) *LoadingStateBroker {
	if initial == "" {
		initial = LoadingIdle
	}
	return &LoadingStateBroker{Prop: NewProp(emitter, initial)}
}

func (b *LoadingStateBroker) SetIdle()    { b.Set(LoadingIdle) }
func (b *LoadingStateBroker) SetLoading() { b.Set(LoadingLoading) }
func (b *LoadingStateBroker) SetError()   { b.Set(LoadingError) }
func (b *LoadingStateBroker) SetDone()    { b.Set(LoadingDone) }

// LoadingStateEmitter owns a loading state broker and the emitter behind it.
type LoadingStateEmitter struct {
	State *LoadingStateBroker
}

// NewLoadingStateEmitter creates an emitter starting at initial, IDLE when
// initial is empty.
func NewLoadingStateEmitter(initial LoadingState, options ...events.Option) *LoadingStateEmitter {
	em := events.NewEmitter(append([]events.Option{events.WithName("loading")}, options...)...)
	return &LoadingStateEmitter{State: NewLoadingStateBroker(em, initial)}
}

func (e *LoadingStateEmitter) SetIdle()    { e.State.SetIdle() }
func (e *LoadingStateEmitter) SetLoading() { e.State.SetLoading() }
func (e *LoadingStateEmitter) SetError()   { e.State.SetError() }
func (e *LoadingStateEmitter) SetDone()    { e.State.SetDone() }
