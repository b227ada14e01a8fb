package events

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerRegisterAndEmit(t *testing.T) {
	em := NewEmitter()
	b := NewBroker[string](em)

	var got []string
	b.On(func(s string) { got = append(got, "first:"+s) })
	b.On(func(s string) { got = append(got, "second:"+s) })

	b.Emit("x")
	assert.Equal(t, []string{"first:x", "second:x"}, got)
}

func TestBrokerRegisterIsIdempotent(t *testing.T) {
	em := NewEmitter()
	b := NewBroker[int](em)

	calls := 0
	h := NewHandler(func(int) { calls++ })
	b.Register(h)
	b.Register(h)
	b.Register(h)

	b.Emit(1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, em.ListenerCount(b.EventName()))
}

func TestBrokerReRegisterMovesToEnd(t *testing.T) {
	em := NewEmitter()
	b := NewBroker[int](em)

	var order []string
	a := NewHandler(func(int) { order = append(order, "a") })
	c := NewHandler(func(int) { order = append(order, "c") })
	b.Register(a)
	b.Register(c)
	b.Register(a)

	b.Emit(0)
	assert.Equal(t, []string{"c", "a"}, order)
}

func TestBrokerUnregister(t *testing.T) {
	em := NewEmitter()
	b := NewBroker[int](em)

	calls := 0
	h := NewHandler(func(int) { calls++ })

	t.Run("unknown handler is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() { b.Unregister(h) })
	})

	t.Run("returned func unregisters", func(t *testing.T) {
		unregister := b.Register(h)
		b.Emit(1)
		unregister()
		unregister()
		b.Emit(2)
		assert.Equal(t, 1, calls)
		assert.False(t, b.HasHandlers())
	})
}

func TestBrokerRegisterOnce(t *testing.T) {
	em := NewEmitter()
	b := NewBroker[int](em)

	var got []int
	b.RegisterOnce(NewHandler(func(v int) { got = append(got, v) }))

	b.Emit(1)
	b.Emit(2)
	assert.Equal(t, []int{1}, got)

	t.Run("can be cancelled before firing", func(t *testing.T) {
		calls := 0
		unregister := b.RegisterOnce(NewHandler(func(int) { calls++ }))
		unregister()
		b.Emit(3)
		assert.Zero(t, calls)
	})
}

func TestBrokersShareEmitterButNotChannels(t *testing.T) {
	em := NewEmitter()
	a := NewBroker[string](em)
	b := NewBroker[string](em)
	require.NotEqual(t, a.EventName(), b.EventName())

	var got []string
	a.On(func(s string) { got = append(got, "a:"+s) })
	b.On(func(s string) { got = append(got, "b:"+s) })

	a.Emit("1")
	assert.Equal(t, []string{"a:1"}, got)

	t.Run("fixed event names share a channel", func(t *testing.T) {
		x := NewBroker[string](em, WithEventName("shared"))
		y := NewBroker[string](em, WithEventName("shared"))
		calls := 0
		x.On(func(string) { calls++ })
		y.Emit("go")
		assert.Equal(t, 1, calls)
		assert.Equal(t, "shared", x.EventName())
	})
}

func TestEmitUsesSnapshotOfHandlers(t *testing.T) {
	em := NewEmitter()
	b := NewBroker[int](em)

	var order []string
	late := NewHandler(func(int) { order = append(order, "late") })
	second := NewHandler(func(int) { order = append(order, "second") })
	b.On(func(int) {
		order = append(order, "first")
		b.Register(late)
		b.Unregister(second)
	})
	b.Register(second)

	b.Emit(1)
	assert.Equal(t, []string{"first", "second"}, order)

	order = nil
	b.Emit(2)
	assert.Equal(t, []string{"first", "late"}, order)
}

func TestPanickingHandlerIsIsolated(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var recovered []any
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	em := NewEmitter(
		WithName("test"),
		WithLogger(logger),
		WithMetrics(metrics),
		WithPanicHandler(func(_ string, r any) { recovered = append(recovered, r) }),
	)
	b := NewBroker[int](em, WithEventName("numbers"))

	var got []int
	b.On(func(v int) { got = append(got, v) })
	b.On(func(int) { panic("boom") })
	b.On(func(v int) { got = append(got, v*10) })

	assert.NotPanics(t, func() { b.Emit(1) })
	assert.NotPanics(t, func() { b.Emit(2) })

	assert.Equal(t, []int{1, 10, 2, 20}, got)
	assert.Equal(t, []any{"boom", "boom"}, recovered)
	assert.Contains(t, buf.String(), "event handler panicked")
	assert.Contains(t, buf.String(), "event=numbers")
	assert.Contains(t, buf.String(), "panic=boom")
	assert.Contains(t, buf.String(), "emitter=test")

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.emissions.WithLabelValues("test")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.panics.WithLabelValues("test")))
}

func TestEmitWithoutHandlersIsNotCounted(t *testing.T) {
	metrics := NewMetrics(nil)
	em := NewEmitter(WithName("quiet"), WithMetrics(metrics))
	b := NewBroker[int](em)

	b.Emit(1)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.emissions.WithLabelValues("quiet")))
	assert.Len(t, metrics.Collectors(), 2)
}

func TestNilPayloadForInterfaceTypes(t *testing.T) {
	em := NewEmitter()
	b := NewBroker[error](em)

	called := false
	b.On(func(err error) {
		called = true
		assert.NoError(t, err)
	})
	b.Emit(nil)
	assert.True(t, called)
}

func TestEmitterName(t *testing.T) {
	assert.Equal(t, "default", NewEmitter().Name())
	assert.Equal(t, "todo", NewEmitter(WithName("todo")).Name())
}

func TestEmitterEventNames(t *testing.T) {
	em := NewEmitter()
	a := NewBroker[int](em, WithEventName("b-saved"))
	b := NewBroker[int](em, WithEventName("a-saved"))
	NewBroker[int](em, WithEventName("idle"))
	assert.Empty(t, em.EventNames())

	unregister := a.On(func(int) {})
	b.On(func(int) {})
	assert.Equal(t, []string{"a-saved", "b-saved"}, em.EventNames())

	unregister()
	assert.Equal(t, []string{"a-saved"}, em.EventNames())
}
