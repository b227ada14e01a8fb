// Package events provides the synchronous pub/sub primitives the rest of the
// module is built on.
//
// Design decisions:
//   - One Emitter per owner: every entity owns a single Emitter and all of its
//     brokers are bound to it. The Emitter is the dispatch context and is never
//     exposed to subscribers.
//   - Named channels: a Broker is a named channel on an Emitter. Names are
//     generated unless WithEventName is given.
//   - Handler identity: Go funcs are not comparable, so callbacks are wrapped in
//     a *Handler. Registering the same *Handler twice keeps one registration.
//   - Synchronous delivery: Emit runs every handler, in registration order,
//     before it returns.
//   - Isolation: a panicking handler is recovered and logged; the remaining
//     handlers of the emission still run and the caller of Emit never sees it.
//
// Example usage:
//
//	em := events.NewEmitter()
//	saved := events.NewBroker[string](em)
//
//	h := events.NewHandler(func(id string) {
//	    fmt.Println("saved", id)
//	})
//	unregister := saved.Register(h)
//	defer unregister()
//
//	saved.Emit("42")
//
// An Emitter is not safe for concurrent use; all mutation and emission is
// expected to happen on one goroutine.
package events
