package hxregion

// Handler receives the arguments passed to Trigger.
type Handler func(args ...any)

type subscription struct {
	id   int
	fn   Handler
	once bool
}

// Events is a synchronous event emitter. The zero value is ready to use.
//
// Handlers run in registration order on the caller's goroutine. A handler
// may register or remove handlers, or trigger further events; changes take
// effect from the next Trigger.
type Events struct {
	subs   map[string][]subscription
	nextID int
}

// On registers fn for event and returns a function that removes it.
func (e *Events) On(event string, fn Handler) func() {
	return e.add(event, fn, false)
}

// Once registers fn to run on the next occurrence of event only.
func (e *Events) Once(event string, fn Handler) func() {
	return e.add(event, fn, true)
}

func (e *Events) add(event string, fn Handler, once bool) func() {
	if e.subs == nil {
		e.subs = make(map[string][]subscription)
	}
	e.nextID++
	id := e.nextID
	e.subs[event] = append(e.subs[event], subscription{id: id, fn: fn, once: once})
	return func() { e.remove(event, id) }
}

func (e *Events) remove(event string, id int) {
	subs := e.subs[event]
	for i, s := range subs {
		if s.id == id {
			e.subs[event] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(e.subs[event]) == 0 {
		delete(e.subs, event)
	}
}

// Off removes every handler for event.
func (e *Events) Off(event string) {
	delete(e.subs, event)
}

// Trigger calls the handlers registered for event.
func (e *Events) Trigger(event string, args ...any) {
	subs := e.subs[event]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)

	for _, s := range snapshot {
		if s.once {
			e.remove(event, s.id)
		}
		s.fn(args...)
	}
}

// TriggerMethod is Trigger under the name owners expose to regions.
func (e *Events) TriggerMethod(event string, args ...any) {
	e.Trigger(event, args...)
}
