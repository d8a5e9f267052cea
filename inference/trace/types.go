// Package trace provides a low-overhead event protocol for observing
// engine runs, a colored console formatter, and table rendering for
// working-memory dumps.
package trace

import "time"

// Event name constants following hierarchical naming.
const (
	// Engine lifecycle
	EngineRunBegin = "engine/run.begin"
	EngineCycle    = "engine/cycle"
	EngineFixpoint = "engine/fixpoint"

	// Rule evaluation
	RuleEvaluated = "rule/evaluated"

	// Working memory
	FactAsserted  = "fact/asserted"
	FactRetracted = "fact/retracted"

	// Persistence
	StoreSnapshot = "store/snapshot"
	StoreRestore  = "store/restore"
)

// Event is a single observation during an engine run.
type Event struct {
	Name    string                 // Event name using the constants above
	Start   time.Time              // Start timestamp
	End     time.Time              // End timestamp
	Latency time.Duration          // Duration (End - Start)
	Data    map[string]interface{} // Event-specific data
}

// Handler processes events as they occur. A nil Handler disables tracing.
type Handler func(event Event)

// Nop returns a handler that discards every event.
func Nop() Handler {
	return func(Event) {}
}

// Emit builds an event from a start time and data map and passes it to the
// handler, if any.
func Emit(h Handler, name string, start time.Time, data map[string]interface{}) {
	if h == nil {
		return
	}
	end := time.Now()
	h(Event{
		Name:    name,
		Start:   start,
		End:     end,
		Latency: end.Sub(start),
		Data:    data,
	})
}
