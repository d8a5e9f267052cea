package engine

import "sort"

// Agenda orders the implications scheduled for evaluation: highest
// priority first, scheduling order preserved within equal priority.
type Agenda struct {
	pending []*Implication
	sorted  bool
}

func NewAgenda() *Agenda {
	return &Agenda{sorted: true}
}

// Schedule queues an implication for evaluation.
func (ag *Agenda) Schedule(imp *Implication) {
	ag.pending = append(ag.pending, imp)
	ag.sorted = false
}

// ScheduleAll queues a batch of implications in order.
func (ag *Agenda) ScheduleAll(imps []*Implication) {
	for _, imp := range imps {
		ag.Schedule(imp)
	}
}

// Next pops the highest-priority pending implication, nil when empty.
func (ag *Agenda) Next() *Implication {
	if len(ag.pending) == 0 {
		return nil
	}
	if !ag.sorted {
		sort.SliceStable(ag.pending, func(i, j int) bool {
			return ag.pending[i].Priority > ag.pending[j].Priority
		})
		ag.sorted = true
	}
	imp := ag.pending[0]
	ag.pending = ag.pending[1:]
	return imp
}

// IsEmpty reports whether anything is still pending.
func (ag *Agenda) IsEmpty() bool {
	return len(ag.pending) == 0
}

// Len returns the number of pending implications.
func (ag *Agenda) Len() int {
	return len(ag.pending)
}
