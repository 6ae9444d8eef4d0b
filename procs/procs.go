package procs

// Procs runs its stages in order. A stage returning a non-nil Proc is
// replaced by it, so a stage may loop or hand over to a sub-machine.
type Procs[C any] []Proc[C]

var _ Proc[any] = Procs[any]{}

func (p Procs[C]) Run(ctx C) (Proc[C], error) {
	if len(p) == 0 {
		return nil, nil
	}
	proc, err := p[0].Run(ctx)
	if err != nil {
		return nil, err
	}
	if proc == nil {
		return p[1:], nil
	}
	next := make(Procs[C], len(p))
	copy(next, p)
	next[0] = proc
	return next, nil
}
