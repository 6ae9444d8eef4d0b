package procs

// Proc is one stage of a state machine. Run returns the next stage, or nil
// when the machine should advance past this stage.
type Proc[C any] interface {
	Run(ctx C) (Proc[C], error)
}

type Func[C any] func(ctx C) (Proc[C], error)

var _ Proc[any] = Func[any](nil)

func (f Func[C]) Run(ctx C) (Proc[C], error) {
	return f(ctx)
}

// Drive runs proc and its successors until one returns nil or fails.
func Drive[C any](ctx C, proc Proc[C]) error {
	for proc != nil {
		next, err := proc.Run(ctx)
		if err != nil {
			return err
		}
		proc = next
	}
	return nil
}
