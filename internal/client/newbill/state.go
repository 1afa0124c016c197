package newbill

// State of the in-progress submission.
type State int

const (
	StateIdle State = iota
	StateFileSelected
	StateSubmitting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFileSelected:
		return "file-selected"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
