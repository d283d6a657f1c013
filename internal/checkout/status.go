package checkout

// Status is the order-submission state machine position.
type Status string

const (
	StatusForm       Status = "FORM"
	StatusProcessing Status = "PROCESSING"
	StatusSuccess    Status = "SUCCESS"
)

func (s Status) IsTerminal() bool {
	return s == StatusSuccess
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo encodes the legal moves: FORM → PROCESSING on a
// validated submit, PROCESSING → SUCCESS on service success, and
// PROCESSING → FORM when the service fails.
func CanTransitionTo(from, to Status) bool {
	switch from {
	case StatusForm:
		return to == StatusProcessing
	case StatusProcessing:
		return to == StatusSuccess || to == StatusForm
	default:
		return false
	}
}
