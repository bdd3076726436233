package models

// Evaluation is the tri-state review status of a check-in or join request.
// It is stored as a nullable boolean (NULL / true / false); the enum exists so
// that "explicitly pending" and "field omitted" cannot be conflated in update
// paths.
type Evaluation string

const (
	EvaluationPending  Evaluation = "pending"
	EvaluationApproved Evaluation = "approved"
	EvaluationRejected Evaluation = "rejected"
)

func (evaluation Evaluation) Valid() bool {
	switch evaluation {
	case EvaluationPending, EvaluationApproved, EvaluationRejected:
		return true
	}
	return false
}

// Confirmed returns the storage representation: nil for pending, otherwise
// the boolean verdict.
func (evaluation Evaluation) Confirmed() *bool {
	switch evaluation {
	case EvaluationApproved:
		value := true
		return &value
	case EvaluationRejected:
		value := false
		return &value
	}
	return nil
}

func EvaluationFromConfirmed(confirmed *bool) Evaluation {
	if confirmed == nil {
		return EvaluationPending
	}
	if *confirmed {
		return EvaluationApproved
	}
	return EvaluationRejected
}
