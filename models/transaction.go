package models

// TransactionStep is the lifecycle step of the last submitted transaction.
type TransactionStep int

const (
	TxIdle TransactionStep = iota
	TxWaitingConfirmation
	TxSubmitted
	TxConfirmed
	TxError
)

var transactionStepNames = map[TransactionStep]string{
	TxIdle:                "idle",
	TxWaitingConfirmation: "waitingConfirmation",
	TxSubmitted:           "transactionSubmitted",
	TxConfirmed:           "transactionConfirmed",
	TxError:               "error",
}

func (s TransactionStep) String() string {
	if name, ok := transactionStepNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseTransactionStep is the inverse of [TransactionStep.String].
func ParseTransactionStep(s string) (TransactionStep, bool) {
	for step, name := range transactionStepNames {
		if name == s {
			return step, true
		}
	}
	return TxIdle, false
}

// InFlight reports whether the step represents a pending transaction.
func (s TransactionStep) InFlight() bool {
	return s == TxWaitingConfirmation || s == TxSubmitted
}
