package order

import "fmt"

type outcomeStatus int

const (
	statusContinue outcomeStatus = iota
	statusRetryable
	statusFatal
)

// StepOutcome is the only thing a pipeline step may produce. A step converts
// every internal fault into one of the three variants; nothing else crosses
// the pipeline boundary.
type StepOutcome struct {
	status  outcomeStatus
	reasons []string
}

// Continue lets the next step run.
func Continue() StepOutcome {
	return StepOutcome{status: statusContinue}
}

// Retryable marks a transient failure: the whole batch is eligible for a
// fresh attempt from the first step.
func Retryable(format string, args ...any) StepOutcome {
	return StepOutcome{status: statusRetryable, reasons: []string{fmt.Sprintf(format, args...)}}
}

// Fatal marks a structural failure another attempt cannot fix.
func Fatal(format string, args ...any) StepOutcome {
	return StepOutcome{status: statusFatal, reasons: []string{fmt.Sprintf(format, args...)}}
}

func (o StepOutcome) ShouldContinue() bool { return o.status == statusContinue }
func (o StepOutcome) IsRetryable() bool    { return o.status == statusRetryable }
func (o StepOutcome) IsFatal() bool        { return o.status == statusFatal }

// Reasons returns the human-readable failure reasons, surfaced verbatim to
// the notification sink.
func (o StepOutcome) Reasons() []string { return o.reasons }
