package models

import "fmt"

// FailureKind classifies the recoverable failures of the scan pipeline.
type FailureKind int

const (
	DecoderInitFailure FailureKind = iota
	InvalidDetection
	LookupFailure
	InvalidManualEntry
)

func (k FailureKind) String() string {
	switch k {
	case DecoderInitFailure:
		return "decoder_init_failure"
	case InvalidDetection:
		return "invalid_detection"
	case LookupFailure:
		return "lookup_failure"
	case InvalidManualEntry:
		return "invalid_manual_entry"
	default:
		return "unknown"
	}
}

// Failure is a non-fatal error tagged with its kind.
type Failure struct {
	Kind FailureKind
	Op   string
	Err  error
}

func NewFailure(kind FailureKind, op string, err error) *Failure {
	return &Failure{Kind: kind, Op: op, Err: err}
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Op, f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Op, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Is matches another *Failure of the same kind, so callers can write
// errors.Is(err, &Failure{Kind: LookupFailure}).
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok {
		return false
	}
	return t.Kind == f.Kind && (t.Op == "" || t.Op == f.Op)
}
