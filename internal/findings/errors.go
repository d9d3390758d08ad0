package findings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTooFewCells           = errors.New("too few cells")
	ErrWrongCellType         = errors.New("wrong cell type")
	ErrBadgeMismatch         = errors.New("badge mismatch")
	ErrMissingExecutionCount = errors.New("missing execution count")
	ErrUnexpectedOutput      = errors.New("unexpected output")
	ErrMissingHelperWrapper  = errors.New("missing helper wrapper")
	ErrMalformedHeader       = errors.New("malformed header")
	ErrVersionMismatch       = errors.New("version mismatch")
	ErrIncorrectHeader       = errors.New("incorrect header")
	ErrInvalidNotebook       = errors.New("invalid notebook")
	ErrRepair                = errors.New("repair failed")
)

var kinds = []error{
	ErrTooFewCells,
	ErrWrongCellType,
	ErrBadgeMismatch,
	ErrMissingExecutionCount,
	ErrUnexpectedOutput,
	ErrMissingHelperWrapper,
	ErrMalformedHeader,
	ErrVersionMismatch,
	ErrIncorrectHeader,
	ErrInvalidNotebook,
	ErrRepair,
}

// Failure is a tagged, user-facing check failure. Error returns only the
// message so printed lines read naturally; Unwrap exposes the kind and any
// underlying cause for errors.Is.
type Failure struct {
	Kind    error
	Check   string
	Message string
	Err     error
}

func (f *Failure) Error() string {
	msg := strings.TrimSpace(f.Message)
	if msg == "" {
		msg = f.Kind.Error()
	}
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", msg, f.Err)
	}
	return msg
}

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Kind}
	}
	return []error{f.Kind, f.Err}
}

// New tags message with the provided kind. The kind should be one of the
// exported sentinel errors above.
func New(kind error, check, message string) error {
	return Wrap(kind, check, message, nil)
}

// Newf is New with fmt formatting.
func Newf(kind error, check, format string, args ...any) error {
	return Wrap(kind, check, fmt.Sprintf(format, args...), nil)
}

// Wrap tags an underlying error with a failure kind and message.
func Wrap(kind error, check, message string, err error) error {
	if kind == nil {
		kind = ErrInvalidNotebook
	}
	return &Failure{Kind: kind, Check: strings.TrimSpace(check), Message: message, Err: err}
}

// KindOf returns the sentinel kind carried by err, or nil when err is not a
// tagged failure.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// CheckOf returns the check name recorded on err, if any.
func CheckOf(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Check
	}
	return ""
}

// IsRepairFailure reports whether err came from the repair machinery itself
// rather than from notebook content.
func IsRepairFailure(err error) bool {
	return errors.Is(err, ErrRepair)
}
