// Package errs carries the cutting engine's error taxonomy (spec §7): a typed *Error
// with a numeric code, so callers can discriminate InvalidInput/UnsupportedCodecCombo/
// BitstreamAnomaly/TimestampAnomaly/Cancelled/Fatal without string matching.
package errs

import (
	"github.com/pkg/errors"
)

const (
	CodeInvalidInput         = 1001
	CodeUnsupportedCodecCombo = 1002
	CodeBitstreamAnomaly     = 1003
	CodeTimestampAnomaly     = 1004
	CodeCancelled            = 1005
	CodeFatal                = 1006
	CodeUnknown              = 9999
)

var (
	ErrCancelled = New(CodeCancelled, "cut cancelled")
)

const (
	Success = "success"
)

// Error is a code-carrying error. Code() and Msg() below are the intended accessors;
// callers should not type-assert directly so that wrapped errors keep working.
type Error struct {
	Code int32
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func New(code int32, msg string) error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// InvalidInput reports a malformed request: unreadable source, empty track set,
// overlapping/negative intervals, or a container/codec mismatch at output time.
func InvalidInput(format string, args ...interface{}) error {
	return New(CodeInvalidInput, errors.Wrapf(errors.New("invalid input"), format, args...).Error())
}

// UnsupportedCodecCombo reports that the requested encoder cannot realize the
// requested profile (e.g. VP9 profile >= 2), with a directive to fall back to
// keyframes mode.
func UnsupportedCodecCombo(format string, args ...interface{}) error {
	return New(CodeUnsupportedCodecCombo, errors.Wrapf(errors.New("unsupported codec combination"), format, args...).Error()+"; use keyframes mode instead")
}

// BitstreamAnomaly reports a malformed NAL or missing extradata. Most call sites
// recover locally (classifier returns "unknown", look-ahead logs and skips) and never
// surface this to a caller; it exists for the cases that can't recover.
func BitstreamAnomaly(format string, args ...interface{}) error {
	return New(CodeBitstreamAnomaly, errors.Wrapf(errors.New("bitstream anomaly"), format, args...).Error())
}

// Fatal reports an unrecoverable I/O or codec-initialization failure.
func Fatal(err error, format string, args ...interface{}) error {
	wrapped := errors.Wrapf(err, format, args...)
	return New(CodeFatal, wrapped.Error())
}

func Code(e error) int32 {
	if e == nil {
		return 0
	}
	var err *Error
	if !errors.As(e, &err) {
		return CodeUnknown
	}

	if err == (*Error)(nil) {
		return 0
	}
	return err.Code
}

func Msg(e error) string {
	if e == nil {
		return Success
	}
	err, ok := e.(*Error)
	if !ok {
		return "unknown error: " + e.Error()
	}

	if err == (*Error)(nil) {
		return Success
	}

	return err.Msg
}

func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// IsCancelled reports whether err is (or wraps) the Cancelled sentinel code.
func IsCancelled(err error) bool {
	return Code(err) == CodeCancelled
}
