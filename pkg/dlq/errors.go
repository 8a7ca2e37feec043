package dlq

import (
	"errors"
	"fmt"

	"durableq/pkg/envelope"
)

// Sentinel errors surfaced by the durability queue's public operations, per
// the closed error taxonomy: Disabled, Io, Format, QuotaExceeded.
var (
	// ErrDisabled is returned by PersistBatch while the queue is configured
	// disabled (RunCleanup and Stats return zero values instead). Never
	// retried by callers.
	ErrDisabled = errors.New("dlq: disabled")

	// ErrIO wraps filesystem failures. Callers may retry on the next tick;
	// persist_batch propagates it to its caller unchanged.
	ErrIO = errors.New("dlq: io error")

	// ErrFormat wraps encode/decode failures. Replay never deletes the
	// offending file on a Format error.
	ErrFormat = envelope.ErrFormat

	// ErrQuotaExceeded is returned by the pre-flight quota check. The batch
	// is not written; the caller decides what to do (typically drop).
	ErrQuotaExceeded = errors.New("dlq: quota exceeded")
)

func ioErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrIO}, args...)...)
}
