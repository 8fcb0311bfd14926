// Package must wraps operations whose error return is almost always
// discarded (closing a file we only ever read, encoding a response we've
// already committed headers for) with a log-and-continue helper, so a
// discarded error still leaves a trace instead of a bare `_ =`.
package must

import (
	"io"

	"github.com/panefs/syncengine/pkg/logging"
)

// Close closes c, logging (rather than propagating) any error. Used for
// deferred closes on files opened for reading, where the caller has no
// meaningful recovery action.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("unable to close: %s", err.Error())
	}
}

// Encode invokes e's Encode method, logging (rather than propagating) any
// error. Used once a response's headers and status code are already
// written, at which point there is nothing left to do but log a failed
// encode.
func Encode(e interface {
	Encode(v any) error
}, value any, logger *logging.Logger) {
	if err := e.Encode(value); err != nil {
		logger.Warnf("unable to encode %v: %s", value, err.Error())
	}
}
