package tools

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrorWithPrintContext runs a close function and logs the failure instead of
// returning it. Meant for deferred cleanup where the caller has no use for
// the error.
func ErrorWithPrintContext(closeFunc func() error, format string, args ...interface{}) {
	if err := closeFunc(); err != nil {
		context := fmt.Sprintf(format, args...)
		log.Errorf("error closing resource: %s, error: %v", context, err)
	}
}
