package powerbay

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
)

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           log.GetLevel(),
		ReportTimestamp: true,
	})
}

// joinErrors returns nil for an empty slice.
func joinErrors(errs []error) error {
	return errors.Join(errs...)
}
