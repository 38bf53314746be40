package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// Sentinels de infraestructura compartidos por los adapters de storage.
var (
	ErrBuildQuery = cr.New("failed to build query")
	ErrExecQuery  = cr.New("failed to execute query")
	ErrScanRow    = cr.New("failed to scan row")
	ErrRemote     = cr.New("remote store request failed")
	ErrDecode     = cr.New("failed to decode stored data")
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark hace que errors.Is(err, markErr) sea true sin perder la causa original.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

func Is(err, target error) bool {
	return cr.Is(err, target)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
