package careers

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// NotFoundError represents missing records from repository lookups. It is
// raised only when the underlying record itself is absent; a career without
// translations is not an error condition.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// WrapTransient tags an infrastructure failure (timeout, dropped connection)
// so callers can distinguish it from domain conditions. Callers retry these
// once before surfacing them.
func WrapTransient(err error, msg string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, goerrors.CategoryExternal) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, msg).
		WithTextCode("CATALOG_STORE_TRANSIENT")
}

// IsTransient reports whether err represents a transient store failure.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return goerrors.IsCategory(err, goerrors.CategoryExternal)
}
