package configs

import (
	"errors"
	"log/slog"
)

// Get decodes the first value defined at path. An undefined path gives the
// zero value and no error.
func Get[T any](loader Loader, path string) (T, error) {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value, nil
		}
		return value, err
	}
	return value, nil
}

// Lookup is Get for providers: a broken or invalid config is logged and
// treated as undefined.
func Lookup[T any](loader Loader, logger *slog.Logger, path string) T {
	value, err := Get[T](loader, path)
	if err != nil {
		logger.Warn("bad config value, using default", "path", path, "error", err)
		var zero T
		return zero
	}
	return value
}
