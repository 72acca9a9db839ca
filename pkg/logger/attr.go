package logger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Stage records the processing stage under the key "stage".
func Stage(name string) slog.Attr {
	return slog.String("stage", name)
}

// TokenVersion records the token format under the key "token_version".
func TokenVersion(v fmt.Stringer) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.String("token_version", v.String())
}

// Identity records a token identity under the key "identity".
// The nil UUID yields an empty Attr.
func Identity(id uuid.UUID) slog.Attr {
	if id == uuid.Nil {
		return slog.Attr{}
	}
	return slog.String("identity", id.String())
}

// Mode records the identity mode under the key "mode".
func Mode(mode string) slog.Attr {
	return slog.String("mode", mode)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
