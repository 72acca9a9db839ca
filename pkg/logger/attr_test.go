package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/securepipe/pkg/logger"
	"github.com/dmitrymomot/securepipe/pkg/token"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestStage(t *testing.T) {
	attr := logger.Stage("open")
	require.Equal(t, "stage", attr.Key)
	assert.Equal(t, "open", attr.Value.String())
}

func TestComponent(t *testing.T) {
	attr := logger.Component("securepipe")
	require.Equal(t, "component", attr.Key)
	assert.Equal(t, "securepipe", attr.Value.String())
}

func TestTokenVersion(t *testing.T) {
	attr := logger.TokenVersion(token.V2)
	require.Equal(t, "token_version", attr.Key)
	assert.Equal(t, "xchacha20-poly1305", attr.Value.String())

	empty := logger.TokenVersion(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestIdentity(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-e5f6-7890-1234-567890abcdef")
	attr := logger.Identity(id)
	require.Equal(t, "identity", attr.Key)
	assert.Equal(t, id.String(), attr.Value.String())

	empty := logger.Identity(uuid.Nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestMode(t *testing.T) {
	attr := logger.Mode("dynamic")
	require.Equal(t, "mode", attr.Key)
	assert.Equal(t, "dynamic", attr.Value.String())
}

func TestDuration(t *testing.T) {
	attr := logger.Duration(1500 * time.Millisecond)
	require.Equal(t, "duration", attr.Key)
	assert.Equal(t, slog.KindDuration, attr.Value.Kind())
	assert.Equal(t, 1500*time.Millisecond, attr.Value.Duration())
}
