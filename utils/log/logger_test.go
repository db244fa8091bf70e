package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithCtxCarriesSessionFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := logger
	logger = zap.New(core)
	defer func() { logger = prev }()

	ctx := context.WithValue(context.Background(), "session_id", "abc-123")
	ctx = context.WithValue(ctx, "role", "Backend Engineer")
	WithCtx(ctx).Info("turn handled")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abc-123", fields["session_id"])
	assert.Equal(t, "Backend Engineer", fields["role"])
}

func TestWithCtxWithoutValues(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := logger
	logger = zap.New(core)
	defer func() { logger = prev }()

	WithCtx(context.Background()).Info("no session")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Context)
}
