package middle

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunID(t *testing.T) {
	id := NewRunID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	ctx := WithRunID(context.Background(), id)
	assert.Equal(t, id, RunIDFrom(ctx))
	assert.Empty(t, RunIDFrom(context.Background()))
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	ctx := WithRunID(context.Background(), "run-1")

	called := false
	err := LoggingMiddleware(logger, "count")(func(ctx context.Context) error {
		called = true
		return nil
	})(ctx)

	require.NoError(t, err)
	assert.True(t, called)

	entries := logs.FilterMessage("Stage completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "count", fields["stage"])
	assert.Equal(t, "run-1", fields["run_id"])
}

func TestLoggingMiddlewareRecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	err := LoggingMiddleware(zap.New(core), "boom")(func(ctx context.Context) error {
		panic("index out of range")
	})(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "index out of range")
	assert.Equal(t, 1, logs.FilterMessage("Stage panicked").Len())
}

func TestChainStopsAtFirstError(t *testing.T) {
	sentinel := errors.New("load failed")
	var ran []string

	stage := func(name string, err error) NamedStage {
		return NamedStage{Name: name, Run: func(ctx context.Context) error {
			ran = append(ran, name)
			return err
		}}
	}

	err := Chain(context.Background(), zap.NewNop(), []NamedStage{
		stage("load", sentinel),
		stage("count", nil),
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, []string{"load"}, ran)
}

func TestChainHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Chain(ctx, zap.NewNop(), []NamedStage{{Name: "load", Run: func(context.Context) error {
		t.Fatal("stage should not run")
		return nil
	}}})

	assert.ErrorIs(t, err, context.Canceled)
}
