package concurrency

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAll(t *testing.T) {
	var count atomic.Int32
	task := func(context.Context) error {
		count.Add(1)
		return nil
	}

	require.NoError(t, RunAll(context.Background(), 2, task, task, task, task))
	assert.Equal(t, int32(4), count.Load())
}

func TestRunAllReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	cancelled := make(chan struct{})

	err := RunAll(context.Background(), 0,
		func(context.Context) error { return boom },
		func(ctx context.Context) error {
			<-ctx.Done()
			close(cancelled)
			return ctx.Err()
		},
	)

	assert.ErrorIs(t, err, boom)
	<-cancelled
}

func TestRunAllWithoutTasks(t *testing.T) {
	assert.NoError(t, RunAll(context.Background(), 3))
}
