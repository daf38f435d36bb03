package shutdown_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusportal/pkg/shutdown"
)

func TestRunExecutesAllHooks(t *testing.T) {
	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}
	failing := func(context.Context) error {
		calls.Add(1)
		return errors.New("close failed")
	}

	shutdown.Run(context.Background(), time.Second, hook, failing, hook)

	assert.Equal(t, int32(3), calls.Load())
}

func TestRunRespectsTimeout(t *testing.T) {
	slow := func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(time.Second)
		return ctx.Err()
	}

	start := time.Now()
	shutdown.Run(context.Background(), 50*time.Millisecond, slow)

	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestWaitExecutesHooksOnSignal(t *testing.T) {
	called := make(chan struct{})
	hook := func(context.Context) error {
		close(called)
		return nil
	}

	go shutdown.Wait(context.Background(), time.Second, hook)

	time.Sleep(100 * time.Millisecond)

	process, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, process.Signal(syscall.SIGTERM))

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("hook was not called")
	}
}
