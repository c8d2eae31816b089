package dispatch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asyncify/future/dispatch"
)

func TestListenerStart(t *testing.T) {
	t.Parallel()

	t.Run("registers and dispatches", func(t *testing.T) {
		t.Parallel()

		l := dispatch.NewListener(dispatch.NewDispatcher(nil))
		sub, err := l.Start("/echo", headerEchoHandler)
		require.NoError(t, err)
		require.NotNil(t, sub)

		ex := dispatch.NewBufferExchange()
		dsub, err := l.Accept(dispatch.NewRequest("/echo", map[string][]string{"K": {"v1"}}), ex)
		require.NoError(t, err)

		_, err = dsub.Done().Await(2 * time.Second)
		require.NoError(t, err)
		assert.Equal(t, "K=v1;", ex.Content())
	})

	t.Run("second handler on an occupied path", func(t *testing.T) {
		t.Parallel()

		l := dispatch.NewListener(dispatch.NewDispatcher(nil))
		_, err := l.Start("/echo", headerEchoHandler)
		require.NoError(t, err)

		_, err = l.Start("/echo", headerEchoHandler)
		require.ErrorIs(t, err, dispatch.ErrPathTaken)
	})

	t.Run("unsubscribe frees the path", func(t *testing.T) {
		t.Parallel()

		l := dispatch.NewListener(dispatch.NewDispatcher(nil))
		sub, err := l.Start("/echo", headerEchoHandler)
		require.NoError(t, err)

		sub.Unsubscribe()
		sub.Unsubscribe() // idempotent

		_, err = l.Accept(dispatch.NewRequest("/echo", nil), dispatch.NewBufferExchange())
		require.ErrorIs(t, err, dispatch.ErrNoHandler)

		// the path can be taken again.
		_, err = l.Start("/echo", headerEchoHandler)
		require.NoError(t, err)
	})
}

func TestListenerContexts(t *testing.T) {
	t.Parallel()

	t.Run("before begin", func(t *testing.T) {
		t.Parallel()

		l := dispatch.NewListener(dispatch.NewDispatcher(nil))
		require.ErrorIs(t, l.CreateContext("/a", headerEchoHandler), dispatch.ErrNotStarted)
		require.ErrorIs(t, l.RemoveContext("/a"), dispatch.ErrNotStarted)
	})

	t.Run("after begin", func(t *testing.T) {
		t.Parallel()

		l := dispatch.NewListener(dispatch.NewDispatcher(nil))
		l.Begin()
		require.NoError(t, l.CreateContext("/a", headerEchoHandler))
		require.ErrorIs(t, l.CreateContext("/a", headerEchoHandler), dispatch.ErrPathTaken)
		require.NoError(t, l.RemoveContext("/a"))
		require.NoError(t, l.CreateContext("/a", headerEchoHandler))
	})
}

func TestListenerAccept(t *testing.T) {
	t.Parallel()

	t.Run("halted listener", func(t *testing.T) {
		t.Parallel()

		l := dispatch.NewListener(dispatch.NewDispatcher(nil))
		_, err := l.Start("/echo", headerEchoHandler)
		require.NoError(t, err)

		l.Halt()
		_, err = l.Accept(dispatch.NewRequest("/echo", nil), dispatch.NewBufferExchange())
		require.ErrorIs(t, err, dispatch.ErrNotStarted)
	})

	t.Run("in-flight dispatch survives unsubscribe", func(t *testing.T) {
		t.Parallel()

		l := dispatch.NewListener(dispatch.NewDispatcher(nil))
		sub, err := l.Start("/counter", countingHandler)
		require.NoError(t, err)

		ex := dispatch.NewBufferExchange()
		dsub, err := l.Accept(dispatch.NewRequest("/counter", nil), ex)
		require.NoError(t, err)

		// removing the registration must not stop the running dispatch.
		sub.Unsubscribe()
		before := len(ex.Content())
		require.Eventually(t, func() bool {
			return len(ex.Content()) > before
		}, 2*time.Second, time.Millisecond)

		// only the dispatch's own token stops it.
		dsub.Unsubscribe()
		_, err = dsub.Done().Await(2 * time.Second)
		require.NoError(t, err)
	})
}
