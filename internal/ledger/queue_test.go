package ledger_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/bridge/bridgetest"
	"github.com/veilbrowser/veil/internal/domain/entity"
	"github.com/veilbrowser/veil/internal/ledger"
)

func waitForStatus(t *testing.T, q *ledger.Queue, id entity.BookmarkID, want ledger.TaskStatus) *ledger.Task {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if task := q.Status(id); task != nil && task.Status == want {
			return task
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("bookmark %s never reached status %s", id, want)
	return nil
}

func TestQueue_SuccessfulSync(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("bookmarks.syncToLedger", map[string]any{
		"success":        true,
		"transaction_id": "at1tx",
	})
	client := bridge.New(transport, zerolog.Nop())

	q := ledger.NewQueue(client, zerolog.Nop())
	defer q.Close()

	bm := entity.NewBookmark("https://aleo.org", "Aleo")
	bm.ID = "bm-1"
	require.True(t, q.Enqueue(bm))

	task := waitForStatus(t, q, "bm-1", ledger.TaskSuccess)
	assert.Equal(t, "at1tx", task.TransactionID)
	assert.Empty(t, task.Error)
}

func TestQueue_FailureIsObservableWithoutRetry(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("bookmarks.syncToLedger", map[string]any{
		"success": false,
		"error":   "proof generation failed",
	})
	client := bridge.New(transport, zerolog.Nop())

	q := ledger.NewQueue(client, zerolog.Nop())
	defer q.Close()

	bm := entity.NewBookmark("https://example.com", "Example")
	bm.ID = "bm-2"
	require.True(t, q.Enqueue(bm))

	task := waitForStatus(t, q, "bm-2", ledger.TaskFailed)
	assert.Equal(t, "proof generation failed", task.Error)

	// No automatic retry: exactly one host call.
	assert.Equal(t, 1, transport.CallCount("bookmarks.syncToLedger"))
}

func TestQueue_DuplicateEnqueueIgnoredWhilePending(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	client := bridge.New(transport, zerolog.Nop())

	q := ledger.NewQueue(client, zerolog.Nop())
	defer q.Close()

	bm := entity.NewBookmark("https://example.com", "Example")
	bm.ID = "bm-3"

	require.True(t, q.Enqueue(bm))
	waitForStatus(t, q, "bm-3", ledger.TaskSuccess)

	// A completed task may be re-enqueued.
	assert.True(t, q.Enqueue(bm))
}

func TestQueue_StatusUnknownBookmark(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	client := bridge.New(transport, zerolog.Nop())

	q := ledger.NewQueue(client, zerolog.Nop())
	defer q.Close()

	assert.Nil(t, q.Status("never-seen"))
}

func TestEncodeBookmark_FourValidFields(t *testing.T) {
	bm := entity.NewBookmark("https://aleo.org", "Aleo")
	fields := ledger.EncodeBookmark(bm)

	require.Len(t, fields, 4)
	for _, f := range fields {
		assert.NoError(t, f.Validate())
	}

	// Deterministic for identical content.
	assert.Equal(t, fields, ledger.EncodeBookmark(entity.NewBookmark("https://aleo.org", "Aleo")))

	// Different content diverges.
	other := ledger.EncodeBookmark(entity.NewBookmark("https://aleo.org", "Other"))
	assert.NotEqual(t, fields, other)
}
