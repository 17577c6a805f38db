package ledger

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/domain/entity"
)

// TaskStatus is the observable state of one queued sync.
type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskSyncing TaskStatus = "syncing"
	TaskSuccess TaskStatus = "success"
	TaskFailed  TaskStatus = "failed"
)

// Task is one bookmark sync in the queue.
type Task struct {
	BookmarkID    entity.BookmarkID
	Status        TaskStatus
	TransactionID string
	Error         string
}

// Queue runs bookmark ledger syncs on a single background worker. Delivery
// is at-most-once: a failed task stays failed until the caller re-enqueues
// it. There is deliberately no automatic retry or backoff.
type Queue struct {
	client *bridge.Client
	log    zerolog.Logger

	mu    sync.Mutex
	tasks map[entity.BookmarkID]*Task

	work chan workItem
	done chan struct{}
	wg   sync.WaitGroup
}

type workItem struct {
	id     entity.BookmarkID
	fields []entity.Literal
}

// NewQueue creates and starts a sync queue.
func NewQueue(client *bridge.Client, log zerolog.Logger) *Queue {
	q := &Queue{
		client: client,
		log:    log.With().Str("component", "ledger").Logger(),
		tasks:  make(map[entity.BookmarkID]*Task),
		work:   make(chan workItem, 64),
		done:   make(chan struct{}),
	}
	q.wg.Add(1)
	go q.worker()
	return q
}

// Enqueue schedules a bookmark for ledger sync. A bookmark already pending
// or syncing is not enqueued twice; a failed one is reset and retried.
func (q *Queue) Enqueue(bm *entity.Bookmark) bool {
	fields := EncodeBookmark(bm)

	q.mu.Lock()
	if t, ok := q.tasks[bm.ID]; ok && (t.Status == TaskPending || t.Status == TaskSyncing) {
		q.mu.Unlock()
		return false
	}
	q.tasks[bm.ID] = &Task{BookmarkID: bm.ID, Status: TaskPending}
	q.mu.Unlock()

	select {
	case q.work <- workItem{id: bm.ID, fields: fields}:
		return true
	case <-q.done:
		q.setStatus(bm.ID, TaskFailed, "", "sync queue closed")
		return false
	}
}

// Status returns the task for a bookmark, or nil if never enqueued.
func (q *Queue) Status(id entity.BookmarkID) *Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	if t, ok := q.tasks[id]; ok {
		copied := *t
		return &copied
	}
	return nil
}

// Snapshot returns a copy of all known tasks.
func (q *Queue) Snapshot() []Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Task, 0, len(q.tasks))
	for _, t := range q.tasks {
		out = append(out, *t)
	}
	return out
}

// Close stops the worker. Queued but unstarted tasks are marked failed.
func (q *Queue) Close() {
	close(q.done)
	q.wg.Wait()

	for {
		select {
		case item := <-q.work:
			q.setStatus(item.id, TaskFailed, "", "sync queue closed")
		default:
			return
		}
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.done:
			return
		case item := <-q.work:
			q.run(item)
		}
	}
}

func (q *Queue) run(item workItem) {
	q.setStatus(item.id, TaskSyncing, "", "")

	res := q.client.Bookmarks.SyncToLedger(context.Background(), item.id, item.fields)
	if res.Failed() {
		q.log.Warn().
			Str("bookmark_id", string(item.id)).
			Str("error", res.Error).
			Msg("ledger sync failed")
		q.setStatus(item.id, TaskFailed, "", res.Error)
		return
	}

	q.log.Debug().
		Str("bookmark_id", string(item.id)).
		Str("tx_id", res.TransactionID).
		Msg("ledger sync submitted")
	q.setStatus(item.id, TaskSuccess, res.TransactionID, "")
}

func (q *Queue) setStatus(id entity.BookmarkID, status TaskStatus, txID, errMsg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	t, ok := q.tasks[id]
	if !ok {
		t = &Task{BookmarkID: id}
		q.tasks[id] = t
	}
	t.Status = status
	if txID != "" {
		t.TransactionID = txID
	}
	t.Error = errMsg
}
