package engine

import (
	"context"
	"sync"

	"github.com/travelrule/engine/internal/paymentmachine"
)

// TaskKind classifies what a background task actually did, per spec.md
// §4.6 "Tasks return either (action, action_result) or a bare
// SEND_REQUEST_FAILED / SEND_REQUEST_SUCCESS for pure retry tasks."
type TaskKind int

const (
	// TaskNone is returned by RunOnceBackground when the queue is empty.
	TaskNone TaskKind = iota
	// TaskAction is an action-dispatch task; Action/Outcome are set.
	TaskAction
	// TaskSendFailed is a pure send/retry task that failed.
	TaskSendFailed
	// TaskSendSucceeded is a pure send/retry task that succeeded.
	TaskSendSucceeded
)

// TaskResult is the outcome of one RunOnceBackground call.
type TaskResult struct {
	Kind    TaskKind
	Action  paymentmachine.ActionName
	Outcome paymentmachine.ActionOutcome
}

// task is a closure over (engine, ...) per spec.md §9: it must re-fetch
// whatever record state it needs from the Store rather than closing over
// a payment snapshot, since another task may have mutated it first.
type task func(ctx context.Context) TaskResult

// taskQueue is the FIFO background_tasks queue (spec.md §4.6).
type taskQueue struct {
	mu    sync.Mutex
	items []task
}

func newTaskQueue() *taskQueue {
	return &taskQueue{}
}

func (q *taskQueue) push(t task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, t)
}

func (q *taskQueue) pop() (task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	t := q.items[0]
	q.items = q.items[1:]
	return t, true
}
