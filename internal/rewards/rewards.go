package rewards

import (
	"context"
	"time"

	"github.com/google/uuid"

	"codeberg.org/wayfare/server/internal/logger"
)

// Task is one post-generation side effect (points, streaks, notifications).
// Tasks are queued after the terminal state is reached and run in their
// own failure domain: nothing here can affect a generation result.
type Task struct {
	ID        string
	UserID    string
	RequestID string
	Kind      string
}

const (
	KindGenerationReward = "generation_reward"
)

// Awarder applies one reward task; implemented by the gamification service
type Awarder interface {
	Award(ctx context.Context, task Task) error
}

// LogAwarder records tasks without applying them; used when no
// gamification backend is configured and in tests
type LogAwarder struct{}

func (LogAwarder) Award(_ context.Context, task Task) error {
	logger.Info("reward task (no awarder configured)",
		"task_id", task.ID,
		"user_id", task.UserID,
		"kind", task.Kind,
	)

	return nil
}

const (
	queueCapacity = 256
	awardTimeout  = 10 * time.Second
)

// Queue schedules reward tasks on a single worker goroutine
type Queue struct {
	awarder Awarder
	tasks   chan Task
	done    chan struct{}
}

func NewQueue(awarder Awarder) *Queue {
	if awarder == nil {
		awarder = LogAwarder{}
	}

	return &Queue{
		awarder: awarder,
		tasks:   make(chan Task, queueCapacity),
		done:    make(chan struct{}),
	}
}

// starts the worker; call once
func (q *Queue) Start() {
	go q.run()
}

// Enqueue schedules a reward for the user; a full queue drops the task
// rather than blocking the caller
func (q *Queue) Enqueue(userID, requestID, kind string) {
	task := Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		RequestID: requestID,
		Kind:      kind,
	}

	select {
	case q.tasks <- task:
	default:
		logger.Warn("reward queue full, dropping task",
			"user_id", userID,
			"kind", kind,
		)
	}
}

// Stop drains pending tasks and stops the worker
func (q *Queue) Stop() {
	close(q.tasks)
	<-q.done
}

func (q *Queue) run() {
	defer close(q.done)

	for task := range q.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), awardTimeout)

		if err := q.awarder.Award(ctx, task); err != nil {
			// best effort: reward failures never surface to the caller
			logger.ErrorErr(err, "reward task failed",
				"task_id", task.ID,
				"user_id", task.UserID,
				"kind", task.Kind,
			)
		}

		cancel()
	}
}
