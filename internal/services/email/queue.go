// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package email

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Message is a queued outgoing mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message. Satisfied by *Service.
type Sender interface {
	Send(m Message) error
}

// Queue decouples mail delivery from the request/response cycle. Enqueue
// returns immediately; a single worker delivers in the background and logs
// failures. No retries: a failed send is terminal (spotted in the logs only).
type Queue struct {
	sender Sender
	jobs   chan job
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

type job struct {
	id  string
	msg Message
}

// NewQueue starts the delivery worker. A nil sender turns the queue into a
// no-op that only logs, for setups without SMTP configured.
func NewQueue(sender Sender, size int) *Queue {
	if size <= 0 {
		size = 64
	}
	q := &Queue{
		sender: sender,
		jobs:   make(chan job, size),
		done:   make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue schedules a message for delivery and returns immediately. When the
// queue is full or already closed the message is dropped and logged, never
// blocking or panicking in a request.
func (q *Queue) Enqueue(m Message) {
	j := job{id: uuid.New().String(), msg: m}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		slog.Error("mail queue closed, message dropped", "job_id", j.id, "to", m.To)
		return
	}
	select {
	case q.jobs <- j:
		slog.Debug("mail queued", "job_id", j.id, "to", m.To, "subject", m.Subject)
	default:
		slog.Error("mail queue full, message dropped", "job_id", j.id, "to", m.To)
	}
}

// Close stops accepting jobs and drains the queue until done or the context
// expires. Safe to call more than once.
func (q *Queue) Close(ctx context.Context) {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
	case <-ctx.Done():
		slog.Warn("mail queue drain timed out")
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for j := range q.jobs {
		if q.sender == nil {
			slog.Info("mail skipped, SMTP not configured", "job_id", j.id, "to", j.msg.To, "subject", j.msg.Subject)
			continue
		}
		if err := q.sender.Send(j.msg); err != nil {
			// Fire and forget: the enclosing request already answered.
			slog.Error("mail delivery failed", "job_id", j.id, "to", j.msg.To, "error", err)
			continue
		}
		slog.Info("mail delivered", "job_id", j.id, "to", j.msg.To)
	}
}
