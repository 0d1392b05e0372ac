package utils

import (
	"context"
	"sync"
)

// MailBox is an unbounded FIFO queue with a single consumer. Post never
// blocks, so two actors messaging each other can not wedge on a full buffer.
// Messages from one sender are received in the order they were posted.
type MailBox[T any] struct {
	mu     sync.Mutex
	queue  []T
	notify chan struct{}
	closed bool
}

func NewMailBox[T any]() *MailBox[T] {
	return &MailBox[T]{
		notify: make(chan struct{}, 1),
	}
}

// Post appends msg to the queue. It returns false once the mailbox is closed.
func (mb *MailBox[T]) Post(msg T) bool {
	mb.mu.Lock()
	if mb.closed {
		mb.mu.Unlock()
		return false
	}
	mb.queue = append(mb.queue, msg)
	mb.mu.Unlock()
	mb.wake()
	return true
}

// Receive blocks until a message is available, the mailbox is closed and
// drained (ok == false), or ctx is done.
func (mb *MailBox[T]) Receive(ctx context.Context) (msg T, ok bool, err error) {
	for {
		mb.mu.Lock()
		if len(mb.queue) != 0 {
			msg = mb.queue[0]
			var zero T
			mb.queue[0] = zero
			mb.queue = mb.queue[1:]
			mb.mu.Unlock()
			return msg, true, nil
		}
		if mb.closed {
			mb.mu.Unlock()
			return msg, false, nil
		}
		mb.mu.Unlock()
		select {
		case <-ctx.Done():
			return msg, false, ctx.Err()
		case <-mb.notify:
		}
	}
}

func (mb *MailBox[T]) Close() {
	mb.mu.Lock()
	mb.closed = true
	mb.mu.Unlock()
	mb.wake()
}

func (mb *MailBox[T]) Len() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return len(mb.queue)
}

func (mb *MailBox[T]) wake() {
	select {
	case mb.notify <- struct{}{}:
	default:
	}
}
