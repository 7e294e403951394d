package chat

import "sync"

// lineQueue is an unbounded FIFO of text lines. Producers never block, so
// command fan-out cannot stall on a slow session. After Close, Pop keeps
// yielding whatever is already queued and then reports exhaustion.
type lineQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []string
	closed bool
}

func newLineQueue() *lineQueue {
	q := &lineQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a line. Returns false if the queue is already closed.
func (q *lineQueue) Push(line string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, line)
	q.cond.Signal()
	return true
}

// Pop blocks until a line is available or the queue is closed and drained.
func (q *lineQueue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return "", false
	}
	line := q.items[0]
	q.items = q.items[1:]
	return line, true
}

// Close is idempotent. Blocked Pop calls wake up once the queue drains.
func (q *lineQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

func (q *lineQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
