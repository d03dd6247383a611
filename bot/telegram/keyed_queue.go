package telegram

import "sync"

// keyedQueue orders work per key. enqueue is called in arrival order and
// returns a channel that closes when the previous item for the key is done.
type keyedQueue struct {
	mu    sync.Mutex
	tails map[int64]chan struct{}
}

func newKeyedQueue() *keyedQueue {
	return &keyedQueue{tails: make(map[int64]chan struct{})}
}

// enqueue reserves the next slot for key. wait is nil when nothing is ahead.
// done must be called exactly once when the work finishes.
func (q *keyedQueue) enqueue(key int64) (wait <-chan struct{}, done func()) {
	own := make(chan struct{})

	q.mu.Lock()
	if prev, ok := q.tails[key]; ok {
		wait = prev
	}
	q.tails[key] = own
	q.mu.Unlock()

	var once sync.Once
	return wait, func() {
		once.Do(func() {
			close(own)
			q.mu.Lock()
			if q.tails[key] == own {
				delete(q.tails, key)
			}
			q.mu.Unlock()
		})
	}
}

func (q *keyedQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tails)
}
