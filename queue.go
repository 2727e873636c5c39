package dirstore

import "sync"

// writeQueue runs deferred disk writes one at a time in submission
// order, preserving last-write-wins semantics for a key written twice.
//
// The worker goroutine starts lazily on first enqueue and exits once
// the queue drains, so an idle Directory holds no goroutine and needs
// no Close. Job failures have no caller to return to and are funneled
// to the diagnostics hook.
type writeQueue struct {
	mu      sync.Mutex
	jobs    []func() error
	running bool
	drained chan struct{}
}

func (q *writeQueue) enqueue(job func() error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.jobs = append(q.jobs, job)

	if !q.running {
		q.running = true
		q.drained = make(chan struct{})

		go q.drain()
	}
}

func (q *writeQueue) drain() {
	for {
		q.mu.Lock()

		if len(q.jobs) == 0 {
			q.running = false
			close(q.drained)
			q.mu.Unlock()

			return
		}

		job := q.jobs[0]
		q.jobs = q.jobs[1:]
		q.mu.Unlock()

		err := job()
		if err != nil {
			report(err)
		}
	}
}

// wait blocks until every job enqueued before the call has run.
func (q *writeQueue) wait() {
	q.mu.Lock()

	if !q.running {
		q.mu.Unlock()

		return
	}

	drained := q.drained
	q.mu.Unlock()

	<-drained
}
