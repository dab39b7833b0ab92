package core

import (
	"context"
	"sync"
)

// hashJob carries one hashing or verification request to a pool worker.
type hashJob struct {
	run  func() hashResult
	done chan hashResult
}

type hashResult struct {
	hash string
	ok   bool
	err  error
}

// HashPool runs password hashing on a fixed set of worker goroutines so the
// CPU-heavy argon2 work never occupies a request-handling goroutine. Callers
// block until their job completes or their context is cancelled; on
// cancellation the in-flight derivation still finishes in the worker and its
// result is discarded.
type HashPool struct {
	hasher *Hasher
	jobs   chan hashJob
	wg     sync.WaitGroup
	once   sync.Once
}

// NewHashPool starts workers goroutines over hasher. workers below 1 is
// clamped to 1.
func NewHashPool(hasher *Hasher, workers int) *HashPool {
	if workers < 1 {
		workers = 1
	}
	p := &HashPool{
		hasher: hasher,
		jobs:   make(chan hashJob),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *HashPool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		job.done <- job.run()
	}
}

// Hash derives a password hash on a pool worker.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	res, err := p.submit(ctx, func() hashResult {
		h, err := p.hasher.Hash(password)
		return hashResult{hash: h, err: err}
	})
	if err != nil {
		return "", err
	}
	return res.hash, res.err
}

// Verify checks a password against a stored hash on a pool worker.
func (p *HashPool) Verify(ctx context.Context, password, encoded string) (bool, error) {
	res, err := p.submit(ctx, func() hashResult {
		ok, err := p.hasher.Verify(password, encoded)
		return hashResult{ok: ok, err: err}
	})
	if err != nil {
		return false, err
	}
	return res.ok, res.err
}

func (p *HashPool) submit(ctx context.Context, run func() hashResult) (hashResult, error) {
	// Buffered so an abandoned worker send never blocks.
	job := hashJob{run: run, done: make(chan hashResult, 1)}

	if err := ctx.Err(); err != nil {
		return hashResult{}, err
	}

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}

	select {
	case res := <-job.done:
		return res, nil
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}
}

// Close stops accepting jobs and waits for the workers to drain.
func (p *HashPool) Close() {
	p.once.Do(func() {
		close(p.jobs)
		p.wg.Wait()
	})
}
