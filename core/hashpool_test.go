package core

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestHashPool_HashAndVerify(t *testing.T) {
	t.Parallel()

	pool := NewHashPool(NewHasher(fastHashParams), 2)
	defer pool.Close()

	ctx := context.Background()
	encoded, err := pool.Hash(ctx, "pw")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := pool.Verify(ctx, "pw", encoded)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}
}

func TestHashPool_ConcurrentCallers(t *testing.T) {
	t.Parallel()

	pool := NewHashPool(NewHasher(fastHashParams), 2)
	defer pool.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			encoded, err := pool.Hash(context.Background(), "pw")
			if err != nil {
				errs <- err
				return
			}
			if ok, err := pool.Verify(context.Background(), "pw", encoded); err != nil || !ok {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent hash/verify failed: %v", err)
	}
}

func TestHashPool_CancelledContext(t *testing.T) {
	t.Parallel()

	pool := NewHashPool(NewHasher(fastHashParams), 1)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := pool.Hash(ctx, "pw"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
