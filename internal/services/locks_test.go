package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockRegistry_SerializesSameEvent(t *testing.T) {
	r := NewLockRegistry()

	const workers = 8
	const iterations = 200
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				release := r.Acquire("ev-1")
				counter++
				release()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*iterations, counter)
}

func TestLockRegistry_DifferentEventsDoNotBlock(t *testing.T) {
	r := NewLockRegistry()

	release1 := r.Acquire("ev-1")
	defer release1()

	done := make(chan struct{})
	go func() {
		release2 := r.Acquire("ev-2")
		release2()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("acquiring a different event's lock blocked")
	}
}

func TestLockRegistry_ReleaseAllowsReacquire(t *testing.T) {
	r := NewLockRegistry()

	release := r.Acquire("ev-1")
	release()

	acquired := make(chan struct{})
	go func() {
		release := r.Acquire("ev-1")
		release()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("released lock could not be reacquired")
	}
}
