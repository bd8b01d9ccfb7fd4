// Copyright 2026 The go-rwlock Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package rwlock

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// semMutex is the default Mutex: a weighted semaphore of capacity one.
// The semaphore keeps its waiters in a FIFO list, which is what lets the
// fair variant's turnstile actually serve arrivals in order; timed waits
// ride on context deadlines.
type semMutex struct {
	sem *semaphore.Weighted
}

// DefaultMutexFactory is the MutexFactory used when a lock is
// constructed with a nil factory.
func DefaultMutexFactory() Mutex {
	return &semMutex{sem: semaphore.NewWeighted(1)}
}

func (m *semMutex) Acquire(blocking bool, timeout time.Duration) bool {
	if !blocking || timeout == 0 {
		return m.sem.TryAcquire(1)
	}
	if timeout < 0 {
		// Acquire on a background context only returns once the
		// semaphore is held.
		_ = m.sem.Acquire(context.Background(), 1)
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return m.sem.Acquire(ctx, 1) == nil
}

func (m *semMutex) Release() {
	m.sem.Release(1)
}
