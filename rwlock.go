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

// Package rwlock provides reader-writer locks assembled from plain binary
// mutexes, in three scheduling flavors.
//
// A reader-writer lock admits two kinds of client: readers, which may run
// concurrently with other readers, and writers, which demand exclusive
// access.  Where the flavors differ is in what happens when both kinds are
// contending at once:
//
//	+-----------------+---------------------------------------------------------+
//	| Variant         | Discipline under contention                             |
//	+-----------------+---------------------------------------------------------+
//	| ReadPreferred   | Readers join any in-progress read group; a steady       |
//	|                 | stream of readers delays a waiting writer indefinitely. |
//	| WritePreferred  | The first waiting writer gates all later readers; the   |
//	|                 | writer (and any writers arriving with it) go first.     |
//	| Fair            | Readers and writers are serviced in arrival order;      |
//	|                 | neither class can starve the other.                     |
//	+-----------------+---------------------------------------------------------+
//
// Each lock is built from a handful of binary mutexes produced by a
// MutexFactory, plus integer counters.  Nothing else: no condition
// variables, no atomics, no goroutines of its own.  The factory defaults
// to a FIFO semaphore-backed mutex, but any implementation of the Mutex
// contract may be substituted.
//
// Clients do not acquire a lock directly.  They ask it for a Guard, a
// small single-owner handle over one side of the lock:
//
//	rw := rwlock.NewWritePreferred(nil)
//
//	r := rw.Reader()
//	if r.Acquire(true, 50*time.Millisecond) {
//		defer r.Release()
//		// ... read ...
//	}
//
//	w := rw.Writer()
//	w.Do(func() {
//		// ... write, exclusively ...
//	})
//
// Every Acquire, timed or not, is all-or-nothing: when it returns false the
// lock is in a state indistinguishable from "never tried" -- every internal
// mutex taken along the way has been released and every counter incremented
// along the way has been decremented, in LIFO order.
//
// The locks are not reentrant.  A goroutine holding the writer side that
// acquires the reader side (or vice versa) deadlocks, as does taking the
// writer side again through a second guard of the same lock.  A second
// reader guard taken by a goroutine that already reads succeeds only while
// no waiting writer has closed the way to new readers (WritePreferred and
// Fair); once one has, it deadlocks too.
package rwlock

import "time"

// An RWLock hands out reader and writer guards over one shared resource.
// The three variants in this package are interchangeable behind it.
type RWLock interface {
	// Reader returns a new guard for the shared side of the lock.
	Reader() *Guard
	// Writer returns a new guard for the exclusive side of the lock.
	Writer() *Guard
}

// Mutex is the binary lock the variants are built from.  Acquire with
// blocking true and a negative timeout waits indefinitely and always
// returns true; with a non-negative timeout it waits at most that long.
// Acquire with blocking false returns immediately, ignoring timeout.
// Release may only be called by the holder; it never blocks and never
// fails.  The variants lean on these semantics being strict, in
// particular on Release being infallible: the unwind performed when a
// timed acquire gives up partway has no way to report an error.
type Mutex interface {
	Acquire(blocking bool, timeout time.Duration) bool
	Release()
}

// A MutexFactory yields a fresh, independent Mutex per call.
type MutexFactory func() Mutex

// A deadline is the absolute monotonic instant at which a multi-stage
// acquire must give up.  It is computed once at entry; each stage of the
// acquire then draws down whatever budget is left.
type deadline struct {
	at       time.Time
	infinite bool
}

func newDeadline(blocking bool, timeout time.Duration) deadline {
	if blocking && timeout < 0 {
		return deadline{infinite: true}
	}
	if !blocking {
		// Equivalent to a zero timeout: every stage is a bare try.
		timeout = 0
	}
	return deadline{at: time.Now().Add(timeout)}
}

// remaining reports the budget left for the next stage: -1 for "wait
// forever", otherwise a non-negative duration.  An exhausted deadline
// yields 0, which a Mutex treats as "try once, now".
func (d deadline) remaining() time.Duration {
	if d.infinite {
		return -1
	}
	if left := time.Until(d.at); left > 0 {
		return left
	}
	return 0
}

// An unwind collects the compensation steps of a multi-stage acquire:
// one step per mutex taken and per counter incremented.  If a later
// stage times out, rollback runs the steps in LIFO order, restoring the
// lock to its pre-acquire state.  On success the log is simply dropped.
type unwind []func()

func (u *unwind) add(step func()) {
	*u = append(*u, step)
}

func (u *unwind) rollback() {
	steps := *u
	for i := len(steps) - 1; i >= 0; i-- {
		steps[i]()
	}
}
