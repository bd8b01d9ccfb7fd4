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

import "time"

// A Guard is a handle owning at most one acquisition of one side of its
// parent lock.  Guards are produced by an RWLock's Reader and Writer
// methods, pre-bound to the acquire/release choreography of that side.
//
// A Guard is not safe for concurrent use: each goroutine wanting the
// lock should hold its own guard (or be its sole user).  The parent lock
// itself is shared freely.  Guards are cheap; discarding one without
// releasing it does not release the lock.
type Guard struct {
	acquire func(deadline) bool
	release func()
	locked  bool
}

// Acquire takes the guard's side of the lock.  With blocking true and a
// negative timeout it waits indefinitely and returns true.  With a
// non-negative timeout it waits at most that long; with blocking false
// it tries once immediately.  A false return leaves no trace in the
// lock: every internal mutex and counter is back where it started.
//
// Acquire on a guard that is already held panics; release first.
func (g *Guard) Acquire(blocking bool, timeout time.Duration) bool {
	if g.locked {
		panic("rwlock: acquire of an already acquired guard")
	}
	if !g.acquire(newDeadline(blocking, timeout)) {
		return false
	}
	g.locked = true
	return true
}

// Release gives up the acquisition held by this guard.  Release of a
// guard that is not held panics.
func (g *Guard) Release() {
	if !g.locked {
		panic("rwlock: release of an unacquired guard")
	}
	g.locked = false
	g.release()
}

// Locked reports whether this guard currently owns an acquisition.
func (g *Guard) Locked() bool {
	return g.locked
}

// Lock acquires the guard, waiting indefinitely.  Together with Unlock
// it makes a Guard a sync.Locker.
func (g *Guard) Lock() {
	g.Acquire(true, -1)
}

// Unlock is Release under the name sync.Locker expects.
func (g *Guard) Unlock() {
	g.Release()
}

// Do runs fn while holding the guard.  The guard is released however fn
// returns; a panic inside fn propagates unchanged after the release.
func (g *Guard) Do(fn func()) {
	g.Acquire(true, -1)
	defer g.Release()
	fn()
}
