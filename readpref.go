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

// ReadPreferred is the reader-preference variant.  The first reader in
// takes the resource mutex on behalf of the whole read group and the
// last reader out releases it; readers arriving in between only bump a
// counter.  Writers contend on the resource mutex alone, so an
// unbroken stream of readers keeps a waiting writer out indefinitely.
type ReadPreferred struct {
	readCount int

	// resource is held exactly while any reader or writer is active.
	// readCountMu serializes updates to readCount.
	resource    Mutex
	readCountMu Mutex
}

var _ RWLock = (*ReadPreferred)(nil)

// NewReadPreferred returns a reader-preference lock whose internal
// mutexes come from factory.  A nil factory means DefaultMutexFactory.
func NewReadPreferred(factory MutexFactory) *ReadPreferred {
	if factory == nil {
		factory = DefaultMutexFactory
	}
	return &ReadPreferred{
		resource:    factory(),
		readCountMu: factory(),
	}
}

// Reader returns a guard for the shared side.
func (l *ReadPreferred) Reader() *Guard {
	return &Guard{acquire: l.acquireRead, release: l.releaseRead}
}

// Writer returns a guard for the exclusive side.
func (l *ReadPreferred) Writer() *Guard {
	return &Guard{acquire: l.acquireWrite, release: l.releaseWrite}
}

func (l *ReadPreferred) acquireRead(d deadline) bool {
	var undo unwind
	if !l.readCountMu.Acquire(true, d.remaining()) {
		return false
	}
	undo.add(l.readCountMu.Release)
	l.readCount++
	undo.add(func() { l.readCount-- })
	if l.readCount == 1 {
		// First reader in claims the resource for the group.
		if !l.resource.Acquire(true, d.remaining()) {
			undo.rollback()
			return false
		}
	}
	l.readCountMu.Release()
	return true
}

func (l *ReadPreferred) releaseRead() {
	l.readCountMu.Acquire(true, -1)
	l.readCount--
	if l.readCount == 0 {
		// Last reader out lets writers back in.
		l.resource.Release()
	}
	l.readCountMu.Release()
}

func (l *ReadPreferred) acquireWrite(d deadline) bool {
	return l.resource.Acquire(true, d.remaining())
}

func (l *ReadPreferred) releaseWrite() {
	l.resource.Release()
}
