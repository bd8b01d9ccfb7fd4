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

// Fair is the arrival-order variant.  Readers and writers alike must
// pass through the turnstile mutex before starting, so contenders line
// up in the order they arrive.  A reader holds the turnstile only long
// enough to register; a writer keeps it for its whole critical section,
// which is what hands the writer its turn the moment earlier readers
// drain, and keeps later arrivals queued behind it.  Service order is
// as fair as the turnstile mutex itself.
type Fair struct {
	readCount int

	// writeMu is the exclusive section, held while any reader group or
	// writer is active.  readCountMu serializes readCount.
	turnstile   Mutex
	writeMu     Mutex
	readCountMu Mutex
}

var _ RWLock = (*Fair)(nil)

// NewFair returns a fair lock whose internal mutexes come from factory.
// A nil factory means DefaultMutexFactory.
func NewFair(factory MutexFactory) *Fair {
	if factory == nil {
		factory = DefaultMutexFactory
	}
	return &Fair{
		turnstile:   factory(),
		writeMu:     factory(),
		readCountMu: factory(),
	}
}

// Reader returns a guard for the shared side.
func (l *Fair) Reader() *Guard {
	return &Guard{acquire: l.acquireRead, release: l.releaseRead}
}

// Writer returns a guard for the exclusive side.
func (l *Fair) Writer() *Guard {
	return &Guard{acquire: l.acquireWrite, release: l.releaseWrite}
}

func (l *Fair) acquireRead(d deadline) bool {
	var undo unwind
	if !l.turnstile.Acquire(true, d.remaining()) {
		return false
	}
	undo.add(l.turnstile.Release)
	if !l.readCountMu.Acquire(true, d.remaining()) {
		undo.rollback()
		return false
	}
	undo.add(l.readCountMu.Release)
	l.readCount++
	undo.add(func() { l.readCount-- })
	if l.readCount == 1 {
		// First reader in claims the exclusive section for the group.
		if !l.writeMu.Acquire(true, d.remaining()) {
			undo.rollback()
			return false
		}
	}
	l.readCountMu.Release()
	l.turnstile.Release()
	return true
}

func (l *Fair) releaseRead() {
	l.readCountMu.Acquire(true, -1)
	l.readCount--
	if l.readCount == 0 {
		l.writeMu.Release()
	}
	l.readCountMu.Release()
}

func (l *Fair) acquireWrite(d deadline) bool {
	if !l.turnstile.Acquire(true, d.remaining()) {
		return false
	}
	if !l.writeMu.Acquire(true, d.remaining()) {
		l.turnstile.Release()
		return false
	}
	return true
}

func (l *Fair) releaseWrite() {
	l.writeMu.Release()
	l.turnstile.Release()
}
