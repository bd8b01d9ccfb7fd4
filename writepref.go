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

// WritePreferred is the writer-preference variant.  The first writer of
// a cohort closes the readTry gate, stalling every reader that has not
// yet passed it; the gate stays closed while writeCount is above zero,
// so writers arriving in the meantime batch behind it.  Readers already
// past the gate drain normally, after which the writers take the
// resource one at a time.
type WritePreferred struct {
	readCount  int
	writeCount int

	// resource is held exactly while any reader group or writer is
	// active.  readCountMu and writeCountMu serialize their counters.
	// readEntry serializes reader arrivals so a single gate acquisition
	// stalls them all; readTry is that gate, held by the writer cohort.
	resource     Mutex
	readCountMu  Mutex
	writeCountMu Mutex
	readEntry    Mutex
	readTry      Mutex
}

var _ RWLock = (*WritePreferred)(nil)

// NewWritePreferred returns a writer-preference lock whose internal
// mutexes come from factory.  A nil factory means DefaultMutexFactory.
func NewWritePreferred(factory MutexFactory) *WritePreferred {
	if factory == nil {
		factory = DefaultMutexFactory
	}
	return &WritePreferred{
		resource:     factory(),
		readCountMu:  factory(),
		writeCountMu: factory(),
		readEntry:    factory(),
		readTry:      factory(),
	}
}

// Reader returns a guard for the shared side.
func (l *WritePreferred) Reader() *Guard {
	return &Guard{acquire: l.acquireRead, release: l.releaseRead}
}

// Writer returns a guard for the exclusive side.
func (l *WritePreferred) Writer() *Guard {
	return &Guard{acquire: l.acquireWrite, release: l.releaseWrite}
}

func (l *WritePreferred) acquireRead(d deadline) bool {
	var undo unwind
	if !l.readEntry.Acquire(true, d.remaining()) {
		return false
	}
	undo.add(l.readEntry.Release)
	if !l.readTry.Acquire(true, d.remaining()) {
		undo.rollback()
		return false
	}
	undo.add(l.readTry.Release)
	if !l.readCountMu.Acquire(true, d.remaining()) {
		undo.rollback()
		return false
	}
	undo.add(l.readCountMu.Release)
	l.readCount++
	undo.add(func() { l.readCount-- })
	if l.readCount == 1 {
		if !l.resource.Acquire(true, d.remaining()) {
			undo.rollback()
			return false
		}
	}
	l.readCountMu.Release()
	l.readTry.Release()
	l.readEntry.Release()
	return true
}

func (l *WritePreferred) releaseRead() {
	l.readCountMu.Acquire(true, -1)
	l.readCount--
	if l.readCount == 0 {
		l.resource.Release()
	}
	l.readCountMu.Release()
}

func (l *WritePreferred) acquireWrite(d deadline) bool {
	if !l.writeCountMu.Acquire(true, d.remaining()) {
		return false
	}
	l.writeCount++
	if l.writeCount == 1 {
		// First writer of the cohort closes the reader gate.
		if !l.readTry.Acquire(true, d.remaining()) {
			l.writeCount--
			l.writeCountMu.Release()
			return false
		}
	}
	l.writeCountMu.Release()
	if !l.resource.Acquire(true, d.remaining()) {
		// The counter mutex was already given up, so the unwind has to
		// re-take it before it can back the registration out.
		l.writeCountMu.Acquire(true, -1)
		l.writeCount--
		if l.writeCount == 0 {
			l.readTry.Release()
		}
		l.writeCountMu.Release()
		return false
	}
	return true
}

func (l *WritePreferred) releaseWrite() {
	l.resource.Release()
	l.writeCountMu.Acquire(true, -1)
	l.writeCount--
	if l.writeCount == 0 {
		// Last writer of the cohort reopens the reader gate.
		l.readTry.Release()
	}
	l.writeCountMu.Release()
}
