package rwlock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFairWriterOrdering(t *testing.T) {
	l := NewFair(nil)

	// Hold the lock so the five writers pile up on the turnstile.
	hold := l.Writer()
	require.True(t, hold.Acquire(true, -1))

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	const writers = 5
	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := l.Writer()
			w.Acquire(true, -1)
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			w.Release()
		}()
		// Space the arrivals so the queue order is unambiguous.
		time.Sleep(20 * time.Millisecond)
	}

	hold.Release()
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order, "critical sections ran in arrival order")
}

func TestFairWriterNotStarvedByReaders(t *testing.T) {
	l := NewFair(nil)
	r1 := l.Reader()
	require.True(t, r1.Acquire(true, -1))

	w := l.Writer()
	writerIn := make(chan struct{})
	writerOut := make(chan struct{})
	go func() {
		w.Acquire(true, -1)
		close(writerIn)
		time.Sleep(10 * time.Millisecond)
		w.Release()
		close(writerOut)
	}()
	// The writer now owns the turnstile and is parked on the exclusive
	// section behind r1.
	time.Sleep(50 * time.Millisecond)

	// A late reader cannot jump the queue: it is stuck behind the
	// writer's turn, unlike under the read-preferring discipline.
	r2 := l.Reader()
	assert.False(t, r2.Acquire(true, 50*time.Millisecond))
	assert.Equal(t, 1, l.readCount)

	r1.Release()
	<-writerOut

	require.True(t, r2.Acquire(true, 5*time.Second))
	r2.Release()
	assert.Equal(t, 0, l.readCount)
}

func TestFairReaderConcurrency(t *testing.T) {
	l := NewFair(nil)
	r1, r2 := l.Reader(), l.Reader()
	require.True(t, r1.Acquire(true, -1))
	require.True(t, r2.Acquire(true, -1))
	assert.Equal(t, 2, l.readCount)

	r2.Release()
	assert.Equal(t, 1, l.readCount)
	r1.Release()
	assert.Equal(t, 0, l.readCount)

	// Last reader out released the exclusive section.
	assert.True(t, l.writeMu.Acquire(false, 0))
	l.writeMu.Release()
}

func TestFairReaderTimeoutUnderWriter(t *testing.T) {
	l := NewFair(nil)
	w := l.Writer()
	require.True(t, w.Acquire(true, -1))

	r := l.Reader()
	start := time.Now()
	assert.False(t, r.Acquire(true, 30*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
	assert.Equal(t, 0, l.readCount)

	w.Release()
	require.True(t, r.Acquire(true, time.Second))
	r.Release()

	// Both the turnstile and the exclusive section came back free.
	assert.True(t, l.turnstile.Acquire(false, 0))
	l.turnstile.Release()
	assert.True(t, l.writeMu.Acquire(false, 0))
	l.writeMu.Release()
}

func TestFairAlternatingReadersAndWriters(t *testing.T) {
	l := NewFair(nil)

	var mu sync.Mutex
	var order []string
	record := func(who string) {
		mu.Lock()
		order = append(order, who)
		mu.Unlock()
	}

	hold := l.Writer()
	require.True(t, hold.Acquire(true, -1))

	var wg sync.WaitGroup
	spawn := func(who string, g *Guard) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Acquire(true, -1)
			record(who)
			g.Release()
		}()
		time.Sleep(20 * time.Millisecond)
	}

	spawn("r1", l.Reader())
	spawn("w1", l.Writer())
	spawn("r2", l.Reader())

	hold.Release()
	wg.Wait()

	assert.Equal(t, []string{"r1", "w1", "r2"}, order,
		"readers on either side of a writer keep their places in line")
}
