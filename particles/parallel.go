package particles

import (
	"runtime"
	"sync"

	"github.com/adri326/vector-fields/components"
)

// parallelThreshold is the minimum pool size to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 2048

// Respawn causes computed during the parallel phase.
const (
	respawnNone = iota
	respawnOutOfBounds
	respawnNonFinite
	respawnExpired
)

// particleSnapshot captures the read-only state one slot needs for
// integration.
type particleSnapshot struct {
	Pos components.Position
	Age float64
	Max float64
}

// particleIntent is the computed result for one slot, applied after the
// parallel phase.
type particleIntent struct {
	Re, Im  float64
	Age     float64
	Speed   float32
	Respawn int
}

// workChunk is a slot range for one worker.
type workChunk struct {
	start, end int
	dt         float64
}

// parallelState holds the snapshot/intent buffers and the persistent
// worker pool.
type parallelState struct {
	snapshots  []particleSnapshot
	intents    []particleIntent
	numWorkers int

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState(capacity int) *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		snapshots:  make([]particleSnapshot, 0, capacity),
		intents:    make([]particleIntent, 0, capacity),
	}
}

func (ps *parallelState) startWorkers(p *Pool) {
	if ps.running {
		return
	}

	ps.workChan = make(chan workChunk, ps.numWorkers)
	ps.doneChan = make(chan struct{}, ps.numWorkers)
	ps.stopChan = make(chan struct{})
	ps.running = true

	for i := 0; i < ps.numWorkers; i++ {
		ps.wg.Add(1)
		go ps.worker(p)
	}
}

func (ps *parallelState) stopWorkers() {
	if !ps.running {
		return
	}

	close(ps.stopChan)
	ps.wg.Wait()
	close(ps.workChan)
	close(ps.doneChan)
	ps.running = false
}

func (ps *parallelState) worker(p *Pool) {
	defer ps.wg.Done()

	for {
		select {
		case <-ps.stopChan:
			return
		case chunk, ok := <-ps.workChan:
			if !ok {
				return
			}
			p.computeChunk(chunk.start, chunk.end, chunk.dt)
			ps.doneChan <- struct{}{}
		}
	}
}

// computeParallel dispatches slot chunks to the worker pool and waits for
// them all. Workers only write disjoint intent ranges, so no locking.
func (p *Pool) computeParallel(n int, dt float64) {
	ps := p.parallel
	if !ps.running {
		ps.startWorkers(p)
	}

	chunkSize := (n + ps.numWorkers - 1) / ps.numWorkers

	dispatched := 0
	for w := 0; w < ps.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		ps.workChan <- workChunk{start: start, end: end, dt: dt}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-ps.doneChan
	}
}

// Close stops the worker pool. The pool remains usable afterwards; the
// workers restart on the next large update.
func (p *Pool) Close() {
	p.parallel.stopWorkers()
}
