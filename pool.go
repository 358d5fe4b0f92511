package report2pdf

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one generator is available.
	MinPoolSize = 1

	// MaxPoolSize caps engine instances to limit memory (a headless
	// browser costs roughly 200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the engines' own child processes.
	cpuDivisor = 2
)

// DefaultPoolSize derives a pool size from the CPU count, clamped to the
// allowed range.
func DefaultPoolSize() int {
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

// GeneratorPool manages generators for concurrent batch runs. Each
// generator owns its engine, so runs in flight never share browser state
// or temp files. Generators are created lazily on first acquire.
type GeneratorPool struct {
	size       int
	opts       []Option
	generators []*Generator
	sem        chan *Generator
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewGeneratorPool creates a pool with capacity for n generators, each
// built with the given options.
func NewGeneratorPool(n int, opts ...Option) *GeneratorPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &GeneratorPool{
		size:       n,
		opts:       opts,
		generators: make([]*Generator, 0, n),
		sem:        make(chan *Generator, n),
	}
}

// Acquire gets a generator from the pool, creating one if capacity allows.
// Blocks while all generators are in use.
func (p *GeneratorPool) Acquire() *Generator {
	select {
	case gen := <-p.sem:
		return gen
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		gen := NewGenerator(p.opts...)

		p.mu.Lock()
		p.generators = append(p.generators, gen)
		p.mu.Unlock()

		return gen
	}
	p.mu.Unlock()

	return <-p.sem
}

// Release returns a generator to the pool. Releasing into a closed pool
// closes the generator instead.
func (p *GeneratorPool) Release(gen *Generator) {
	if gen == nil {
		return
	}

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()

	if closed {
		_ = gen.Close()
		return
	}

	select {
	case p.sem <- gen:
	default:
		// More releases than acquires is a caller bug; close rather than leak.
		_ = gen.Close()
	}
}

// Close shuts down every generator created by the pool. Safe to call once;
// subsequent Acquire calls are invalid.
func (p *GeneratorPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	generators := p.generators
	p.generators = nil
	p.mu.Unlock()

	var errs []error
	for _, gen := range generators {
		if err := gen.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
