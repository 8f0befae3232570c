// Package generator picks passages and turns them into typing chunks.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/typerush/internal/corpus"
	"github.com/verte-zerg/typerush/internal/model"
)

// Rotation serves corpus indices without repetition until every index has
// been served once, then starts a new cycle.
//
// Across a cycle boundary the index served last may be served again first;
// only repeats within a cycle are excluded.
type Rotation struct {
	rnd  *rand.Rand
	size int
	used map[int]struct{}
}

// NewRotation returns a Rotation over size indices drawing from rnd.
func NewRotation(size int, rnd *rand.Rand) *Rotation {
	return &Rotation{rnd: rnd, size: size, used: make(map[int]struct{}, size)}
}

// Next returns an index not served since the last full cycle, chosen
// uniformly among the remaining ones. It returns -1 for an empty rotation.
func (r *Rotation) Next() int {
	if r.size <= 0 {
		return -1
	}
	if len(r.used) >= r.size {
		r.Reset()
	}
	available := make([]int, 0, r.size-len(r.used))
	for i := 0; i < r.size; i++ {
		if _, ok := r.used[i]; !ok {
			available = append(available, i)
		}
	}
	idx := available[r.rnd.Intn(len(available))]
	r.used[idx] = struct{}{}
	return idx
}

// Remaining reports how many indices are left in the current cycle.
func (r *Rotation) Remaining() int {
	return r.size - len(r.used)
}

// Reset clears the used set.
func (r *Rotation) Reset() {
	clear(r.used)
}

// Generator produces chunks for the line queue: each call takes the next
// passage from the rotation and segments it at the current width.
type Generator struct {
	corpus   *corpus.Corpus
	rotation *Rotation
	width    int
	ordinal  int
}

// Option configures a Generator.
type Option func(*options)

type options struct {
	rnd   *rand.Rand
	width int
}

// WithRand sets the random source used for passage selection.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) {
		o.rnd = rnd
	}
}

// WithWidth sets the initial chunk width.
func WithWidth(width int) Option {
	return func(o *options) {
		o.width = width
	}
}

// New returns a Generator over c seeded with the current time unless
// WithRand is given.
func New(c *corpus.Corpus, opts ...Option) *Generator {
	o := options{width: corpus.DefaultWidth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		corpus:   c,
		rotation: NewRotation(c.Len(), o.rnd),
		width:    o.width,
	}
}

// Next segments the next passage. The second result is false when the
// corpus cannot supply more text.
func (g *Generator) Next() ([]model.Chunk, bool) {
	idx := g.rotation.Next()
	if idx < 0 {
		return nil, false
	}
	var out []model.Chunk
	for c := range corpus.Chunks(g.corpus.Entry(idx), g.width) {
		c.Ordinal = g.ordinal
		g.ordinal++
		out = append(out, c)
	}
	return out, len(out) > 0
}

// SetWidth changes the width used for passages segmented from now on.
func (g *Generator) SetWidth(width int) {
	g.width = width
}

// Width returns the current chunk width.
func (g *Generator) Width() int {
	return g.width
}

// Reset starts a fresh rotation cycle and restarts chunk numbering.
func (g *Generator) Reset() {
	g.rotation.Reset()
	g.ordinal = 0
}
