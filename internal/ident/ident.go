// Package ident implements the identifier pool: a process- or pipeline-
// scoped interner handing out stable, hashable handles for symbol text.
package ident

import (
	"fmt"
	"hash/maphash"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// Identifier is a 64-bit stable handle into a Pool. Two identifiers are
// equal iff their indices are equal.
type Identifier struct {
	index uint64
	pool  *Pool
}

// IsValid reports whether the identifier was produced by a live Pool.
func (id Identifier) IsValid() bool { return id.pool != nil }

// View returns the original text the identifier was interned from.
func (id Identifier) View() string {
	if id.pool == nil {
		return ""
	}
	return id.pool.entries[id.index].text
}

// Hash returns the memoized content hash computed at interning time.
func (id Identifier) Hash() uint64 {
	if id.pool == nil {
		return 0
	}
	return id.pool.entries[id.index].hash
}

func (id Identifier) String() string { return id.View() }

type entry struct {
	text string
	hash uint64
}

// Pool interns identifier text, normalizing to Unicode NFC first so that
// differently-encoded but visually identical spellings collide. Hashing is
// performed once, at interning time, and memoized on the entry.
type Pool struct {
	seed    maphash.Seed
	entries []entry
	byText  map[string]uint64
}

// NewPool returns an empty identifier pool.
func NewPool() *Pool {
	return &Pool{
		seed:   maphash.MakeSeed(),
		byText: make(map[string]uint64, 64),
	}
}

// Intern returns the Identifier for s, reusing an existing entry when the
// normalized text already exists in the pool.
func (p *Pool) Intern(s string) Identifier {
	normalized := norm.NFC.String(s)
	if idx, ok := p.byText[normalized]; ok {
		return Identifier{index: idx, pool: p}
	}
	return p.insert(normalized)
}

// InternNew allocates a fresh entry without consulting the lookup table.
// It must only be used for compiler-synthesized names guaranteed not to
// collide with anything a user could have written (e.g. implicit type
// parameters); using it for a name that might already be interned breaks
// the pool's equality invariant.
func (p *Pool) InternNew(s string) Identifier {
	normalized := norm.NFC.String(s)
	idx, err := safecast.Conv[uint64](len(p.entries))
	if err != nil {
		panic(fmt.Errorf("ident: pool overflow: %w", err))
	}
	h := maphash.String(p.seed, normalized)
	p.entries = append(p.entries, entry{text: normalized, hash: h})
	return Identifier{index: idx, pool: p}
}

func (p *Pool) insert(normalized string) Identifier {
	idx, err := safecast.Conv[uint64](len(p.entries))
	if err != nil {
		panic(fmt.Errorf("ident: pool overflow: %w", err))
	}
	h := maphash.String(p.seed, normalized)
	p.entries = append(p.entries, entry{text: normalized, hash: h})
	p.byText[normalized] = idx
	return Identifier{index: idx, pool: p}
}

// Len reports how many distinct identifiers have been interned.
func (p *Pool) Len() int { return len(p.entries) }
