// Package mmu drives a tlb.TLB the way an emulator's memory-access path
// does: lookup first, and on a miss consult a page-table walker and insert
// the resolved translation.
package mmu

import (
	"github.com/sarchlab/rvtlb/tlb"
)

// Walker resolves a virtual address to a physical page on a translation
// cache miss. ok is false when no mapping exists; the resulting fault
// policy (access fault vs page fault, trap delivery) belongs to the
// caller, not to this package.
type Walker interface {
	Walk(pdid, asid, va uint64) (ppn, pteBits uint64, ok bool)
}

// PhysMem is the physical memory / segment manager boundary. Cached
// entries are expected to eventually carry physical-memory attributes
// (Entry.PMA) computed by such a component. Its design is still open, so
// this package declares the integration point but never calls it.
type PhysMem interface {
	// Attributes returns the memory-type attributes of a physical page.
	Attributes(ppn uint64) uint64
}

// Statistics counts translation outcomes.
type Statistics struct {
	// Hits is the number of translations served from the cache.
	Hits uint64
	// Misses is the number of translations that required a walk.
	Misses uint64
	// PageFaults is the number of walks that found no mapping.
	PageFaults uint64
}

// MMU owns one hart's translation cache and fills it from a Walker.
// Like the cache it owns, an MMU is not safe for concurrent use.
type MMU[P tlb.Param] struct {
	cache  *tlb.TLB[P]
	walker Walker

	stats Statistics
}

// New creates an MMU with a translation cache of the given capacity.
// capacity must be a power of two (enforced by tlb.New).
func New[P tlb.Param](capacity int, walker Walker) *MMU[P] {
	return &MMU[P]{
		cache:  tlb.New[P](capacity),
		walker: walker,
	}
}

// TLB returns the underlying translation cache.
func (m *MMU[P]) TLB() *tlb.TLB[P] {
	return m.cache
}

// Stats returns the translation statistics.
func (m *MMU[P]) Stats() Statistics {
	return m.stats
}

// ResetStats clears the translation statistics.
func (m *MMU[P]) ResetStats() {
	m.stats = Statistics{}
}

// Translate resolves a virtual address to a physical address. On a cache
// miss it walks, inserts the resolved mapping, and retries nothing: the
// walked translation is used directly. ok is false when the walker found
// no mapping; pa and pteBits are zero in that case.
func (m *MMU[P]) Translate(pdid, asid, va uint64) (pa, pteBits uint64, ok bool) {
	if e := m.cache.Lookup(pdid, asid, va); e != nil {
		m.stats.Hits++
		return e.PPN<<tlb.PageShift | va&(tlb.PageSize-1), e.PTEBits, true
	}

	m.stats.Misses++

	ppn, pteb, found := m.walker.Walk(pdid, asid, va)
	if !found {
		m.stats.PageFaults++
		return 0, 0, false
	}

	m.cache.Insert(pdid, asid, va, pteb, ppn)

	return ppn<<tlb.PageShift | va&(tlb.PageSize-1), pteb, true
}

// Flush empties the translation cache. Used on global context changes.
func (m *MMU[P]) Flush() {
	m.cache.Flush()
}

// FlushASID drops only the cached translations tagged with the given
// address-space identifier.
func (m *MMU[P]) FlushASID(asid uint64) {
	m.cache.FlushASID(asid)
}
