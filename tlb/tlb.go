package tlb

import "math/bits"

// TLB is a direct-mapped translation cache. Each virtual page number maps
// to exactly one slot (vpn & mask); Insert overwrites whatever occupies the
// slot, and that overwrite is the entire eviction policy. The tradeoff is
// deliberate: O(1) allocation-free hit/miss resolution on the emulator's
// hot path, at the cost of thrashing when two live mappings alias.
//
// A TLB belongs to one emulated hart. It is not safe for concurrent use.
type TLB[P Param] struct {
	entries []Entry[P]

	// mask selects the slot index from a VPN; shift is log2(capacity),
	// recorded for the one-to-one indexing scheme.
	mask  uint64
	shift uint
}

// New creates a TLB with the given number of slots, all set to the
// sentinel. capacity must be a power of two and P's tag widths must sum to
// a supported address size; violations panic before any instance is usable.
func New[P Param](capacity int) *TLB[P] {
	mustBeValid[P]()
	if !isPow2(capacity) {
		panic("tlb: capacity must be a power of two")
	}

	t := &TLB[P]{
		entries: make([]Entry[P], capacity),
		mask:    uint64(capacity - 1),
		shift:   uint(bits.TrailingZeros64(uint64(capacity))),
	}
	t.Flush()

	return t
}

// Capacity returns the number of slots.
func (t *TLB[P]) Capacity() int {
	return len(t.entries)
}

// Flush resets every slot to the sentinel. Used on global context changes
// where no cached translation can be assumed valid.
func (t *TLB[P]) Flush() {
	for i := range t.entries {
		t.entries[i] = NewSentinelEntry[P]()
	}
}

// FlushASID resets only the slots tagged with the given address-space
// identifier, leaving translations belonging to other address spaces in
// place. Slots that do not match are skipped, not rewritten.
//
// The comparison is against the stored (truncated) tag, so an asid wider
// than ASIDBits flushes nothing.
func (t *TLB[P]) FlushASID(asid uint64) {
	for i := range t.entries {
		if t.entries[i].ASID != asid {
			continue
		}
		t.entries[i] = NewSentinelEntry[P]()
	}
}

// Lookup returns the cached entry for the given protection domain, address
// space, and virtual address, or nil on a miss. This is the hot path: one
// index computation and one three-way tag compare, no scanning.
//
// va is truncated to P's address width; pdid and asid are compared as
// given, so values wider than their tag widths can never hit.
func (t *TLB[P]) Lookup(pdid, asid, va uint64) *Entry[P] {
	var p P
	vpn := (va & limit(p.AddrBits())) >> PageShift
	i := vpn & t.mask

	e := &t.entries[i]
	if e.PDID == pdid && e.ASID == asid && e.VPN == vpn {
		return e
	}

	return nil
}

// Insert caches a translation for the given virtual address, overwriting
// the slot its VPN maps to. Any previous occupant is implicitly evicted;
// no prior state is consulted.
func (t *TLB[P]) Insert(pdid, asid, va, pteb, ppn uint64) {
	var p P
	vpn := (va & limit(p.AddrBits())) >> PageShift
	i := vpn & t.mask

	t.entries[i] = NewEntry[P](pdid, asid, vpn, pteb, ppn)
}
