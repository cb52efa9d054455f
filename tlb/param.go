// Package tlb implements a protection-domain and address-space tagged
// translation lookaside buffer for RISC-V emulation.
//
// The TLB caches virtual-to-physical page translations so the emulator's
// memory-access path can skip the page-table walk on a hit:
//
//	tlb[PDID:ASID:VPN] = PPN:PTE.bits:PMA
//
// The cache is direct-mapped and indexed by the low bits of the virtual
// page number. It is owned by exactly one emulated hart and carries no
// internal synchronization.
package tlb

import "math/bits"

// Page geometry shared by all parameterizations (4 KiB pages).
const (
	// PageShift is the number of page-offset bits in a virtual address.
	PageShift = 12

	// PageSize is the page size in bytes.
	PageSize = 1 << PageShift
)

// RISC-V page-table-entry flag bits, cached verbatim in Entry.PTEBits.
const (
	PTEValid    uint64 = 1 << 0
	PTERead     uint64 = 1 << 1
	PTEWrite    uint64 = 1 << 2
	PTEExec     uint64 = 1 << 3
	PTEUser     uint64 = 1 << 4
	PTEGlobal   uint64 = 1 << 5
	PTEAccessed uint64 = 1 << 6
	PTEDirty    uint64 = 1 << 7
)

// Param describes one address-width parameterization of the translation
// cache. Implementations are zero-size marker types used as type
// parameters, so an RV32 cache and an RV64 cache are distinct types built
// from the same implementation.
//
// ASIDBits()+PPNBits() must equal 32, 64, or 128. This ties the tag widths
// to a native address size; tlb.New rejects a Param violating it before any
// cache instance is usable.
type Param interface {
	// AddrBits returns the virtual address width in bits.
	AddrBits() uint
	// ASIDBits returns the address-space identifier width in bits.
	ASIDBits() uint
	// PPNBits returns the physical page number width in bits.
	PPNBits() uint
}

// RV32 parameterizes the cache for 32-bit addressing: 10-bit ASIDs and
// 22-bit PPNs.
type RV32 struct{}

// AddrBits returns 32.
func (RV32) AddrBits() uint { return 32 }

// ASIDBits returns 10.
func (RV32) ASIDBits() uint { return 10 }

// PPNBits returns 22.
func (RV32) PPNBits() uint { return 22 }

// RV64 parameterizes the cache for 64-bit addressing: 16-bit ASIDs and
// 48-bit PPNs.
type RV64 struct{}

// AddrBits returns 64.
func (RV64) AddrBits() uint { return 64 }

// ASIDBits returns 16.
func (RV64) ASIDBits() uint { return 16 }

// PPNBits returns 48.
func (RV64) PPNBits() uint { return 48 }

// limit returns the maximum value representable in width bits, the all-ones
// pattern used both for field truncation and for the sentinel tags.
func limit(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (1 << width) - 1
}

// vpnBits returns the virtual page number width for a parameterization:
// the address width with the page offset stripped.
func vpnBits[P Param]() uint {
	var p P
	return p.AddrBits() - PageShift
}

// mustBeValid panics if the parameterization's tag widths do not sum to a
// supported native address size. Misconfiguration is a programming error,
// never a runtime condition.
func mustBeValid[P Param]() {
	var p P
	sum := p.ASIDBits() + p.PPNBits()
	if sum != 32 && sum != 64 && sum != 128 {
		panic("tlb: ASIDBits + PPNBits must equal 32, 64, or 128")
	}
	if p.AddrBits() <= PageShift {
		panic("tlb: AddrBits must exceed PageShift")
	}
}

// isPow2 reports whether n is a positive power of two.
func isPow2(n int) bool {
	return n > 0 && bits.OnesCount64(uint64(n)) == 1
}
