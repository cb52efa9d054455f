package tlb

// Entry is one cached virtual-to-physical mapping, tagged by protection
// domain and address space:
//
//	PDID:ASID:VPN -> PPN:PTE.bits:PMA
//
// Fields are stored truncated to the widths declared by P. PMA is reserved
// for physical-memory-attribute tagging; it is zero on construction and is
// the only field meant to be assigned after the fact.
type Entry[P Param] struct {
	// PPN is the physical page number, PPNBits wide.
	PPN uint64

	// ASID is the address-space identifier tag, ASIDBits wide.
	ASID uint64

	// VPN is the virtual page number tag, AddrBits-PageShift wide.
	VPN uint64

	// PTEBits holds the low page-table-entry flag bits (PTEValid,
	// PTERead, ...), PageShift wide.
	PTEBits uint64

	// PDID is the protection-domain identifier tag, full width.
	PDID uint64

	// PMA tags the memory-type attributes of the physical page.
	PMA uint64
}

// NewEntry builds a mapping from the given tags and translation. Each value
// is truncated to its field's declared bit-width; callers supply pre-masked
// values or accept the truncation.
func NewEntry[P Param](pdid, asid, vpn, pteb, ppn uint64) Entry[P] {
	var p P
	return Entry[P]{
		PPN:     ppn & limit(p.PPNBits()),
		ASID:    asid & limit(p.ASIDBits()),
		VPN:     vpn & limit(vpnBits[P]()),
		PTEBits: pteb & limit(PageShift),
		PDID:    pdid,
	}
}

// NewSentinelEntry builds the "no mapping" entry: PPN, ASID, and VPN at the
// all-ones limit for their widths, everything else zero. A real lookup key
// cannot normally match all three tags at once, so the sentinel behaves as a
// guaranteed miss.
//
// Known edge case, inherited from the reference design: a lookup with
// PDID 0, ASID at its width limit, and a virtual address whose VPN is at
// its width limit does match a sentinel slot. Configurations that hand out
// the maximum legal ASID must not rely on translating the top page.
func NewSentinelEntry[P Param]() Entry[P] {
	var p P
	return Entry[P]{
		PPN:  limit(p.PPNBits()),
		ASID: limit(p.ASIDBits()),
		VPN:  limit(vpnBits[P]()),
	}
}
