package mmu

import (
	"github.com/sarchlab/akita/v4/mem/vm"

	"github.com/sarchlab/rvtlb/tlb"
)

// PageTableWalker is a Walker backed by an Akita page table. Address-space
// identifiers map onto vm.PID, so one page table serves all address spaces
// of a single protection domain.
//
// Akita pages carry no permission bits, so resolved translations get a
// fixed valid/read/write/exec PTE-bit set. Pages marked invalid, and walks
// for any other protection domain, fail.
type PageTableWalker struct {
	pdid  uint64
	table vm.PageTable
}

// NewPageTableWalker creates a walker serving the given protection domain
// from a fresh Akita page table with this package's page geometry.
func NewPageTableWalker(pdid uint64) *PageTableWalker {
	return &PageTableWalker{
		pdid:  pdid,
		table: vm.NewPageTable(tlb.PageShift),
	}
}

// Table returns the backing page table, for mapping setup and teardown.
func (w *PageTableWalker) Table() vm.PageTable {
	return w.table
}

// Map installs a virtual-to-physical page mapping for an address space.
func (w *PageTableWalker) Map(asid uint64, vaddr, paddr uint64) {
	w.table.Insert(vm.Page{
		PID:      vm.PID(asid),
		VAddr:    vaddr &^ uint64(tlb.PageSize-1),
		PAddr:    paddr &^ uint64(tlb.PageSize-1),
		PageSize: tlb.PageSize,
		Valid:    true,
	})
}

// Unmap removes the mapping that contains vaddr from an address space.
func (w *PageTableWalker) Unmap(asid uint64, vaddr uint64) {
	w.table.Remove(vm.PID(asid), vaddr&^uint64(tlb.PageSize-1))
}

// Walk resolves a virtual address against the backing page table.
func (w *PageTableWalker) Walk(pdid, asid, va uint64) (ppn, pteBits uint64, ok bool) {
	if pdid != w.pdid {
		return 0, 0, false
	}

	page, found := w.table.Find(vm.PID(asid), va)
	if !found || !page.Valid {
		return 0, 0, false
	}

	pteBits = tlb.PTEValid | tlb.PTERead | tlb.PTEWrite | tlb.PTEExec |
		tlb.PTEAccessed

	return page.PAddr >> tlb.PageShift, pteBits, true
}
