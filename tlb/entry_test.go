package tlb_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvtlb/tlb"
)

var _ = Describe("Entry", func() {
	Describe("NewSentinelEntry", func() {
		It("should set RV32 tags to their all-ones limits", func() {
			e := tlb.NewSentinelEntry[tlb.RV32]()

			Expect(e.PPN).To(Equal(uint64(0x3FFFFF))) // 22 bits
			Expect(e.ASID).To(Equal(uint64(0x3FF)))   // 10 bits
			Expect(e.VPN).To(Equal(uint64(0xFFFFF)))  // 32-12 bits
			Expect(e.PTEBits).To(Equal(uint64(0)))
			Expect(e.PDID).To(Equal(uint64(0)))
			Expect(e.PMA).To(Equal(uint64(0)))
		})

		It("should set RV64 tags to their all-ones limits", func() {
			e := tlb.NewSentinelEntry[tlb.RV64]()

			Expect(e.PPN).To(Equal(uint64(0xFFFFFFFFFFFF)))  // 48 bits
			Expect(e.ASID).To(Equal(uint64(0xFFFF)))          // 16 bits
			Expect(e.VPN).To(Equal(uint64(0xFFFFFFFFFFFFF))) // 64-12 bits
		})
	})

	Describe("NewEntry", func() {
		It("should store in-range values verbatim", func() {
			e := tlb.NewEntry[tlb.RV64](3, 7, 0x1234, 0xCF, 0x55)

			Expect(e.PDID).To(Equal(uint64(3)))
			Expect(e.ASID).To(Equal(uint64(7)))
			Expect(e.VPN).To(Equal(uint64(0x1234)))
			Expect(e.PTEBits).To(Equal(uint64(0xCF)))
			Expect(e.PPN).To(Equal(uint64(0x55)))
		})

		It("should truncate each field to its declared width", func() {
			e := tlb.NewEntry[tlb.RV32](
				0xDEAD,     // pdid, full width, kept
				0x7FF,      // asid, 10 bits
				0x1FFFFF,   // vpn, 20 bits
				0x1FFF,     // pteb, 12 bits
				0x00400055, // ppn, 22 bits
			)

			Expect(e.PDID).To(Equal(uint64(0xDEAD)))
			Expect(e.ASID).To(Equal(uint64(0x3FF)))
			Expect(e.VPN).To(Equal(uint64(0xFFFFF)))
			Expect(e.PTEBits).To(Equal(uint64(0xFFF)))
			Expect(e.PPN).To(Equal(uint64(0x55)))
		})

		It("should initialize PMA to zero and leave it assignable", func() {
			e := tlb.NewEntry[tlb.RV64](1, 2, 3, 4, 5)
			Expect(e.PMA).To(Equal(uint64(0)))

			e.PMA = 0xA5
			Expect(e.PMA).To(Equal(uint64(0xA5)))
		})
	})
})
