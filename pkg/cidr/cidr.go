// Package cidr implements IPv4 CIDR aggregation: parsing network lists,
// normalizing them, and collapsing them into the minimal equivalent set by
// removing covered ranges and merging adjacent blocks into supernets.
//
// Addresses are plain 32-bit unsigned integers with explicit mask arithmetic,
// so behavior is fully determined by this package and not by any host network
// library. Size arithmetic is done in uint64 because a /0 covers 2^32
// addresses.
//
// # Usage
//
//	nets, err := cidr.ParseList(reader)
//	if err != nil {
//	    // err is a *cidr.ParseError carrying the offending line number
//	}
//	minimal := cidr.Merge(nets, 0)
package cidr

import (
	"cmp"
	"fmt"
)

// Network is an IPv4 CIDR block: a base address with all host bits cleared
// and a prefix length in [0, 32]. It covers the address range
// [Base, Base+2^(32-PrefixLen)-1].
type Network struct {
	Base      uint32
	PrefixLen int
}

// NewNetwork builds a Network from an address and prefix length. The base is
// derived by masking addr with the prefix, so literal host bits in addr are
// discarded rather than trusted.
func NewNetwork(addr uint32, prefixLen int) Network {
	return Network{Base: addr & Mask(prefixLen), PrefixLen: prefixLen}
}

// Mask returns the netmask for a prefix length. Prefix lengths outside
// [0, 32] are clamped.
func Mask(prefixLen int) uint32 {
	if prefixLen <= 0 {
		return 0
	}
	if prefixLen >= 32 {
		return ^uint32(0)
	}
	return ^uint32(0) << (32 - prefixLen)
}

// Size returns the number of addresses the network covers.
func (n Network) Size() uint64 {
	return uint64(1) << (32 - n.PrefixLen)
}

// first and last bound the half-open address range [first, last) in uint64
// space so that a /0 does not wrap.
func (n Network) first() uint64 {
	return uint64(n.Base)
}

func (n Network) last() uint64 {
	return uint64(n.Base) + n.Size()
}

// Covers reports whether n is a strict supernet of other: a wider prefix
// whose range fully contains other's range. Equal-sized duplicates are not
// considered covering.
func (n Network) Covers(other Network) bool {
	if n.PrefixLen >= other.PrefixLen {
		return false
	}
	return n.first() <= other.first() && n.last() >= other.last()
}

// overlap returns the number of addresses shared by a and b, zero when the
// ranges are disjoint.
func overlap(a, b Network) uint64 {
	lo := max(a.first(), b.first())
	hi := min(a.last(), b.last())
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// Compare orders networks ascending by base address, then ascending by
// prefix length for ties. It defines the canonical output order.
func Compare(a, b Network) int {
	if c := cmp.Compare(a.Base, b.Base); c != 0 {
		return c
	}
	return cmp.Compare(a.PrefixLen, b.PrefixLen)
}

// String renders the network in A.B.C.D/P form.
func (n Network) String() string {
	return fmt.Sprintf("%d.%d.%d.%d/%d",
		byte(n.Base>>24), byte(n.Base>>16), byte(n.Base>>8), byte(n.Base), n.PrefixLen)
}
