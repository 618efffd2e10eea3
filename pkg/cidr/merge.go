package cidr

import (
	"math/bits"
	"slices"
)

// SortAndDedup orders nets ascending by (base, prefix length) and removes
// exact duplicates, keeping one. It consumes and returns its input.
func SortAndDedup(nets []Network) []Network {
	slices.SortFunc(nets, Compare)
	return slices.Compact(nets)
}

// RemoveCovered drops every network whose range is fully contained in a
// strict supernet already present. The input must be sorted and deduplicated;
// it is consumed and filtered in place. The boolean reports whether anything
// was removed, so the fixpoint driver can detect convergence.
//
// CIDR ranges are either nested or disjoint, so in sorted order a covered
// network always follows its covering supernet and checking against the last
// kept entry is sufficient.
func RemoveCovered(nets []Network) ([]Network, bool) {
	if len(nets) < 2 {
		return nets, false
	}

	kept := nets[:1]
	for _, net := range nets[1:] {
		if kept[len(kept)-1].Covers(net) {
			continue
		}
		kept = append(kept, net)
	}

	return kept, len(kept) < len(nets)
}

// mergeExact combines two equal-sized, boundary-aligned, adjacent networks
// into the supernet one prefix bit wider. The supernet spans exactly the two
// ranges with zero additional addresses, so an exact merge is always safe
// regardless of tolerance.
func mergeExact(a, b Network) (Network, bool) {
	if a.PrefixLen != b.PrefixLen || a.PrefixLen == 0 {
		return Network{}, false
	}
	size := a.Size()
	// a must sit on the even half of the doubled block
	if uint64(a.Base)%(size*2) != 0 {
		return Network{}, false
	}
	if uint64(a.Base)+size != uint64(b.Base) {
		return Network{}, false
	}
	return Network{Base: a.Base, PrefixLen: a.PrefixLen - 1}, true
}

// coveringSupernet returns the smallest network containing both a and b: the
// narrowest prefix length at which their base addresses mask to the same
// value, clamped so the result is at least as wide as either input.
func coveringSupernet(a, b Network) Network {
	p := bits.LeadingZeros32(a.Base ^ b.Base)
	p = min(p, a.PrefixLen, b.PrefixLen)
	return NewNetwork(a.Base, p)
}

// mergeTolerance combines a and b into their covering supernet when doing so
// introduces at most tolerance addresses that neither input covers. The
// budget applies to each attempt independently, not cumulatively.
func mergeTolerance(a, b Network, tolerance uint64) (Network, bool) {
	if tolerance == 0 {
		return Network{}, false
	}
	super := coveringSupernet(a, b)
	covered := a.Size() + b.Size() - overlap(a, b)
	if super.Size()-covered > tolerance {
		return Network{}, false
	}
	return super, true
}

// tryMergePair attempts to combine two candidate networks, exact merge first,
// then tolerance merge. On rejection both inputs are left untouched.
func tryMergePair(a, b Network, tolerance uint64) (Network, bool) {
	if super, ok := mergeExact(a, b); ok {
		return super, true
	}
	return mergeTolerance(a, b, tolerance)
}

// mergeOnce scans nets left to right and applies the first possible pair
// merge, replacing the pair with its supernet. Greedy first-found, not a
// globally minimal CIDR search.
func mergeOnce(nets []Network, tolerance uint64) ([]Network, bool) {
	for i := 0; i+1 < len(nets); i++ {
		super, ok := tryMergePair(nets[i], nets[i+1], tolerance)
		if !ok {
			continue
		}
		nets[i] = super
		return append(nets[:i+1], nets[i+2:]...), true
	}
	return nets, false
}

// Merge collapses nets into the minimal equivalent set: duplicates removed,
// covered ranges discarded, adjacent ranges merged into supernets. With a
// nonzero tolerance, near-adjacent ranges may also merge as long as each
// individual merge introduces at most tolerance extra addresses.
//
// The input slice is not modified. The result is sorted by (base, prefix
// length) and running Merge on its own output returns it unchanged.
//
// Termination: every pair merge and every covering removal strictly
// decreases the network count, so the loop runs at most O(len(nets)) passes.
func Merge(nets []Network, tolerance uint64) []Network {
	out := SortAndDedup(slices.Clone(nets))

	for {
		merged := false
		for {
			var ok bool
			// restart the scan from the beginning after each merge
			out, ok = mergeOnce(out, tolerance)
			if !ok {
				break
			}
			merged = true
		}

		out = SortAndDedup(out)

		var removed bool
		out, removed = RemoveCovered(out)

		if !merged && !removed {
			return out
		}
	}
}
