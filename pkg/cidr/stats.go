package cidr

// Stats summarizes the effect of a merge run.
type Stats struct {
	InputCount      int    // networks parsed from the input
	OutputCount     int    // networks after merging
	InputAddresses  uint64 // sum of input network sizes
	OutputAddresses uint64 // sum of output network sizes
}

// Summarize computes merge statistics for an input list and the merged
// result.
func Summarize(input, output []Network) Stats {
	return Stats{
		InputCount:      len(input),
		OutputCount:     len(output),
		InputAddresses:  totalAddresses(input),
		OutputAddresses: totalAddresses(output),
	}
}

// Reduction returns the relative shrink in network count as a percentage in
// [0, 100]. An empty input reduces by zero.
func (s Stats) Reduction() float64 {
	if s.InputCount == 0 {
		return 0
	}
	return float64(s.InputCount-s.OutputCount) / float64(s.InputCount) * 100
}

func totalAddresses(nets []Network) uint64 {
	var total uint64
	for _, n := range nets {
		total += n.Size()
	}
	return total
}
