package cidr

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	input := parseAll(t, "10.0.0.0/24", "10.0.1.0/24")
	output := Merge(input, 0)

	got := Summarize(input, output)

	if got.InputCount != 2 {
		t.Errorf("InputCount = %d, want 2", got.InputCount)
	}
	if got.OutputCount != 1 {
		t.Errorf("OutputCount = %d, want 1", got.OutputCount)
	}
	if got.InputAddresses != 512 {
		t.Errorf("InputAddresses = %d, want 512", got.InputAddresses)
	}
	if got.OutputAddresses != 512 {
		t.Errorf("OutputAddresses = %d, want 512", got.OutputAddresses)
	}
	if got.Reduction() != 50 {
		t.Errorf("Reduction() = %v, want 50", got.Reduction())
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, nil)

	if got.Reduction() != 0 {
		t.Errorf("Reduction() = %v, want 0", got.Reduction())
	}
	if got.InputAddresses != 0 || got.OutputAddresses != 0 {
		t.Errorf("addresses = %d/%d, want 0/0", got.InputAddresses, got.OutputAddresses)
	}
}

func TestReductionFractional(t *testing.T) {
	input := parseAll(t, "10.0.0.0/24", "10.0.1.0/24", "192.168.0.0/24")
	output := Merge(input, 0)

	got := Summarize(input, output).Reduction()

	want := 100.0 / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Reduction() = %v, want %v", got, want)
	}
}

func TestTotalAddressesNoOverflow(t *testing.T) {
	// Two /1 networks sum to a full 2^32, which must not wrap.
	input := parseAll(t, "0.0.0.0/1", "128.0.0.0/1")

	got := Summarize(input, input)

	if got.InputAddresses != 1<<32 {
		t.Errorf("InputAddresses = %d, want %d", got.InputAddresses, uint64(1)<<32)
	}
}
