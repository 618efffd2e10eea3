package cli

import (
	"strconv"
	"strings"

	"github.com/collapsr/collapsr/pkg/errors"
)

// parseTolerance interprets the --tolerance flag: either a non-negative
// integer address count, or a /N bitmask meaning 2^(32-N) addresses (the size
// of a /N block).
func parseTolerance(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if rest, ok := strings.CutPrefix(s, "/"); ok {
		n, err := strconv.ParseUint(rest, 10, 8)
		if err != nil || n > 32 {
			return 0, errors.New(errors.ErrCodeInvalidPrefix, "prefix length must be between 0 and 32, got %q", rest)
		}
		return uint64(1) << (32 - n), nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidTolerance, "tolerance must be a non-negative address count or a /N bitmask, got %q", s)
	}
	return v, nil
}
