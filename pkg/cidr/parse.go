package cidr

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/collapsr/collapsr/pkg/errors"
)

// ParseError reports the first malformed line in a CIDR list.
type ParseError struct {
	Line int   // 1-based line number
	Err  error // reason, a *errors.Error with a validation code
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the reason for errors.Is/As compatibility.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseNetwork parses a single A.B.C.D/P string into a Network. The address
// must be four dot-separated decimal octets in [0, 255] and the prefix length
// an integer in [0, 32]. Host bits below the prefix are masked off, not
// rejected.
func ParseNetwork(s string) (Network, error) {
	addrPart, prefixPart, ok := strings.Cut(s, "/")
	if !ok {
		return Network{}, errors.New(errors.ErrCodeInvalidCIDR, "missing prefix length separator in %q", s)
	}

	octets := strings.Split(addrPart, ".")
	if len(octets) != 4 {
		return Network{}, errors.New(errors.ErrCodeInvalidCIDR, "address %q must have four octets", addrPart)
	}

	var addr uint32
	for _, o := range octets {
		v, err := parseDecimal(o)
		if err != nil || v > 255 {
			return Network{}, errors.New(errors.ErrCodeInvalidOctet, "invalid octet %q in %q", o, addrPart)
		}
		addr = addr<<8 | uint32(v)
	}

	prefixLen, err := parseDecimal(prefixPart)
	if err != nil {
		return Network{}, errors.New(errors.ErrCodeInvalidPrefix, "invalid prefix length %q", prefixPart)
	}
	if prefixLen > 32 {
		return Network{}, errors.New(errors.ErrCodeInvalidPrefix, "prefix length must be between 0 and 32, got %d", prefixLen)
	}

	return NewNetwork(addr, int(prefixLen)), nil
}

// ParseList reads one CIDR per line from r. Blank lines (after trimming
// surrounding whitespace) are skipped. Parsing is fail-fast: the first
// malformed line aborts with a *ParseError and no partial result.
func ParseList(r io.Reader) ([]Network, error) {
	var nets []Network
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		net, err := ParseNetwork(raw)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		nets = append(nets, net)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read line %d", line+1)
	}

	return nets, nil
}

// parseDecimal parses a plain non-negative decimal. Unlike strconv.Atoi it
// rejects signs, leading junk, and trailing garbage, so "24x" and "+8" fail.
func parseDecimal(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	var v uint64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-digit character %q", c)
		}
		v = v*10 + uint64(c-'0')
		if v > 1<<32 {
			return 0, fmt.Errorf("number too large")
		}
	}
	return v, nil
}
