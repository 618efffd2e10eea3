package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/collapsr/collapsr/pkg/cidr"
	"github.com/collapsr/collapsr/pkg/errors"
)

// mergeOpts holds the command-line flags for the root merge command.
type mergeOpts struct {
	input     string // input file path, stdin if empty
	tolerance string // address count or /N bitmask
	check     bool   // verify-only mode
	stats     bool   // statistics block on stderr
}

func defaultMergeOpts() *mergeOpts {
	return &mergeOpts{tolerance: "0"}
}

// runMerge is the root command handler: parse, merge, emit.
func runMerge(ctx context.Context, opts *mergeOpts, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := loggerFromContext(ctx)

	tolerance, err := parseTolerance(opts.tolerance)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(opts.input, stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	prog := newProgress(logger)
	nets, err := cidr.ParseList(in)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d networks", len(nets)))

	prog = newProgress(logger)
	merged := cidr.Merge(nets, tolerance)
	prog.done(fmt.Sprintf("Merged %d networks into %d", len(nets), len(merged)))

	if opts.stats {
		writeStats(stderr, cidr.Summarize(nets, merged))
	}

	if opts.check {
		// Clean means the input already is the merged result, in canonical
		// order: any duplicate, covered entry, pending merge, or ordering
		// difference counts as dirty.
		if !slices.Equal(nets, merged) {
			logger.Debugf("Input is not minimal: %d networks, minimal is %d", len(nets), len(merged))
			return ErrNotMinimal
		}
		return nil
	}

	for _, n := range merged {
		fmt.Fprintln(stdout, n)
	}
	return nil
}

// openInput returns the reader to parse from: the named file, or stdin when
// path is empty. The returned close function is a no-op for stdin.
func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return f, func() { f.Close() }, nil
}

// writeStats renders the statistics block to w.
func writeStats(w io.Writer, s cidr.Stats) {
	fmt.Fprintln(w, "CIDR merge statistics:")
	fmt.Fprintf(w, "  Input CIDRs: %d\n", s.InputCount)
	fmt.Fprintf(w, "  Merged CIDRs: %d\n", s.OutputCount)
	fmt.Fprintf(w, "  Reduction: %.2f%%\n", s.Reduction())
	fmt.Fprintf(w, "  Total addresses (input): %d\n", s.InputAddresses)
	fmt.Fprintf(w, "  Total addresses (merged): %d\n", s.OutputAddresses)
}
