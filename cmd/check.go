package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payments"
	"github.com/etnz/payments/renderer"
	"github.com/google/subcommands"
)

type checkCmd struct {
	streams
	print bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validates the records of a transaction log" }
func (*checkCmd) Usage() string {
	return `pay check [-print] <input.csv>

  Decodes every record of <input.csv> without replaying them, and reports the
  number of records of each type and the malformed lines.
  Exits with a failure status if any line is malformed.

  With -print, valid records are printed as JSONL instead, in their canonical
  form.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.print, "print", false, "Print valid records as JSONL instead of the summary.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(c.err(), "Error: expected exactly one input file, got %d arguments.\n\n%s", f.NArg(), c.Usage())
		return subcommands.ExitUsageError
	}
	filename := f.Arg(0)

	in, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(c.err(), "Error opening input file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	kinds := make(map[payments.CommandType]int)
	var malformed []error
	for tx, err := range payments.DecodeTransactions(in) {
		if err != nil {
			var perr *payments.ParseError
			if !errors.As(err, &perr) {
				fmt.Fprintf(c.err(), "Error reading %q: %v\n", filename, err)
				return subcommands.ExitFailure
			}
			malformed = append(malformed, err)
			continue
		}
		kinds[tx.What()]++
		if c.print {
			if err := payments.EncodeJSONL(c.out(), tx); err != nil {
				fmt.Fprintf(c.err(), "Error writing transaction: %v\n", err)
				return subcommands.ExitFailure
			}
		}
	}

	if c.print {
		for _, err := range malformed {
			fmt.Fprintln(c.err(), err)
		}
	} else {
		printMarkdown(c.out(), renderer.Check(kinds, malformed))
	}

	if len(malformed) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
