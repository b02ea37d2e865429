package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/payments"
	"github.com/etnz/payments/config"
	"github.com/etnz/payments/logging"
	"github.com/etnz/payments/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type replayCmd struct {
	streams
	format   string
	capacity int
	quiet    bool
}

func (*replayCmd) Name() string     { return "replay" }
func (*replayCmd) Synopsis() string { return "replays a transaction log and prints the final accounts" }
func (*replayCmd) Usage() string {
	return `pay replay [-format csv|jsonl|markdown] [-capacity <n>] [-quiet] <input.csv>

  Replays the transactions of <input.csv> in order, and prints one record per
  account: client, available, held, total, locked.

  Rejected transactions and malformed records are logged on stderr and skipped.

Usage Examples:
$ pay replay transactions.csv > accounts.csv

`
}

func (c *replayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Output format: "+strings.Join(config.Formats, ", ")+". Overrides PAYMENTS_FORMAT.")
	f.IntVar(&c.capacity, "capacity", 0, "Number of settlements that can still be disputed. Overrides PAYMENTS_LOOKBACK_CAPACITY.")
	f.BoolVar(&c.quiet, "quiet", false, "Do not report rejected transactions.")
}

func (c *replayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(c.err(), "Error: expected exactly one input file, got %d arguments.\n\n%s", f.NArg(), c.Usage())
		return subcommands.ExitUsageError
	}
	filename := f.Arg(0)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(c.err(), "Error: could not load configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.format != "" {
		cfg.Format = strings.ToLower(c.format)
	}
	if c.capacity != 0 {
		cfg.LookbackCapacity = c.capacity
	}
	if c.quiet {
		cfg.ReportRejected = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(c.err(), "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	logger, err := logging.New(cfg.LogLevel, c.err())
	if err != nil {
		fmt.Fprintf(c.err(), "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	logger = logger.With(zap.String("run", uuid.NewString()), zap.String("input", filename))
	defer logger.Sync()

	in, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(c.err(), "Error opening input file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	p := payments.NewProcessor(cfg.LookbackCapacity)
	var reject func(payments.Transaction, error)
	if cfg.ReportRejected {
		reject = func(tx payments.Transaction, err error) { logging.Rejection(logger, tx, err) }
	}

	report, err := p.Replay(payments.DecodeTransactions(in), reject)
	if err != nil {
		fmt.Fprintf(c.err(), "Error reading %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	logging.Summary(logger, report, p.Ledger().Len())

	switch cfg.Format {
	case config.FormatJSONL:
		err = payments.EncodeAccountsJSONL(c.out(), p.Ledger().Accounts())
	case config.FormatMarkdown:
		printMarkdown(c.out(), renderer.Accounts(slices.Collect(p.Ledger().Accounts()), report))
	default:
		err = payments.EncodeAccounts(c.out(), p.Ledger().Accounts())
	}
	if err != nil {
		fmt.Fprintf(c.err(), "Error writing accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
