// Command pay replays transaction logs into account balances.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/payments/cmd"
	"github.com/etnz/payments/config"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
func completion() *complete.Command {
	input := predict.Files("*.csv")
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Dirs("*"),
		},
		Sub: map[string]*complete.Command{
			"replay": {
				Flags: map[string]complete.Predictor{
					"format":   predict.Set(config.Formats),
					"capacity": predict.Something,
					"quiet":    predict.Nothing,
				},
				Args: input,
			},
			"check": {
				Flags: map[string]complete.Predictor{
					"print": predict.Nothing,
				},
				Args: input,
			},
			"help": {Args: predict.Set{"replay", "check"}},
		},
	}
}

func main() {
	// Exits when invoked by the shell for completion.
	completion().Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
