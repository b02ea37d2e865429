// Package cmd implements the CLI application to replay transaction logs.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/payments/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&replayCmd{}, "transactions")
	c.Register(&checkCmd{}, "transactions")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configPath = flag.String("config", ".", "Folder containing an optional .env configuration file")

// loadConfig loads the configuration from the app config folder.
func loadConfig() (config.Config, error) {
	return config.Load(*configPath)
}

// streams holds the outputs of a command, so that tests can capture them.
type streams struct {
	stdout io.Writer
	stderr io.Writer
}

func (s streams) out() io.Writer {
	if s.stdout == nil {
		return os.Stdout
	}
	return s.stdout
}

func (s streams) err() io.Writer {
	if s.stderr == nil {
		return os.Stderr
	}
	return s.stderr
}

// printMarkdown renders md for the terminal, falling back to raw markdown.
func printMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprint(w, md)
}
