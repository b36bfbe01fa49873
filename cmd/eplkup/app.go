// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-eplkup/internal/logging"
	"github.com/ianlewis/go-eplkup/render"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeBookError is the exit code for a book that could not be read.
	ExitCodeBookError

	// ExitCodePartial is the exit code for output with skipped hits.
	ExitCodePartial
)

// ErrEplkup is a parent error for all command errors.
var ErrEplkup = errors.New("eplkup")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrEplkup)

// ErrBook indicates a book that could not be bound or read.
var ErrBook = fmt.Errorf("%w: book", ErrEplkup)

var copyrightNames = []string{
	"2026 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name
	// argument. Each command declares its own help flag instead.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// flagParseError wraps usage errors so that they exit with
// ExitCodeFlagParseError.
func flagParseError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}

// exitCode returns the process exit code for an error returned by the app.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse), errors.Is(err, render.ErrInvalidOptions):
		return ExitCodeFlagParseError
	case errors.Is(err, render.ErrPartial):
		return ExitCodePartial
	case errors.Is(err, ErrBook), errors.Is(err, render.ErrCollaborator):
		return ExitCodeBookError
	default:
		return ExitCodeUnknownError
	}
}

// newLogger returns the logger for the command's diagnostics.
func newLogger(c *cli.Context) *log.Logger {
	return logging.New(c.App.ErrWriter, c.String("log-level"))
}

func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	if _, err := fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, info.GitVersion); err != nil {
		return fmt.Errorf("%w: %w", ErrEplkup, err)
	}
	for _, name := range copyrightNames {
		if _, err := fmt.Fprintf(c.App.Writer, "Copyright (c) %s\n", name); err != nil {
			return fmt.Errorf("%w: %w", ErrEplkup, err)
		}
	}
	return nil
}

// helpFlag is the help flag declared by each command.
var helpFlag = &cli.BoolFlag{
	Name:               "help",
	Usage:              "print this help text and exit",
	Aliases:            []string{"h"},
	DisableDefaultText: true,
}

func newEplkupApp(name string, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:  name,
		Usage: "Look up words in EPWING style dictionaries.",
		Description: strings.Join([]string{
			"Performs an exact search on a word in a dictionary book and",
			"writes the matching entries as UTF-8 text.",
			"http://github.com/ianlewis/go-eplkup",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log diagnostics at `LEVEL` (debug, info, warn, error)",
				Value: "warn",
			},

			// Special flags are shown at the end.
			helpFlag,
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		OnUsageError:    flagParseError,
		// Errors are reported and mapped to exit codes by run.
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}
			if c.Args().Present() {
				return fmt.Errorf("%w: unknown command %q", ErrFlagParse, c.Args().First())
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			lookupCommand(),
			listCommand(),
		},
	}
}
