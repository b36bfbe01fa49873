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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/ianlewis/go-eplkup"
	"github.com/ianlewis/go-eplkup/gaiji"
	"github.com/ianlewis/go-eplkup/internal/logging"
	"github.com/ianlewis/go-eplkup/markup"
	"github.com/ianlewis/go-eplkup/render"
)

func lookupCommand() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Look up the word in INPUT and write the entries to OUTPUT",
		ArgsUsage: "BOOK INPUT OUTPUT",
		Description: strings.Join([]string{
			"BOOK is the directory that contains the subbook files. INPUT is a",
			"UTF-8 file whose first line is the word to look up. OUTPUT is",
			"truncated and receives the entries as UTF-8 text.",
		}, "\n"),
		HideHelp:     true,
		OnUsageError: flagParseError,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "emphasis",
				Usage: "place <em></em> tags around emphasized text",
			},
			&cli.StringFlag{
				Name:  "gaiji",
				Usage: "replace gaiji without a Unicode equivalent with a placeholder (0) or an inline image (1)",
				Value: "0",
			},
			&cli.IntFlag{
				Name:  "hit",
				Usage: "output only hit `N` (starting at 0)",
				Value: render.NoHit,
			},
			&cli.BoolFlag{
				Name:  "hit-num",
				Usage: "write {ENTRY: n} above each hit when several hits are written",
			},
			&cli.BoolFlag{
				Name:  "html-sub",
				Usage: "place <sub></sub> tags around subscript text",
			},
			&cli.BoolFlag{
				Name:  "html-sup",
				Usage: "place <sup></sup> tags around superscript text",
			},
			&cli.BoolFlag{
				Name:  "keyword",
				Usage: "place <KEYWORD></KEYWORD> tags around keywords",
			},
			&cli.BoolFlag{
				Name:  "link",
				Usage: "place <LINK></LINK> tags around references",
			},
			&cli.IntFlag{
				Name:  "max-hits",
				Usage: "write at most `N` hits when --hit is not given",
				Value: render.DefaultOptions.MaxHits,
			},
			&cli.BoolFlag{
				Name:  "no-header",
				Usage: "don't write the headings",
			},
			&cli.BoolFlag{
				Name:  "no-text",
				Usage: "don't write the text",
			},
			&cli.BoolFlag{
				Name:  "show-count",
				Usage: "write the number of hits on the first line as {HITS: n}",
			},
			&cli.IntFlag{
				Name:  "subbook",
				Usage: "use subbook `N`",
			},
			&cli.BoolFlag{
				Name:  "title",
				Usage: "write the subbook's title instead of looking up a word",
			},
			&cli.StringFlag{
				Name:  "gaiji-table",
				Usage: "read glyph substitutions from the YAML `FILE`",
			},
			&cli.StringFlag{
				Name:  "gaiji-format",
				Usage: "encode inline images as `FORMAT` (png, gif, bmp)",
				Value: gaiji.PNG.String(),
			},
			&cli.IntFlag{
				Name:  "gaiji-height",
				Usage: "scale inline images to `PIXELS` high (0 keeps the font height)",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "write text without markup (not with the tag flags or --gaiji 1)",
			},
			&cli.BoolFlag{
				Name:  "skip-errors",
				Usage: "skip hits that cannot be rendered instead of stopping",
			},
			helpFlag,
		},
		Action: func(c *cli.Context) error {
			if c.Bool("help") {
				check(cli.ShowSubcommandHelp(c))
				return nil
			}
			return lookup(c)
		},
	}
}

// renderOptions returns the rendering options selected by the flags.
func renderOptions(c *cli.Context) *render.Options {
	opts := *render.DefaultOptions
	opts.Markup = markup.Options{
		Emphasis:    c.Bool("emphasis"),
		Keyword:     c.Bool("keyword"),
		Reference:   c.Bool("link"),
		Subscript:   c.Bool("html-sub"),
		Superscript: c.Bool("html-sup"),
	}
	opts.MaxHits = c.Int("max-hits")
	opts.SelectedHit = c.Int("hit")
	opts.Heading = !c.Bool("no-header")
	opts.Body = !c.Bool("no-text")
	opts.HitCount = c.Bool("show-count")
	opts.HitNumbers = c.Bool("hit-num")
	opts.Plain = c.Bool("plain")
	if c.Bool("skip-errors") {
		opts.ErrorPolicy = render.Skip
	}
	return &opts
}

// gaijiOptions returns the glyph substitution options selected by the flags.
func gaijiOptions(c *cli.Context, capacity int) (*gaiji.Options, error) {
	policy, err := gaiji.ParsePolicy(c.String("gaiji"))
	if err != nil {
		return nil, fmt.Errorf("%w: --gaiji: %w", ErrFlagParse, err)
	}
	format, err := gaiji.ParseFormat(c.String("gaiji-format"))
	if err != nil {
		return nil, fmt.Errorf("%w: --gaiji-format: %w", ErrFlagParse, err)
	}
	height := c.Int("gaiji-height")
	if height < 0 {
		return nil, fmt.Errorf("%w: --gaiji-height: %d", ErrFlagParse, height)
	}

	opts := *gaiji.DefaultOptions
	opts.Policy = policy
	opts.Format = format
	opts.ImageHeight = height
	opts.Capacity = capacity
	return &opts, nil
}

// loadCatalog reads the glyph tables from path, or from the first default
// location that exists, or returns the built in tables.
func loadCatalog(path string) (*gaiji.Catalog, error) {
	if path != "" {
		return gaiji.LoadFile(path)
	}
	for _, loc := range gaijiTableLocations() {
		if _, err := os.Stat(loc); err == nil {
			return gaiji.LoadFile(loc)
		}
	}
	return gaiji.Default(), nil
}

// readWord returns the first line of the file at path.
func readWord(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening input: %w", ErrEplkup, err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: reading input: %w", ErrEplkup, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func lookup(c *cli.Context) (err error) {
	if c.NArg() != 3 {
		return fmt.Errorf("%w: expected BOOK INPUT OUTPUT, got %d arguments", ErrFlagParse, c.NArg())
	}
	bookPath, inputPath, outputPath := c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)

	logger := newLogger(c)

	ropts := renderOptions(c)
	if err := ropts.Validate(); err != nil {
		return err
	}
	gopts, err := gaijiOptions(c, ropts.OutputCapacity)
	if err != nil {
		return err
	}
	if ropts.Plain && gopts.Policy == gaiji.InlineImage {
		return fmt.Errorf("%w: --plain cannot be combined with inline images", ErrFlagParse)
	}

	// The output is truncated before anything else so that a failed run
	// never leaves the previous run's entries behind.
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: creating output: %w", ErrEplkup, err)
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()
	w := bufio.NewWriter(out)
	defer func() {
		err = multierr.Append(err, w.Flush())
	}()

	book, err := eplkup.Bind(bookPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBook, err)
	}
	defer func() {
		err = multierr.Append(err, book.Close())
	}()
	logger.Debug("bound book", logging.FieldPath, book.Path(), "subbooks", book.Subbooks())

	subbook := c.Int("subbook")
	if err := book.SetSubbook(subbook); err != nil {
		return fmt.Errorf("%w: %w", ErrBook, err)
	}
	directory, err := book.Directory()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBook, err)
	}
	logger.Debug("selected subbook", logging.FieldSubbook, directory)

	catalog, err := loadCatalog(c.String("gaiji-table"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEplkup, err)
	}
	subst, err := gaiji.New(catalog.Table(directory), book, gopts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEplkup, err)
	}

	r, err := render.New(book, subst, ropts, logger)
	if err != nil {
		return err
	}

	if c.Bool("title") {
		return r.Title(w)
	}

	word, err := readWord(inputPath)
	if err != nil {
		return err
	}
	logger.Debug("looking up", logging.FieldWord, word, logging.FieldOutput, outputPath)
	return r.Lookup(w, word)
}
