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
	"fmt"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/ianlewis/go-eplkup"
	"github.com/ianlewis/go-eplkup/charset"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:         "list",
		Usage:        "List the subbooks of BOOK",
		ArgsUsage:    "BOOK",
		HideHelp:     true,
		OnUsageError: flagParseError,
		Flags: []cli.Flag{
			helpFlag,
		},
		Action: func(c *cli.Context) error {
			if c.Bool("help") {
				check(cli.ShowSubcommandHelp(c))
				return nil
			}
			return list(c)
		},
	}
}

func list(c *cli.Context) (err error) {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: expected BOOK, got %d arguments", ErrFlagParse, c.NArg())
	}

	book, err := eplkup.Bind(c.Args().First())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBook, err)
	}
	defer func() {
		err = multierr.Append(err, book.Close())
	}()

	tbl := table.New("Index", "Directory", "Title", "Words").WithWriter(c.App.Writer)
	for i := 0; i < book.Subbooks(); i++ {
		if err := book.SetSubbook(i); err != nil {
			return fmt.Errorf("%w: %w", ErrBook, err)
		}
		directory, err := book.Directory()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBook, err)
		}
		rawTitle, err := book.Title()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBook, err)
		}
		title, err := charset.ToUTF8(rawTitle)
		if err != nil {
			return fmt.Errorf("%w: subbook %d title: %w", ErrBook, i, err)
		}
		words, err := book.WordCount()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBook, err)
		}
		tbl.AddRow(i, directory, string(title), words)
	}
	tbl.Print()

	return nil
}
