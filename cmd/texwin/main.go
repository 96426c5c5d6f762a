// Copyright © 2025 Texwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texwin/main.go
// Summary: Command line tool for inspecting and archiving window dumps.
// Usage: `texwin -info file`, `texwin -view file`, `texwin -list`, or move
// dumps in and out of the archive with -save/-load/-delete.

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/framegrace/texwin/config"
	"github.com/framegrace/texwin/dump"
	"github.com/framegrace/texwin/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texwin", flag.ContinueOnError)

	info := fs.String("info", "", "Print the header of a dump file")
	view := fs.String("view", "", "Render a dump file as plain text")
	list := fs.Bool("list", false, "List archived dumps")
	save := fs.String("save", "", "Archive a dump file under this name (requires -file)")
	load := fs.String("load", "", "Extract the named archived dump (requires -file)")
	del := fs.String("delete", "", "Remove the named archived dump")
	file := fs.String("file", "", "Dump file used by -save and -load")
	storePath := fs.String("store", "", "Archive database path (default from config)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	cfg := config.System()
	if *storePath == "" {
		*storePath = cfg.StorePath
	}

	switch {
	case *info != "":
		return printInfo(*info)
	case *view != "":
		return printView(*view, cfg)
	case *list:
		return withStore(*storePath, listDumps)
	case *save != "":
		if *file == "" {
			return fmt.Errorf("-save requires -file")
		}
		return withStore(*storePath, func(st *store.Store) error {
			return saveDump(st, *save, *file, cfg)
		})
	case *load != "":
		if *file == "" {
			return fmt.Errorf("-load requires -file")
		}
		return withStore(*storePath, func(st *store.Store) error {
			return loadDump(st, *load, *file)
		})
	case *del != "":
		return withStore(*storePath, func(st *store.Store) error {
			return st.Delete(*del)
		})
	}

	fs.Usage()
	return nil
}

func withStore(path string, fn func(*store.Store) error) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func printInfo(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	hdr, err := dump.ReadHeader(f)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %dx%d window, cursor (%d,%d), origin (%d,%d), flags %#x\n",
		path, hdr.Rows, hdr.Cols, hdr.CurY, hdr.CurX, hdr.BegY, hdr.BegX, hdr.Flags)
	return nil
}

func printView(path string, cfg config.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	win, err := dump.GetwinLimits(f, cfg.Limits())
	f.Close()
	if err != nil {
		return err
	}

	// Clip to the terminal when writing to one.
	maxCols := win.Cols
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw < maxCols {
			maxCols = tw
		}
	}

	var sb strings.Builder
	for y := 0; y < win.Rows; y++ {
		sb.Reset()
		width := 0
		for x := 0; x < win.Cols && width < maxCols; x++ {
			ch := win.Lines[y][x].Ch
			if ch == 0 {
				ch = ' '
			}
			sb.WriteRune(ch)
			w := runewidth.RuneWidth(ch)
			if w == 2 {
				x++ // skip the wide rune's continuation cell
			}
			width += max(w, 1)
		}
		fmt.Println(strings.TrimRight(sb.String(), " "))
	}
	return nil
}

func listDumps(st *store.Store) error {
	entries, err := st.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%-24s %4dx%-4d %8d bytes  %s\n",
			e.Name, e.Rows, e.Cols, e.Size, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func saveDump(st *store.Store, name, path string, cfg config.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	win, err := dump.GetwinLimits(f, cfg.Limits())
	f.Close()
	if err != nil {
		return err
	}
	return st.Save(name, win)
}

func loadDump(st *store.Store, name, path string) error {
	win, err := st.Load(name)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	werr := dump.Putwin(win, f)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	return werr
}
