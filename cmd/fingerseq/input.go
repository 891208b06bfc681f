package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dshills/fingerseq/internal/engine/fingertree"
)

// stdinName selects standard input as the input file.
const stdinName = "-"

var inputFlag = &cli.StringFlag{
	Name:    "input",
	Aliases: []string{"i"},
	Usage:   "file holding one element per line, - for stdin",
	Value:   stdinName,
}

// readTree builds a sequence holding the lines of r.
func readTree(r io.Reader) (fingertree.Tree[string], error) {
	var b fingertree.Builder[string]
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		b.Append(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fingertree.Tree[string]{}, err
	}
	return b.Build(), nil
}

// loadTree builds a sequence from the file at path, or from the app's
// input when path is stdinName.
func loadTree(cctx *cli.Context, path string) (fingertree.Tree[string], error) {
	start := time.Now()

	var r io.Reader = cctx.App.Reader
	if path != stdinName {
		f, err := os.Open(path)
		if err != nil {
			return fingertree.Tree[string]{}, fmt.Errorf("failed to open input (%s): %w", path, err)
		}
		defer f.Close()
		r = f
	}

	t, err := readTree(r)
	if err != nil {
		return t, fmt.Errorf("reading input (%s): %w", path, err)
	}
	slog.Debug("built sequence", "input", path, "len", t.Len(), "duration", time.Since(start))
	return t, nil
}

// inputTree builds the sequence named by the command's input flag.
func inputTree(cctx *cli.Context) (fingertree.Tree[string], error) {
	return loadTree(cctx, cctx.String(inputFlag.Name))
}
