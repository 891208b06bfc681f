package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dshills/fingerseq/internal/engine/fingertree"
)

var cmdStats = &cli.Command{
	Name:   "stats",
	Usage:  "show the size and shape of the sequence built from the input",
	Flags:  []cli.Flag{inputFlag},
	Action: runStats,
}

var cmdGet = &cli.Command{
	Name:      "get",
	Usage:     "print the element at an index",
	ArgsUsage: `<index>`,
	Flags:     []cli.Flag{inputFlag},
	Action:    runGet,
}

var cmdIter = &cli.Command{
	Name:  "iter",
	Usage: "print elements with their indices, walking a cursor from a start index",
	Flags: []cli.Flag{
		inputFlag,
		&cli.IntFlag{
			Name:  "start",
			Usage: "cursor start index (default: 0, or the end with --reverse)",
		},
		&cli.BoolFlag{
			Name:  "reverse",
			Usage: "walk towards the front",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "stop after this many elements, 0 for no limit",
		},
	},
	Action: runIter,
}

var cmdSplit = &cli.Command{
	Name:      "split",
	Usage:     "split the sequence before an index and print both halves",
	ArgsUsage: `<index>`,
	Flags:     []cli.Flag{inputFlag},
	Action:    runSplit,
}

var cmdConcat = &cli.Command{
	Name:      "concat",
	Usage:     "concatenate the sequences built from each file and print the result",
	ArgsUsage: `<file>...`,
	Action:    runConcat,
}

var cmdDump = &cli.Command{
	Name:  "dump",
	Usage: "render the internal tree structure",
	Flags: []cli.Flag{
		inputFlag,
		&cli.IntFlag{
			Name:  "max-leaves",
			Usage: "render at most this many leaves, 0 for all (default from config)",
		},
	},
	Action: runDump,
}

// printer formats counts with digit grouping.
var printer = message.NewPrinter(language.English)

func runStats(cctx *cli.Context) error {
	t, err := inputTree(cctx)
	if err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}

	s := t.Stats()
	w := cctx.App.Writer
	printer.Fprintf(w, "len:         %d\n", s.Len)
	printer.Fprintf(w, "depth:       %d\n", s.Depth)
	printer.Fprintf(w, "node2:       %d\n", s.Node2)
	printer.Fprintf(w, "node3:       %d\n", s.Node3)
	printer.Fprintf(w, "digits:      %d\n", s.Digits)
	printer.Fprintf(w, "digit nodes: %d\n", s.DigitNodes)
	return nil
}

// indexArg parses the first argument as an element index.
func indexArg(cctx *cli.Context) (int, error) {
	if cctx.Args().Len() != 1 {
		return 0, fmt.Errorf("need to provide an index as the only argument")
	}
	i, err := strconv.Atoi(cctx.Args().First())
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", cctx.Args().First(), err)
	}
	return i, nil
}

func runGet(cctx *cli.Context) error {
	i, err := indexArg(cctx)
	if err != nil {
		return err
	}
	t, err := inputTree(cctx)
	if err != nil {
		return err
	}

	v, err := t.Get(i)
	if err != nil {
		return err
	}
	fmt.Fprintln(cctx.App.Writer, v)
	return nil
}

func runIter(cctx *cli.Context) error {
	t, err := inputTree(cctx)
	if err != nil {
		return err
	}

	reverse := cctx.Bool("reverse")
	start := cctx.Int("start")
	if reverse && !cctx.IsSet("start") {
		start = t.Len()
	}
	limit := cctx.Int("limit")

	it := t.Iterator(start)
	w := cctx.App.Writer
	for n := 0; limit <= 0 || n < limit; n++ {
		var i int
		var v string
		if reverse {
			if !it.HasPrevious() {
				break
			}
			i = it.PreviousIndex()
			v, err = it.Previous()
		} else {
			if !it.HasNext() {
				break
			}
			i = it.NextIndex()
			v, err = it.Next()
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\n", i, v)
	}
	return nil
}

func runSplit(cctx *cli.Context) error {
	i, err := indexArg(cctx)
	if err != nil {
		return err
	}
	t, err := inputTree(cctx)
	if err != nil {
		return err
	}

	left, right := t.Split(i)
	printHalf(cctx, "left", left)
	printHalf(cctx, "right", right)
	return nil
}

func printHalf(cctx *cli.Context, name string, t fingertree.Tree[string]) {
	w := cctx.App.Writer
	printer.Fprintf(w, "%s (%d):\n", name, t.Len())
	for v := range t.Values() {
		fmt.Fprintf(w, "  %s\n", v)
	}
}

func runConcat(cctx *cli.Context) error {
	if cctx.Args().Len() == 0 {
		return fmt.Errorf("need to provide at least one file as an argument")
	}

	var out fingertree.Tree[string]
	for _, path := range cctx.Args().Slice() {
		t, err := loadTree(cctx, path)
		if err != nil {
			return err
		}
		out = out.Concat(t)
	}

	w := cctx.App.Writer
	for v := range out.Values() {
		fmt.Fprintln(w, v)
	}
	return nil
}

func runDump(cctx *cli.Context) error {
	t, err := inputTree(cctx)
	if err != nil {
		return err
	}

	maxLeaves := configFrom(cctx).Dump.MaxLeaves
	if cctx.IsSet("max-leaves") {
		maxLeaves = cctx.Int("max-leaves")
	}
	fmt.Fprint(cctx.App.Writer, t.Dump(strconv.Quote, maxLeaves))
	return nil
}
