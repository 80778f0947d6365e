package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/rematch"
)

var (
	grepCount        bool
	grepLineNumber   bool
	grepWholeLine    bool
	grepOnlyMatching bool
	grepWithFilename bool
)

// errNoMatch is returned by grep when no line was selected. main maps it to
// exit status 1.
var errNoMatch = errors.New("no lines selected")

// maxLineLen bounds the line length grep accepts.
const maxLineLen = 16 * 1024 * 1024

var grepCmd = &cobra.Command{
	Use:   "grep PATTERN [FILE...]",
	Short: "Print lines containing a match",
	Long: `Search each FILE (or standard input) line by line and print the lines
that contain a leftmost-longest match of PATTERN. With --line-regexp a line
is printed only when the whole line matches.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGrep,
}

func init() {
	grepCmd.Flags().BoolVarP(&grepCount, "count", "c", false, "Print only a count of matching lines per file")
	grepCmd.Flags().BoolVarP(&grepLineNumber, "line-number", "n", false, "Prefix each line with its line number")
	grepCmd.Flags().BoolVarP(&grepWholeLine, "line-regexp", "x", false, "Select only lines the pattern matches entirely")
	grepCmd.Flags().BoolVarP(&grepOnlyMatching, "only-matching", "o", false, "Print only the matched parts of lines")
	grepCmd.Flags().BoolVarP(&grepWithFilename, "with-filename", "H", false, "Prefix each line with the file name")
}

// grepper holds the state of one grep run.
type grepper struct {
	re        *rematch.Regex
	out       io.Writer
	styles    *styles
	showNames bool
	matched   int
}

func runGrep(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	re, err := rematch.CompileWithConfig(args[0], config)
	if err != nil {
		return err
	}
	enabled, err := colorEnabled(colorMode)
	if err != nil {
		return err
	}

	files := args[1:]
	g := &grepper{
		re:        re,
		out:       cmd.OutOrStdout(),
		styles:    newStyles(enabled),
		showNames: grepWithFilename || len(files) > 1,
	}

	if len(files) == 0 {
		if err := g.scan(cmd.InOrStdin(), "(standard input)"); err != nil {
			return err
		}
	}
	for _, name := range files {
		if err := g.scanFile(name); err != nil {
			return err
		}
	}
	if g.matched == 0 {
		return errNoMatch
	}
	return nil
}

func (g *grepper) scanFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()
	return g.scan(f, name)
}

func (g *grepper) scan(r io.Reader, name string) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineLen)

	count := 0
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Bytes()
		locs, ok := g.find(line)
		if !ok {
			continue
		}
		count++
		if !grepCount {
			g.print(name, lineNo, line, locs)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	g.matched += count
	if grepCount {
		if g.showNames {
			fmt.Fprintf(g.out, "%s:", g.styles.file.Sprint(name))
		}
		fmt.Fprintln(g.out, count)
	}
	return nil
}

// find reports whether line is selected and the match locations to
// highlight.
func (g *grepper) find(line []byte) ([][]int, bool) {
	if grepWholeLine {
		if !g.re.Match(line) {
			return nil, false
		}
		return [][]int{{0, len(line)}}, true
	}
	locs := g.re.FindAllIndex(line, -1)
	return locs, len(locs) > 0
}

func (g *grepper) print(name string, lineNo int, line []byte, locs [][]int) {
	prefix := ""
	if g.showNames {
		prefix += g.styles.file.Sprint(name) + ":"
	}
	if grepLineNumber {
		prefix += g.styles.lineNo.Sprint(lineNo) + ":"
	}

	if grepOnlyMatching {
		for _, loc := range locs {
			if loc[0] == loc[1] {
				continue
			}
			fmt.Fprintf(g.out, "%s%s\n", prefix, g.styles.match.Sprint(string(line[loc[0]:loc[1]])))
		}
		return
	}

	fmt.Fprint(g.out, prefix)
	last := 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		g.out.Write(line[last:loc[0]])
		g.styles.match.Fprint(g.out, string(line[loc[0]:loc[1]]))
		last = loc[1]
	}
	g.out.Write(line[last:])
	fmt.Fprintln(g.out)
}
