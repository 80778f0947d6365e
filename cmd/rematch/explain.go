package main

import (
	"fmt"
	"strings"

	"github.com/segmentio/asm/ascii"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coregx/rematch"
	"github.com/coregx/rematch/meta"
)

var (
	explainOutput string
	explainInput  string
)

var explainCmd = &cobra.Command{
	Use:   "explain PATTERN",
	Short: "Show how a pattern is executed",
	Long: `Compile PATTERN and print its execution plan: shape, strategy,
extracted literal, prefilter and automata. With --input the plan is
followed by the search result on the given sample.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringVarP(&explainOutput, "output", "o", "text", "Output format: text, yaml")
	explainCmd.Flags().StringVar(&explainInput, "input", "", "Sample input to search")
}

// sampleReport is the search result on a sample input.
type sampleReport struct {
	ASCII  bool   `yaml:"ascii"`
	Match  bool   `yaml:"match"`
	Search string `yaml:"search"`
	Text   string `yaml:"text,omitempty"`
}

// explainReport is the yaml document explain -o yaml writes.
type explainReport struct {
	Plan   meta.Plan     `yaml:"plan"`
	Sample *sampleReport `yaml:"sample,omitempty"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	re, err := rematch.CompileWithConfig(args[0], config)
	if err != nil {
		return err
	}

	var sample *sampleReport
	if cmd.Flags().Changed("input") {
		sample = runSample(re, []byte(explainInput))
	}

	out := cmd.OutOrStdout()
	switch explainOutput {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(explainReport{Plan: re.Plan(), Sample: sample})
	case "text":
		enabled, err := colorEnabled(colorMode)
		if err != nil {
			return err
		}
		s := newStyles(enabled)
		fmt.Fprint(out, re.Explain())
		if sample != nil {
			fmt.Fprintln(out, s.heading.Sprint("sample:"))
			fmt.Fprintf(out, "  ascii:  %v\n", sample.ASCII)
			fmt.Fprintf(out, "  match:  %v\n", sample.Match)
			fmt.Fprintf(out, "  search: %s", sample.Search)
			if sample.Text != "" {
				fmt.Fprintf(out, " %s", s.match.Sprint(sample.Text))
			}
			fmt.Fprintln(out)
		}
		return nil
	default:
		return fmt.Errorf("invalid output format %q: want text or yaml", explainOutput)
	}
}

// runSample matches and searches input. Text is quoted unless the input
// is printable ASCII.
func runSample(re *rematch.Regex, input []byte) *sampleReport {
	m := re.Search(input)
	r := &sampleReport{
		ASCII:  ascii.Valid(input),
		Match:  re.Match(input),
		Search: m.String(),
	}
	if m.Matched {
		text := string(m.Bytes(input))
		if !ascii.ValidPrint(input) || strings.ContainsAny(text, `"\`) {
			text = fmt.Sprintf("%q", text)
		}
		r.Text = text
	}
	return r
}
