package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Brownie44l1/agricare-api/internal/labels"
	"github.com/Brownie44l1/agricare-api/internal/report"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Analysis is the result printed by the analyze command.
type Analysis struct {
	DiseaseName string  `json:"disease_name" yaml:"disease_name"`
	Confidence  float32 `json:"confidence" yaml:"confidence"`
	ReportOK    bool    `json:"report_ok" yaml:"report_ok"`
	ReportText  string  `json:"report_text" yaml:"report_text"`
}

func DisplayAnalysis(w io.Writer, a Analysis, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
	case "yaml":
		out, err := yaml.Marshal(a)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(out))
	case "human", "":
		displayHuman(w, a)
	default:
		return fmt.Errorf("unsupported output format: %s (supported: human, json, yaml)", format)
	}
	return nil
}

func displayHuman(w io.Writer, a Analysis) {
	cyan := color.New(color.FgCyan, color.Bold)
	bold := color.New(color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintf(w, "Identified Disease: %s\n", labels.Humanize(a.DiseaseName))
	fmt.Fprintf(w, "Confidence: %.1f%%\n\n", a.Confidence*100)

	if !a.ReportOK {
		color.New(color.FgRed).Fprintln(w, a.ReportText)
		return
	}

	for _, line := range strings.Split(a.ReportText, "\n") {
		kind, text := report.Classify(line)
		switch kind {
		case report.Heading:
			fmt.Fprintln(w)
			bold.Fprintln(w, text)
		case report.Bullet, report.Paragraph:
			fmt.Fprintln(w, text)
		}
	}
}

// Status lines go to stderr so -o json/yaml output stays parseable.
func printSuccess(msg string) {
	color.New(color.FgGreen).Fprintf(os.Stderr, "✓ %s\n", msg)
}

func printError(msg string) {
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", msg)
}
