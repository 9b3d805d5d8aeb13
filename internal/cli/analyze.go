package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Brownie44l1/agricare-api/internal/config"
	"github.com/Brownie44l1/agricare-api/internal/imaging"
	"github.com/Brownie44l1/agricare-api/internal/labels"
	"github.com/Brownie44l1/agricare-api/internal/report"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

func NewAnalyzeCmd() *cobra.Command {
	var (
		outputFormat string
		pdfPath      string
	)

	cmd := &cobra.Command{
		Use:   "analyze IMAGE",
		Short: "Classify a leaf image and draft an advisory report",
		Long: `Run the classifier on a local image and ask the configured language model
for an advisory report.

Examples:
  # Print the report
  agricare analyze leaf.jpg

  # Machine-readable output and a PDF copy
  agricare analyze leaf.jpg -o json --pdf report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			return runAnalyze(cmd.Context(), cfg, args[0], outputFormat, pdfPath)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write the report as a PDF to this path")
	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config, imagePath, outputFormat, pdfPath string) error {
	rt, err := loadRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.classifier == nil {
		return errors.New("model is not loaded; check MODEL_PATH and ONNX_LIBRARY")
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " Classifying image..."
	s.Start()

	tensor, err := imaging.Preprocess(f, cfg.ImageSize)
	if err != nil {
		s.Stop()
		return err
	}
	prediction, err := rt.classifier.Predict(tensor)
	if err != nil {
		s.Stop()
		return err
	}
	s.Stop()

	disease := rt.labels.LabelOrUnknown(prediction.Index)
	printSuccess(fmt.Sprintf("Identified %s (%.1f%%)", labels.Humanize(disease), prediction.Confidence*100))

	s.Suffix = " Drafting advisory report..."
	s.Start()
	result := rt.advisor.Generate(ctx, disease)
	s.Stop()

	if result.OK {
		printSuccess("Report drafted")
	} else {
		printError(result.Text)
	}

	out := Analysis{
		DiseaseName: disease,
		Confidence:  prediction.Confidence,
		ReportOK:    result.OK,
		ReportText:  result.Text,
	}
	if err := DisplayAnalysis(os.Stdout, out, outputFormat); err != nil {
		return err
	}

	if pdfPath != "" {
		if err := writePDF(pdfPath, disease, result.Text); err != nil {
			return err
		}
		printSuccess("PDF written to " + pdfPath)
	}
	return nil
}

func writePDF(path, disease, text string) error {
	pdfBytes, err := report.NewRenderer(report.Options{Compress: true}).Render(disease, text)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
