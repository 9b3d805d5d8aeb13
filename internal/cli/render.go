package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Brownie44l1/agricare-api/internal/handlers"
	"github.com/spf13/cobra"
)

func NewRenderCmd() *cobra.Command {
	var (
		disease string
		inPath  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a saved advisory report as a PDF",
		Long: `Render report text (from a file or stdin) into the same PDF layout served by
POST /generate_pdf.

Examples:
  agricare render --disease Tomato_Leaf_Mold --in report.md
  cat report.md | agricare render --disease Potato___Late_blight --out late_blight.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if disease == "" {
				return errors.New("--disease is required")
			}
			text, err := readReport(cmd.InOrStdin(), inPath)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = handlers.AttachmentName(disease)
			}
			if err := writePDF(outPath, disease, text); err != nil {
				return err
			}
			printSuccess("PDF written to " + outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&disease, "disease", "d", "", "Disease label shown as the report title")
	cmd.Flags().StringVarP(&inPath, "in", "i", "-", "Report text file, or - for stdin")
	cmd.Flags().StringVarP(&outPath, "out", "O", "", "Output PDF path (default AgriCare_Report_<disease>.pdf)")
	return cmd
}

func readReport(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}
	return string(data), nil
}
