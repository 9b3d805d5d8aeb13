// Package advisory drafts disease advisory reports through a text-generation service.
package advisory

import (
	"context"
	"log"
	"strings"

	"github.com/Brownie44l1/agricare-api/internal/apperr"
	"github.com/Brownie44l1/agricare-api/internal/labels"
	"github.com/Brownie44l1/agricare-api/internal/llm"
)

const NotConfiguredText = "Error: text generation service is not configured."

// Result is either a generated report (OK) or a failure with display text.
// Callers must branch on OK, never on the contents of Text.
type Result struct {
	Text    string
	OK      bool
	Failure apperr.Kind
	Err     error
}

type Generator struct {
	llm llm.LLM
}

// New returns a Generator. A nil client yields a generator that reports
// ServiceUnavailable without making any call.
func New(client llm.LLM) *Generator {
	return &Generator{llm: client}
}

func (g *Generator) Configured() bool {
	return g != nil && g.llm != nil
}

// Provider names the backing service, or "" when unconfigured.
func (g *Generator) Provider() string {
	if !g.Configured() {
		return ""
	}
	return g.llm.Name()
}

// Generate asks the service for a report on label. It never returns an error;
// failures are carried in the Result.
func (g *Generator) Generate(ctx context.Context, label string) Result {
	if !g.Configured() {
		return Result{
			Text:    NotConfiguredText,
			Failure: apperr.ServiceUnavailable,
			Err:     apperr.ErrServiceUnavailable,
		}
	}

	prompt := BuildPrompt(labels.Humanize(label))
	text, err := g.llm.Generate(ctx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = apperr.New(apperr.Upstream, "empty report")
	}
	if err != nil {
		err = llm.StripURL(err)
		log.Printf("Error generating content with %s: %v", g.llm.Name(), err)
		return Result{
			Text:    "Error generating report: " + err.Error(),
			Failure: apperr.Upstream,
			Err:     apperr.Wrap(apperr.Upstream, "generate report", err),
		}
	}

	return Result{Text: text, OK: true}
}
