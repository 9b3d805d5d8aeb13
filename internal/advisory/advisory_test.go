package advisory

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/Brownie44l1/agricare-api/internal/apperr"
)

type fakeLLM struct {
	text   string
	err    error
	prompt string
	calls  int
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.text, f.err
}

func (f *fakeLLM) Name() string { return "fake" }

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Tomato Leaf Mold")

	if !strings.Contains(p, `"Tomato Leaf Mold"`) {
		t.Fatal("prompt does not name the disease")
	}
	if !strings.Contains(p, Region) {
		t.Fatal("prompt does not name the region")
	}
	if !strings.Contains(p, "MUST start directly with the first section heading") {
		t.Fatal("prompt is missing the no-preamble instruction")
	}

	last := -1
	for _, s := range Sections {
		i := strings.Index(p, "**"+s+"**")
		if i < 0 {
			t.Fatalf("section %q missing", s)
		}
		if i <= last {
			t.Fatalf("section %q out of order", s)
		}
		last = i
	}
	if BuildPrompt("Tomato Leaf Mold") != p {
		t.Fatal("prompt is not deterministic")
	}
}

func TestGenerateSuccess(t *testing.T) {
	f := &fakeLLM{text: "Error-free **Disease Overview:** text"}
	res := New(f).Generate(context.Background(), "Tomato_Leaf_Mold")

	if !res.OK || res.Err != nil {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Text != f.text {
		t.Fatalf("text was modified: %q", res.Text)
	}
	if !strings.Contains(f.prompt, `"Tomato Leaf Mold"`) {
		t.Fatalf("prompt used raw label: %s", f.prompt)
	}
}

func TestGenerateReportStartingWithError(t *testing.T) {
	f := &fakeLLM{text: "Error rates in field scouting are high.\n**Disease Overview:**"}
	res := New(f).Generate(context.Background(), "Tomato_healthy")
	if !res.OK {
		t.Fatal("a report that starts with 'Error' is still a successful report")
	}
}

func TestGenerateUpstreamFailure(t *testing.T) {
	f := &fakeLLM{err: errors.New("quota exceeded")}
	res := New(f).Generate(context.Background(), "Tomato_healthy")

	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Failure != apperr.Upstream || !errors.Is(res.Err, apperr.ErrUpstream) {
		t.Fatalf("expected upstream failure, got %+v", res)
	}
	if !strings.Contains(res.Text, "quota exceeded") {
		t.Fatalf("expected error text, got %q", res.Text)
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	res := New(&fakeLLM{text: "  \n"}).Generate(context.Background(), "Tomato_healthy")
	if res.OK || res.Failure != apperr.Upstream {
		t.Fatalf("expected upstream failure for empty text, got %+v", res)
	}
}

func TestGenerateNotConfigured(t *testing.T) {
	g := New(nil)
	res := g.Generate(context.Background(), "Tomato_healthy")

	if res.OK || res.Failure != apperr.ServiceUnavailable {
		t.Fatalf("expected service unavailable, got %+v", res)
	}
	if res.Text != NotConfiguredText {
		t.Fatalf("unexpected text %q", res.Text)
	}
	if g.Configured() || g.Provider() != "" {
		t.Fatal("generator without client must report unconfigured")
	}
}

func TestGenerateFailureHidesRequestURL(t *testing.T) {
	f := &fakeLLM{err: &url.Error{
		Op:  "Post",
		URL: "https://generativelanguage.googleapis.com/v1beta/models/m:generateContent?key=SECRET-KEY-123",
		Err: errors.New("dial tcp: connection refused"),
	}}
	res := New(f).Generate(context.Background(), "Tomato_healthy")

	if res.OK {
		t.Fatal("expected failure")
	}
	if strings.Contains(res.Text, "SECRET-KEY-123") || strings.Contains(res.Text, "googleapis.com") {
		t.Fatalf("report text leaks the request URL: %q", res.Text)
	}
	if !strings.Contains(res.Text, "connection refused") {
		t.Fatalf("expected the underlying cause, got %q", res.Text)
	}
}
