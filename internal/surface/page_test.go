package surface

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PetoAdam/homenavi/weather-widget/internal/icons"
	"github.com/PetoAdam/homenavi/weather-widget/internal/render"
)

func twoDayDoc() *render.Document {
	return &render.Document{
		Current: render.CurrentBlock{Address: "Paris, France"},
		Days:    []render.DayEntry{{Date: "2024-01-01"}, {Date: "2024-01-02"}},
	}
}

func TestReplaceIsFullReplace(t *testing.T) {
	p := NewPage(nil)
	g1 := p.Replace(twoDayDoc())
	g2 := p.Replace(&render.Document{Current: render.CurrentBlock{Address: "Oslo"}})
	if g2 <= g1 {
		t.Fatalf("generation must grow: %d then %d", g1, g2)
	}

	var buf bytes.Buffer
	if err := p.WriteHTML(&buf); err != nil {
		t.Fatalf("write html: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Paris") || !strings.Contains(out, "Oslo") {
		t.Fatalf("stale content remains:\n%s", out)
	}

	p.Replace(nil)
	doc, _ := p.Document()
	if doc != nil {
		t.Fatalf("expected cleared surface")
	}
}

func TestReplaceCopiesDocument(t *testing.T) {
	p := NewPage(nil)
	doc := twoDayDoc()
	p.Replace(doc)
	doc.Days[0].Date = "mutated"

	got, _ := p.Document()
	if got.Days[0].Date != "2024-01-01" {
		t.Fatalf("page aliases caller document")
	}
}

func TestSwapIcon(t *testing.T) {
	p := NewPage(nil)
	gen := p.Replace(twoDayDoc())
	icon := render.Icon{Category: icons.Rain, Src: "icons/rain.svg"}

	if !p.SwapIcon(gen, 1, icon) {
		t.Fatalf("expected swap to apply")
	}
	if p.SwapIcon(gen, 2, icon) || p.SwapIcon(gen, -1, icon) {
		t.Fatalf("out of range slot must be rejected")
	}
	doc, _ := p.Document()
	if doc.Days[1].Icon != icon || doc.Days[0].Icon == icon {
		t.Fatalf("swap landed on the wrong entry: %+v", doc.Days)
	}

	p.Replace(twoDayDoc())
	if p.SwapIcon(gen, 0, icon) {
		t.Fatalf("stale generation must be rejected")
	}
}

func TestLoadingAndAlerts(t *testing.T) {
	p := NewPage(nil)
	p.SetLoading(true)
	if !p.Loading() {
		t.Fatalf("expected loading")
	}
	p.SetLoading(false)
	if p.Loading() {
		t.Fatalf("expected idle")
	}

	p.Alert("one")
	p.Alert("two")
	if got := p.TakeAlerts(); len(got) != 2 || got[0] != "one" {
		t.Fatalf("unexpected alerts %v", got)
	}
	if got := p.TakeAlerts(); len(got) != 0 {
		t.Fatalf("alerts must be shown once, got %v", got)
	}
}
