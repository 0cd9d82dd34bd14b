package render

import (
	"context"

	"github.com/PetoAdam/homenavi/weather-widget/internal/icons"
	"github.com/PetoAdam/homenavi/weather-widget/internal/models"
)

// Surface is the display area a renderer owns.
type Surface interface {
	// Replace discards everything shown and displays doc (nil clears the
	// surface). It returns the generation of the new content.
	Replace(doc *Document) uint64
	// SwapIcon updates the icon of forecast entry slot. It reports false and
	// changes nothing when gen is no longer current or slot does not exist.
	SwapIcon(gen uint64, slot int, icon Icon) bool
}

type Renderer interface {
	Render(ctx context.Context, vm *models.ViewModel, s Surface)
}

func unknownIcon() Icon {
	return Icon{Category: icons.Unknown, Src: icons.StaticPath(icons.Unknown)}
}

// Plain renders immediately without resolving icons; every entry shows the
// unknown icon.
type Plain struct{}

func (Plain) Render(_ context.Context, vm *models.ViewModel, s Surface) {
	if s == nil {
		return
	}
	s.Replace(newDocument(vm, unknownIcon(), func(int, models.DaySummary) Icon { return unknownIcon() }))
}

// Progressive resolves the current icon, displays the skeleton with
// placeholder day icons and then swaps each day's icon in day order.
type Progressive struct {
	Icons icons.Resolver
}

func NewProgressive(r icons.Resolver) *Progressive {
	if r == nil {
		r = icons.Static{}
	}
	return &Progressive{Icons: r}
}

func (p *Progressive) Render(ctx context.Context, vm *models.ViewModel, s Surface) {
	if s == nil {
		return
	}

	var conditions string
	if vm != nil && vm.CurrentConditions.Conditions != nil {
		conditions = *vm.CurrentConditions.Conditions
	}
	currentCat := icons.Classify(conditions)
	current := Icon{Category: currentCat, Src: p.Icons.Resolve(ctx, currentCat)}

	doc := newDocument(vm, current, func(int, models.DaySummary) Icon { return unknownIcon() })
	gen := s.Replace(doc)
	if vm == nil {
		return
	}

	for i, day := range vm.DailySummaries {
		if ctx.Err() != nil {
			return
		}
		cat := icons.Classify(day.IconHint())
		icon := Icon{Category: cat, Src: p.Icons.Resolve(ctx, cat)}
		if !s.SwapIcon(gen, i, icon) {
			// A newer render owns the surface.
			return
		}
	}
}

// New picks the renderer for an icon mode.
func New(mode string, r icons.Resolver) Renderer {
	if mode == icons.ModeNone {
		return Plain{}
	}
	return NewProgressive(r)
}
