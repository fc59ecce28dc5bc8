package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

func defaultThemeFallbacks() map[string]string {
	return vanilla.ThemeFallbacks()
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if strings.TrimSpace(name) == "" && o.themeDefault == "" {
		return nil, nil
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}
	cfg := selection.RendererTheme(o.themeFallbacks)
	return &cfg, nil
}
