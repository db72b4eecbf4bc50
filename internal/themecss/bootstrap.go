// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package themecss

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"themeforge/internal/tokens"
)

// DraftStorageKey is the browser localStorage key holding the draft.
const DraftStorageKey = "theme-draft-v1"

// bootstrapTmpl runs in the page head before anything else. It replays
// the stored draft onto the root element and must never throw.
var bootstrapTmpl = template.Must(template.New("bootstrap").Funcs(template.FuncMap{
	"json": toJSON,
}).Parse(`(function(){
  try {
    var raw = window.localStorage.getItem({{json .Key}});
    if (!raw) return;
    var draft = JSON.parse(raw);
    if (!draft || typeof draft !== 'object') return;
    if (!Array.isArray(draft.families) || !Array.isArray(draft.gradients)) return;

    var root = document.documentElement;
    var set = function (variable, value) {
      if (typeof variable === 'string' && typeof value === 'string' && value.trim().length > 0) {
        root.style.setProperty(variable, value);
      }
    };
    var clamp = function (v, lo, hi) { return Math.max(lo, Math.min(hi, v)); };

    var sectionIds = {{json .Sections}};
    var sectionFallbacks = {{json .Fallbacks}};
    var overlays = {{json .Overlays}};

    draft.families.forEach(function (family) {
      if (!family || !Array.isArray(family.tokens)) return;
      family.tokens.forEach(function (token) {
        if (!token || typeof token !== 'object') return;
        set(token.variable, token.value);
      });
    });

    draft.gradients.forEach(function (gradient) {
      if (!gradient || typeof gradient.variable !== 'string' || !Array.isArray(gradient.stops)) return;
      var angle = typeof gradient.angle === 'number' ? clamp(gradient.angle, 0, 360) : {{.Angle}};
      var stops = gradient.stops
        .filter(function (stop) { return stop && typeof stop.color === 'string' && typeof stop.position === 'number'; })
        .map(function (stop) { return stop.color + ' ' + clamp(stop.position, 0, 100) + '%'; });
      if (stops.length > 0) {
        set(gradient.variable, 'linear-gradient(' + angle + 'deg, ' + stops.join(', ') + ')');
      }
    });

    set('--section-base-bg', draft.sectionBaseColor);
    set('--particles-palette', draft.particlesPalette);

    var filters = draft.sectionFilters && typeof draft.sectionFilters === 'object' ? draft.sectionFilters : {};
    sectionIds.forEach(function (id) {
      var selected = typeof filters[id] === 'string' ? filters[id] : sectionFallbacks[id];
      set('--section-filter-' + id, overlays[selected] || 'transparent');
    });
  } catch (_) {}
})();
`))

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// BootstrapScript renders the pre-hydration script from the overlay
// preset table and section defaults, so it cannot drift from Resolve.
func BootstrapScript(storageKey string) (string, error) {
	if storageKey == "" {
		storageKey = DraftStorageKey
	}
	overlays := make(map[string]string, len(tokens.OverlayPresets))
	for _, p := range tokens.OverlayPresets {
		overlays[p.ID] = p.CSS
	}
	data := struct {
		Key       string
		Sections  []string
		Fallbacks map[string]string
		Overlays  map[string]string
		Angle     string
	}{
		Key:       storageKey,
		Sections:  tokens.SectionIDs,
		Fallbacks: tokens.DefaultSectionFilters(),
		Overlays:  overlays,
		Angle:     tokens.FormatNumber(tokens.DefaultGradientAngle),
	}

	var buf bytes.Buffer
	if err := bootstrapTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render bootstrap script: %w", err)
	}
	return buf.String(), nil
}
