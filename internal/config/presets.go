package config

import (
	"sort"

	"github.com/san-kum/plexus/internal/field"
)

var Presets = map[string]func(p *field.Params){
	"classic": func(p *field.Params) {},
	"dense": func(p *field.Params) {
		p.Density, p.LinkDistance = 8000, 120
	},
	"sparse": func(p *field.Params) {
		p.Density, p.LinkDistance, p.PointerDistance = 30000, 200, 260
	},
	"calm": func(p *field.Params) {
		p.Speed, p.LinkAlpha = 0.2, 0.15
	},
	"swarm": func(p *field.Params) {
		p.Density, p.LinkDistance, p.Speed = 6000, 90, 1.2
	},
}

// GetPreset returns the default parameters modified by the named preset,
// or nil if there is no such preset.
func GetPreset(name string) *field.Params {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	p := field.DefaultParams()
	apply(&p)
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
