package config

import "sort"

var Presets = map[string]*Config{
	"pocket": {
		Width: 9, Height: 9, Carver: "prim", AutoPlace: true,
	},
	"classic": {
		Width: 21, Height: 21, Carver: "prim", AutoPlace: true,
	},
	"corridors": {
		Width: 31, Height: 21, Carver: "backtracker", AutoPlace: true,
	},
	"labyrinth": {
		Width: 61, Height: 41, Carver: "prim", AutoPlace: true,
	},
	"arena": {
		Width: 41, Height: 31, Carver: "backtracker", Braiding: 0.5, AutoPlace: true,
	},
}

// GetPreset returns a copy of the named preset with defaults filled in,
// or nil when unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Width = p.Width
	cfg.Height = p.Height
	cfg.Carver = p.Carver
	cfg.Braiding = p.Braiding
	cfg.AutoPlace = p.AutoPlace
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
