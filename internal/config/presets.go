package config

// Presets are named starting points. "classic" is the narrow-top lamp;
// "inverted" flips the taper so the chamber narrows downward, which also
// flips which vertical direction drives blobs into the walls.
var presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"inverted": func(c *Config) {
		c.Container.TopWidth = DefaultBottomWidth
		c.Container.BottomWidth = DefaultTopWidth
	},
	"crowded": func(c *Config) {
		c.Blobs.Count = 5
		c.Blobs.Radius = 15
	},
	"gentle": func(c *Config) {
		c.Thermal.BottomTemp = 45.0
		c.Fluid.HeatTransfer = 0.02
		c.Ticks = 5000
	},
}

// GetPreset returns a fresh Config for the named preset, or nil if the
// preset does not exist.
func GetPreset(name string) *Config {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
