package config

import "sort"

// Presets are named playback settings.
var Presets = map[string]PlaybackConfig{
	"slow":   {Speed: 1},
	"normal": {Speed: DefaultSpeed},
	"fast":   {Speed: 30},
	"loop":   {Speed: DefaultSpeed, Repeat: true},
}

func GetPreset(name string) *PlaybackConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
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

// ApplyPreset overwrites the playback section with the named preset.
func (c *Config) ApplyPreset(name string) bool {
	p := GetPreset(name)
	if p == nil {
		return false
	}
	c.Playback = *p
	return true
}
