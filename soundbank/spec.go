package soundbank

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CatalogSpec is the on-disk form of a sound catalog.
type CatalogSpec struct {
	Sounds []SoundSpec `yaml:"sounds"`
}

type SoundSpec struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	File     string   `yaml:"file"`
	Volume   *float64 `yaml:"volume"`
	Pitch    float64  `yaml:"pitch"`
	Loop     bool     `yaml:"loop"`
	Bus      string   `yaml:"bus"`
	// PlayAtStart plays the sound once when the manager is created.
	PlayAtStart bool `yaml:"play_at_start"`
}

// VolumeOrDefault returns the configured volume, or full volume when the
// field is absent.
func (s SoundSpec) VolumeOrDefault() float64 {
	if s.Volume == nil {
		return 1
	}
	return *s.Volume
}

func Parse(data []byte) (CatalogSpec, error) {
	var spec CatalogSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return CatalogSpec{}, err
	}
	return spec, nil
}

// LoadCatalogSpec reads and parses the named catalog file.
func LoadCatalogSpec(name string) (CatalogSpec, error) {
	data, err := Load(name)
	if err != nil {
		return CatalogSpec{}, fmt.Errorf("soundbank: load %s: %w", name, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return CatalogSpec{}, fmt.Errorf("soundbank: unmarshal %s: %w", name, err)
	}
	return spec, nil
}
