//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"os"

	"github.com/pkg/errors"
)

// ModifierConfig describes one modifier to load
type ModifierConfig struct {
	Filename         string     // Mesh file for the region
	Type             RegionKind // "2D" or "3D"
	CenterMultiplier float64
	EdgeMultiplier   float64
	GradientExponent float64
	MinLayer         float64
}

// NewModifierConfig returns a configuration with the optional fields at
// their defaults
func NewModifierConfig(filename string, kind RegionKind, center, edge float64) ModifierConfig {
	return ModifierConfig{
		Filename:         filename,
		Type:             kind,
		CenterMultiplier: center,
		EdgeMultiplier:   edge,
		GradientExponent: DefaultGradientExponent,
		MinLayer:         DefaultMinLayer,
	}
}

var (
	ErrModifierMissing = errors.New("modifier file not found")
	ErrModifierType    = errors.New("unknown modifier type")
)

// Modifier loads the mesh and builds the modifier
func (mc *ModifierConfig) Modifier() (mod *Modifier, err error) {
	var newRegion func(mesh *Mesh) (Region, error)

	switch mc.Type {
	case RegionPlanar:
		newRegion = func(mesh *Mesh) (Region, error) { return NewPlanar(mesh) }
	case RegionVolumetric:
		newRegion = func(mesh *Mesh) (Region, error) { return NewVolumetric(mesh) }
	default:
		err = errors.Wrapf(ErrModifierType, "%s: '%s'", mc.Filename, mc.Type)
		return
	}

	_, err = os.Stat(mc.Filename)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Wrap(ErrModifierMissing, mc.Filename)
		}
		return
	}

	mesh, err := LoadMesh(mc.Filename)
	if err != nil {
		return
	}

	region, err := newRegion(mesh)
	if err != nil {
		err = errors.Wrap(err, mc.Filename)
		return
	}

	mod = &Modifier{
		Name:   mc.Filename,
		Region: region,
		Gradient: Gradient{
			CenterMultiplier: mc.CenterMultiplier,
			EdgeMultiplier:   mc.EdgeMultiplier,
			Exponent:         mc.GradientExponent,
			MinLayer:         mc.MinLayer,
		},
	}

	return
}

// LoadModifiers builds a modifier set from the configurations. Modifiers
// that cannot be built are skipped; the reasons are logged and returned
// as warnings. An empty set is not an error.
func LoadModifiers(configs []ModifierConfig) (set *ModifierSet, warnings []error) {
	log := Logger()

	set = NewModifierSet()
	for n := range configs {
		mc := &configs[n]

		mod, err := mc.Modifier()
		if err != nil {
			log.Warn("skipping modifier", "file", mc.Filename, "error", err)
			warnings = append(warnings, err)
			continue
		}

		log.Info("loaded modifier", "file", mc.Filename, "type", string(mc.Type),
			"center", mc.CenterMultiplier, "edge", mc.EdgeMultiplier,
			"exponent", mc.GradientExponent, "min_layer", mc.MinLayer)
		log.Debug("modifier region", "file", mc.Filename, "region", mod.Region)

		set.Modifiers = append(set.Modifiers, mod)
	}

	return
}
