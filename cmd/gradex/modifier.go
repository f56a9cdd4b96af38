//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ezrec/gradex"
)

type ModifierCommand struct {
	*pflag.FlagSet

	Filename         string
	Type             string
	CenterMultiplier float64
	EdgeMultiplier   float64
	GradientExponent float64
	MinLayer         float64
}

func NewModifierCommand() (cmd *ModifierCommand) {
	cmd = &ModifierCommand{
		FlagSet: pflag.NewFlagSet("modifier", pflag.ContinueOnError),
	}

	cmd.StringVarP(&cmd.Filename, "file", "f", "", "Mesh file of the modifier region")
	cmd.StringVarP(&cmd.Type, "type", "t", string(gradex.RegionPlanar), "Region type, '2D' (planar) or '3D' (volumetric)")
	cmd.Float64VarP(&cmd.CenterMultiplier, "center", "c", 1.0, "Extrusion multiplier at the region centre")
	cmd.Float64VarP(&cmd.EdgeMultiplier, "edge", "e", 1.0, "Extrusion multiplier at the region edge")
	cmd.Float64VarP(&cmd.GradientExponent, "exponent", "x", gradex.DefaultGradientExponent, "Gradient exponent, 1.0 is linear")
	cmd.Float64VarP(&cmd.MinLayer, "min-layer", "m", gradex.DefaultMinLayer, "Lowest Z (mm) the modifier applies to")

	cmd.SetInterspersed(false)

	return
}

func (cmd *ModifierCommand) Configure(job *Job) (err error) {
	if len(cmd.Filename) == 0 {
		err = fmt.Errorf("modifier: --file is required")
		return
	}

	if !cmd.Changed("center") || !cmd.Changed("edge") {
		err = fmt.Errorf("modifier %s: --center and --edge are required", cmd.Filename)
		return
	}

	mc := gradex.NewModifierConfig(cmd.Filename, gradex.RegionKind(cmd.Type), cmd.CenterMultiplier, cmd.EdgeMultiplier)
	mc.GradientExponent = cmd.GradientExponent
	mc.MinLayer = cmd.MinLayer

	TraceVerbosef(VerbosityInfo, "  Modifier %v (%v): center %v, edge %v, exponent %v, min layer %v mm",
		mc.Filename, mc.Type, mc.CenterMultiplier, mc.EdgeMultiplier, mc.GradientExponent, mc.MinLayer)

	job.Modifiers = append(job.Modifiers, mc)

	return
}
