//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/pflag"

	"github.com/ezrec/gradex"
	"github.com/ezrec/gradex/preview"
)

type PreviewCommand struct {
	*pflag.FlagSet

	Output    string
	Size      int
	MaxZ      float64
	MaxPoints int
}

func NewPreviewCommand() (cmd *PreviewCommand) {
	cmd = &PreviewCommand{
		FlagSet: pflag.NewFlagSet("preview", pflag.ContinueOnError),
	}

	cmd.StringVarP(&cmd.Output, "output", "o", "", "PNG file to write")
	cmd.IntVarP(&cmd.Size, "size", "s", preview.DefaultSize, "Longest image side, in pixels")
	cmd.Float64VarP(&cmd.MaxZ, "max-z", "z", 0.0, "Only show moves at or below this height (mm)")
	cmd.IntVarP(&cmd.MaxPoints, "points", "p", preview.DefaultMaxPoints, "Maximum number of moves to show")

	cmd.SetInterspersed(false)

	return
}

func (cmd *PreviewCommand) Configure(job *Job) (err error) {
	if len(cmd.Output) == 0 {
		err = fmt.Errorf("preview: --output is required")
		return
	}

	job.Previews = append(job.Previews, cmd)

	return
}

func (cmd *PreviewCommand) Options() (opt preview.Options) {
	opt = preview.NewOptions()
	opt.Size = cmd.Size
	opt.MaxPoints = cmd.MaxPoints
	if cmd.Changed("max-z") {
		opt.MaxZ = cmd.MaxZ
	} else {
		opt.MaxZ = math.Inf(1)
	}

	return
}

// Write the preview of the recorded samples
func (cmd *PreviewCommand) Write(samples []gradex.Sample, set *gradex.ModifierSet) (err error) {
	if len(samples) > cmd.MaxPoints && cmd.MaxPoints > 0 {
		TraceVerbosef(VerbosityNotice, "Downsampling: %v of %v moves shown", cmd.MaxPoints, len(samples))
	}

	img := preview.Render(samples, set, cmd.Options())

	writer, err := os.Create(cmd.Output)
	if err != nil {
		return
	}
	defer func() { writer.Close() }()

	err = preview.Encode(writer, img)
	if err != nil {
		return
	}

	log := &gradex.SampleLog{Samples: samples}
	_, _, _, mult := log.Ranges()
	if mult.Empty() {
		TraceVerbosef(VerbosityNotice, "Preview written to %v", cmd.Output)
	} else {
		TraceVerbosef(VerbosityNotice, "Preview written to %v (multiplier %.3f to %.3f)", cmd.Output, mult.Min, mult.Max)
	}

	return
}
