//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/ezrec/gradex"
	_ "github.com/ezrec/gradex/obj"
	_ "github.com/ezrec/gradex/stl"
)

var param struct {
	input     string
	output    string
	verbose   int
	workers   int
	samples   int
	batchSize int
}

func init() {
	pflag.StringVarP(&param.input, "input", "i", "", "Input G-code file, '-' for stdin")
	pflag.StringVarP(&param.output, "output", "o", "-", "Output G-code file, '-' for stdout")
	pflag.CountVarP(&param.verbose, "verbose", "v", "Verbosity (repeat for more)")
	pflag.IntVarP(&param.workers, "jobs", "j", runtime.NumCPU(), "Goroutines evaluating multipliers")
	pflag.IntVarP(&param.samples, "samples", "s", gradex.DefaultSamples, "Points sampled along each move")
	pflag.IntVarP(&param.batchSize, "batch", "b", 4096, "Lines scanned per evaluation batch")

	pflag.CommandLine.SetInterspersed(false)
	pflag.Usage = Usage
}

// Job is the configuration assembled from the command line
type Job struct {
	Modifiers []gradex.ModifierConfig
	Previews  []*PreviewCommand
}

type Command interface {
	Parse(args []string) (err error)
	Args() (args []string)
	PrintDefaults()
	Configure(job *Job) (err error)
}

var commandMap = map[string]struct {
	NewCommand  func() Command
	Description string
}{
	"modifier": {func() Command { return NewModifierCommand() }, "Add an extrusion modifier region"},
	"preview":  {func() Command { return NewPreviewCommand() }, "Write a PNG preview of the applied multipliers"},
}

func Usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n\n")
	fmt.Fprintf(os.Stderr, "  gradex [options] -i input.gcode -o output.gcode [command [options]...]...\n")
	fmt.Fprintf(os.Stderr, "  gradex [options] @cmdfile\n\n")
	pflag.PrintDefaults()

	keys := []string{}
	for key := range commandMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr)
	for _, key := range keys {
		fmt.Fprintf(os.Stderr, "  %-20s %s\n", key, commandMap[key].Description)
	}

	for _, key := range keys {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Options for '%s':\n", key)
		fmt.Fprintln(os.Stderr)
		commandMap[key].NewCommand().PrintDefaults()
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Mesh formats: %v\n", gradex.MeshSuffixes())
}

// ParseCommands configures a job from a chain of commands
func ParseCommands(args []string) (job *Job, err error) {
	job = &Job{}

	for len(args) > 0 {
		item, found := commandMap[args[0]]
		if !found {
			err = fmt.Errorf("%v: unknown command", args[0])
			return
		}

		cmd := item.NewCommand()
		err = cmd.Parse(args[1:])
		if err != nil {
			err = errors.Wrap(err, args[0])
			return
		}

		err = cmd.Configure(job)
		if err != nil {
			return
		}

		args = cmd.Args()
	}

	return
}

func openInput(name string) (reader io.ReadCloser, size int64, err error) {
	if name == "-" {
		reader = io.NopCloser(os.Stdin)
		return
	}

	file, err := os.Open(name)
	if err != nil {
		return
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return
	}

	reader = file
	size = info.Size()

	return
}

func openOutput(name string) (writer io.WriteCloser, err error) {
	if name == "-" || len(name) == 0 {
		writer = nopWriteCloser{os.Stdout}
		return
	}

	writer, err = os.Create(name)

	return
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func evaluate(ctx context.Context, job *Job) (err error) {
	if len(param.input) == 0 {
		err = errors.New("--input: Required parameter missing")
		return
	}

	set, _ := gradex.LoadModifiers(job.Modifiers)
	set.Samples = param.samples
	TraceVerbosef(VerbosityNotice, "Loaded %v of %v modifiers", set.Len(), len(job.Modifiers))
	for _, mod := range set.Modifiers {
		TraceVerbosef(VerbosityInfo, "  %v", mod)
	}

	reader, size, err := openInput(param.input)
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	writer, err := openOutput(param.output)
	if err != nil {
		return
	}

	samples := &gradex.SampleLog{}
	opts := []gradex.RewriterOption{
		gradex.WithRecorder(samples),
		gradex.WithWorkers(param.workers),
		gradex.WithBatchSize(param.batchSize),
	}

	var prog *gradex.Progress
	if verbosity >= VerbosityNotice && size > 0 {
		gradex.SetProgress(&termProgress{writer: os.Stderr, prefix: "Rewriting: "})
		prog = gradex.NewProgress(size)
		opts = append(opts, gradex.WithProgress(prog))
	}

	rw := gradex.NewRewriter(set, opts...)
	stats, err := rw.Rewrite(ctx, reader, writer)
	if prog != nil {
		prog.Close()
	}
	if err != nil {
		writer.Close()
		return
	}

	err = writer.Close()
	if err != nil {
		return
	}

	if stats.Moves == 0 {
		TraceVerbosef(VerbosityWarning, "No extrusion moves found in the input G-code.")
	} else {
		x, y, z, mult := samples.Ranges()
		TraceVerbosef(VerbosityNotice, "Lines: %v, moves: %v, resets: %v, skipped: %v",
			stats.Lines, stats.Moves, stats.Resets, stats.Skipped)
		TraceVerbosef(VerbosityWarning, "G-code X range: %.2f to %.2f", x.Min, x.Max)
		TraceVerbosef(VerbosityWarning, "G-code Y range: %.2f to %.2f", y.Min, y.Max)
		TraceVerbosef(VerbosityWarning, "G-code Z range: %.2f to %.2f", z.Min, z.Max)
		TraceVerbosef(VerbosityNotice, "Multiplier range: %.3f to %.3f", mult.Min, mult.Max)
	}

	for _, pc := range job.Previews {
		err = pc.Write(samples.Samples, set)
		if err != nil {
			return
		}
	}

	return
}

func main() {
	pflag.Parse()

	args, err := ExpandScripts(pflag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Command scripts may carry global options too
	if len(args) > 0 && len(args[0]) > 1 && args[0][0] == '-' {
		err = pflag.CommandLine.Parse(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		args = pflag.Args()
	}

	SetVerbosity(Verbosity(param.verbose))
	gradex.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: verbosity.LogLevel(),
	})))

	job, err := ParseCommands(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		pflag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = evaluate(ctx, job)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
