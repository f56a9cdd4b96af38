//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	defaultBatchSize = 4096
)

// Stats summarises a rewrite
type Stats struct {
	Lines   int // Lines read (and written)
	Moves   int // Extruding moves rewritten
	Resets  int // Extrusion position resets
	Skipped int // Extruding moves passed through due to malformed fields
}

// streamState is the machine state tracked across lines
type streamState struct {
	lastX, lastY float64
	haveXY       bool // lastX, lastY have been set
	lastZ        float64
	lastRawE     float64 // Last E seen in the source
	accumulatedE float64 // Last E written to the output
}

// pendingLine is a line scanned, but not yet written
type pendingLine struct {
	line gcodeLine

	reset  bool
	resetE float64

	move       bool
	start, end orb.Point
	z          float64
	delta      float64
	eLoc       []int
	multiplier float64
}

// Rewriter scales the extrusion of each move in a G-code stream by the
// multiplier of a ModifierSet at the move's position.
type Rewriter struct {
	set       *ModifierSet
	recorder  Recorder
	progress  *Progress
	workers   int
	batchSize int

	state streamState
}

type RewriterOption func(rw *Rewriter)

// WithRecorder sends a Sample for every rewritten move to rec
func WithRecorder(rec Recorder) RewriterOption {
	return func(rw *Rewriter) { rw.recorder = rec }
}

// WithProgress reports consumed input bytes to prog
func WithProgress(prog *Progress) RewriterOption {
	return func(rw *Rewriter) { rw.progress = prog }
}

// WithWorkers evaluates multipliers on n goroutines
func WithWorkers(n int) RewriterOption {
	return func(rw *Rewriter) { rw.workers = n }
}

// WithBatchSize sets the number of lines scanned between evaluations
func WithBatchSize(n int) RewriterOption {
	return func(rw *Rewriter) {
		if n > 0 {
			rw.batchSize = n
		}
	}
}

func NewRewriter(set *ModifierSet, opts ...RewriterOption) (rw *Rewriter) {
	if set == nil {
		set = NewModifierSet()
	}

	rw = &Rewriter{
		set:       set,
		workers:   1,
		batchSize: defaultBatchSize,
	}

	for _, opt := range opts {
		opt(rw)
	}

	return
}

// countingReader counts the bytes read through it
type countingReader struct {
	io.Reader
	count int64
}

func (cr *countingReader) Read(p []byte) (n int, err error) {
	n, err = cr.Reader.Read(p)
	cr.count += int64(n)
	return
}

// Rewrite copies reader to writer, one line out for each line in, with the
// E field of every extruding move rescaled.
func (rw *Rewriter) Rewrite(ctx context.Context, reader io.Reader, writer io.Writer) (stats Stats, err error) {
	rw.state = streamState{}

	counter := &countingReader{Reader: reader}
	in := bufio.NewReader(counter)
	out := bufio.NewWriter(writer)

	batch := make([]pendingLine, 0, rw.batchSize)
	var reported int64

	eof := false
	for !eof {
		err = ctx.Err()
		if err != nil {
			return
		}

		batch = batch[:0]
		for len(batch) < rw.batchSize {
			var raw string
			raw, err = in.ReadString('\n')
			if err == io.EOF {
				eof = true
				err = nil
			} else if err != nil {
				err = errors.Wrap(err, "read")
				return
			}

			if len(raw) == 0 {
				break
			}

			batch = append(batch, pendingLine{line: splitLine(raw)})
			rw.scan(&batch[len(batch)-1], &stats)

			if eof {
				break
			}
		}

		rw.evaluate(batch)

		err = rw.apply(batch, out)
		if err != nil {
			err = errors.Wrap(err, "write")
			return
		}

		stats.Lines += len(batch)

		if rw.progress != nil {
			rw.progress.Indicate(counter.count - reported)
			reported = counter.count
		}
	}

	err = out.Flush()
	if err != nil {
		err = errors.Wrap(err, "write")
		return
	}

	log := Logger()
	if stats.Moves == 0 {
		log.Info("no extrusion moves found")
	} else {
		log.Info("rewrite complete", "lines", stats.Lines, "moves", stats.Moves,
			"resets", stats.Resets, "skipped", stats.Skipped)
	}

	return
}

// scan updates the stream state for a line, and determines the geometry
// and raw extrusion of a move.
func (rw *Rewriter) scan(pl *pendingLine, stats *Stats) {
	st := &rw.state
	line := &pl.line

	if line.isReset() {
		e, _, found, err := line.field(fieldE)
		if found && err == nil {
			st.lastRawE = e
			pl.reset = true
			pl.resetE = e
			stats.Resets++
			Logger().Debug("extrusion reset", "e", e)
		}
		return
	}

	z, _, found, err := line.field(fieldZ)
	if found && err == nil {
		st.lastZ = z
	}

	if !line.isMove() {
		return
	}

	e, eLoc, eFound, eErr := line.field(fieldE)
	x, _, xFound, xErr := line.field(fieldX)
	y, _, yFound, yErr := line.field(fieldY)
	if !eFound || eErr != nil || xErr != nil || yErr != nil {
		stats.Skipped++
		return
	}

	pl.move = true
	pl.eLoc = eLoc
	pl.delta = e - st.lastRawE
	st.lastRawE = e

	// Cold start is the origin
	end := orb.Point{st.lastX, st.lastY}
	if xFound {
		end[0] = x
	}
	if yFound {
		end[1] = y
	}

	start := end
	if st.haveXY {
		start = orb.Point{st.lastX, st.lastY}
	}

	if xFound || yFound {
		st.lastX, st.lastY = end[0], end[1]
		st.haveXY = true
	}

	pl.start = start
	pl.end = end
	pl.z = st.lastZ

	stats.Moves++
}

// evaluate the multiplier of every move in the batch
func (rw *Rewriter) evaluate(batch []pendingLine) {
	var moves []*pendingLine
	for n := range batch {
		pl := &batch[n]
		if pl.move {
			pl.multiplier = 1.0
			moves = append(moves, pl)
		}
	}

	if rw.set.Len() == 0 || len(moves) == 0 {
		return
	}

	workers := rw.workers
	if workers > len(moves) {
		workers = len(moves)
	}

	if workers <= 1 {
		for _, pl := range moves {
			pl.multiplier = rw.set.Move(pl.start, pl.end, pl.z)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (len(moves) + workers - 1) / workers
	for first := 0; first < len(moves); first += chunk {
		last := first + chunk
		if last > len(moves) {
			last = len(moves)
		}

		wg.Add(1)
		go func(moves []*pendingLine) {
			defer wg.Done()
			for _, pl := range moves {
				pl.multiplier = rw.set.Move(pl.start, pl.end, pl.z)
			}
		}(moves[first:last])
	}
	wg.Wait()
}

// apply the multipliers, in stream order, and write the batch
func (rw *Rewriter) apply(batch []pendingLine, out io.StringWriter) (err error) {
	st := &rw.state
	passthrough := rw.set.Len() == 0

	for n := range batch {
		pl := &batch[n]
		text := pl.line.String()

		switch {
		case pl.reset:
			st.accumulatedE = pl.resetE
		case pl.move:
			st.accumulatedE += pl.delta * pl.multiplier
			if !passthrough {
				text = pl.line.withE(pl.eLoc, st.accumulatedE)
			}

			if rw.recorder != nil {
				rw.recorder.Record(Sample{
					X:          pl.end[0],
					Y:          pl.end[1],
					Z:          pl.z,
					Multiplier: pl.multiplier,
				})
			}
		}

		_, err = out.WriteString(text)
		if err != nil {
			return
		}
	}

	return
}
