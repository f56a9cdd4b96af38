//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

type Progressor interface {
	Show(percent float32)
	Stop()
}

type nilProgress struct{}

func (np *nilProgress) Show(float32) {}
func (np *nilProgress) Stop()        {}

var defaultProgress = Progressor(&nilProgress{})

func SetProgress(prog Progressor) {
	if prog == Progressor(nil) {
		prog = &nilProgress{}
	}
	defaultProgress = prog
}

// Progress reports the fraction of a stream consumed, in bytes. A total
// of zero or less (ie a pipe) only reports the start and the end.
type Progress struct {
	Progressor
	Completed chan int64
	Done      chan struct{}
}

func NewProgress(total int64) (prog *Progress) {
	prog = &Progress{
		Progressor: defaultProgress,
		Completed:  make(chan int64, 16),
		Done:       make(chan struct{}),
	}

	go func(prog *Progress) {
		var consumed int64
		shown := -1
		prog.Show(0.0)
		for n := range prog.Completed {
			if total <= 0 {
				continue
			}
			consumed += n
			percent := int(consumed * 100 / total)
			if percent > 100 {
				percent = 100
			}
			if percent != shown {
				prog.Show(float32(percent))
				shown = percent
			}
		}
		prog.Show(100.0)
		prog.Stop()
		close(prog.Done)
	}(prog)

	return
}

// Indicate that n more bytes were consumed
func (prog *Progress) Indicate(n int64) {
	prog.Completed <- n
}

func (prog *Progress) Close() {
	close(prog.Completed)
	<-prog.Done
}
