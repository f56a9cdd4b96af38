//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
)

type recordProgress struct {
	sync.Mutex
	shown   []float32
	stopped bool
}

func (rp *recordProgress) Show(percent float32) {
	rp.Lock()
	defer rp.Unlock()
	rp.shown = append(rp.shown, percent)
}

func (rp *recordProgress) Stop() {
	rp.Lock()
	defer rp.Unlock()
	rp.stopped = true
}

func TestProgress(t *testing.T) {
	rp := &recordProgress{}
	SetProgress(rp)
	defer SetProgress(nil)

	in := strings.Repeat("G1 X1 Y1 E1\n", 100)

	prog := NewProgress(int64(len(in)))
	_, err := NewRewriter(everywhere(1.0), WithProgress(prog), WithBatchSize(10)).
		Rewrite(context.Background(), strings.NewReader(in), io.Discard)
	prog.Close()
	if err != nil {
		t.Fatal(err)
	}

	rp.Lock()
	defer rp.Unlock()

	if !rp.stopped {
		t.Errorf("expected Stop to be called")
	}
	if len(rp.shown) < 2 || rp.shown[0] != 0.0 || rp.shown[len(rp.shown)-1] != 100.0 {
		t.Errorf("expected progress from 0 to 100, got %v", rp.shown)
	}
	for n := 1; n < len(rp.shown); n++ {
		if rp.shown[n] < rp.shown[n-1] {
			t.Errorf("progress went backwards: %v", rp.shown)
			break
		}
	}
}
