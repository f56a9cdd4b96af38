//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"io"
)

// termProgress shows a percentage, rewriting a single terminal line
type termProgress struct {
	writer io.Writer
	prefix string
}

func (tp *termProgress) Show(percent float32) {
	fmt.Fprintf(tp.writer, "\r%s%3.0f%%", tp.prefix, percent)
}

func (tp *termProgress) Stop() {
	fmt.Fprintln(tp.writer)
}
