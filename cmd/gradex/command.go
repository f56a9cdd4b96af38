//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var scanEscapes = map[byte]byte{
	'b':  '\b',
	't':  '\t',
	'n':  '\n',
	'r':  '\r',
	'e':  '\033',
	'"':  '"',
	'\'': '\'',
	' ':  ' ',
	'\\': '\\',
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

// ScanArgs is a bufio.SplitFunc for shell-like words: whitespace
// separated, with single and double quotes, backslash escapes and three
// digit octal escapes.
func ScanArgs(data []byte, atEOF bool) (advance int, token []byte, err error) {
	skip := 0
	for ; skip < len(data) && isSpace(data[skip]); skip++ {
	}

	data = data[skip:]
	if len(data) == 0 {
		advance = skip
		return
	}

	var word []byte

	inQuote := false
	inDquote := false
	inEscape := false
	oct := 0
	octDigits := 0

	flushOct := func() {
		if octDigits > 0 {
			word = append(word, byte(oct))
			oct = 0
			octDigits = 0
		}
	}

	for here, c := range data {
		if inEscape {
			switch {
			case c >= '0' && c <= '7':
				oct = (oct * 8) + int(c-'0')
				octDigits++
				if octDigits == 3 {
					flushOct()
				}
			default:
				flushOct()
				if esc, ok := scanEscapes[c]; ok {
					c = esc
				}
				word = append(word, c)
			}
			inEscape = (octDigits != 0)
			continue
		}

		switch {
		case c == '"' && !inQuote:
			inDquote = !inDquote
		case c == '\'' && !inDquote:
			inQuote = !inQuote
		case c == '\\':
			inEscape = true
		case isSpace(c) && !inDquote && !inQuote:
			advance = skip + here
			token = word
			return
		default:
			word = append(word, c)
		}
	}

	if inEscape && octDigits > 0 {
		flushOct()
		inEscape = false
	}

	if !inDquote && !inEscape && !inQuote {
		advance = skip + len(data)
		if len(word) > 0 {
			token = word
		}
		return
	}

	if atEOF {
		err = fmt.Errorf("incomplete line: '%v' => '%v'", string(data), string(word))
	}

	return
}

// CommandExpand splits a command script into words, expanding
// environment variables in each.
func CommandExpand(reader io.Reader) (out []string, err error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(ScanArgs)
	for scanner.Scan() {
		out = append(out, os.ExpandEnv(scanner.Text()))
	}

	err = scanner.Err()
	if err != nil {
		out = nil
	}

	return
}

// ExpandScripts replaces every "@file" argument with the words of the
// command script in file.
func ExpandScripts(args []string) (out []string, err error) {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "@") || len(arg) == 1 {
			out = append(out, arg)
			continue
		}

		var script *os.File
		script, err = os.Open(arg[1:])
		if err != nil {
			return
		}

		var words []string
		words, err = CommandExpand(script)
		script.Close()
		if err != nil {
			err = errors.Wrap(err, arg[1:])
			return
		}

		out = append(out, words...)
	}

	return
}
