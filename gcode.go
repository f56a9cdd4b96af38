//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	fieldX = regexp.MustCompile(`X([-+]?[0-9]*\.?[0-9]+)`)
	fieldY = regexp.MustCompile(`Y([-+]?[0-9]*\.?[0-9]+)`)
	fieldZ = regexp.MustCompile(`Z([-+]?[0-9]*\.?[0-9]+)`)
	fieldE = regexp.MustCompile(`E([-+]?[0-9]*\.?[0-9]+)`)
)

// Commands are matched as a leading G word, so compact forms such as
// "G1X2E3" are recognised while "G10" and "G11" are not.
var (
	commandMove  = regexp.MustCompile(`^G0?1(?:[^0-9.]|$)`)
	commandReset = regexp.MustCompile(`^G92(?:[^0-9.]|$)`)
)

// gcodeLine is a single line of G-code, with its terminator split off
type gcodeLine struct {
	text string // Line contents
	eol  string // "\n", "\r\n" or "" for a final unterminated line
}

func splitLine(raw string) (line gcodeLine) {
	line.text = raw
	if strings.HasSuffix(line.text, "\n") {
		line.text = line.text[:len(line.text)-1]
		line.eol = "\n"
		if strings.HasSuffix(line.text, "\r") {
			line.text = line.text[:len(line.text)-1]
			line.eol = "\r\n"
		}
	}

	return
}

func (line *gcodeLine) isMove() bool {
	return commandMove.MatchString(line.text) && strings.Contains(line.text, "E")
}

func (line *gcodeLine) isReset() bool {
	return commandReset.MatchString(line.text) && strings.Contains(line.text, "E")
}

// field finds the first occurrence of a field, returning its value and
// the byte range of the whole token. A token whose number does not parse
// is reported as an error.
func (line *gcodeLine) field(re *regexp.Regexp) (value float64, loc []int, found bool, err error) {
	loc = re.FindStringSubmatchIndex(line.text)
	if loc == nil {
		return
	}

	value, err = strconv.ParseFloat(line.text[loc[2]:loc[3]], 64)
	if err != nil {
		loc = nil
		return
	}

	loc = loc[:2]
	found = true
	return
}

// withE replaces the token at loc with a new E value
func (line *gcodeLine) withE(loc []int, e float64) string {
	return line.text[:loc[0]] + "E" + strconv.FormatFloat(e, 'f', 5, 64) + line.text[loc[1]:] + line.eol
}

func (line *gcodeLine) String() string {
	return line.text + line.eol
}
