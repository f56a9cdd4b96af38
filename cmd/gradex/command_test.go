//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ezrec/gradex"
)

func TestCommandExpand(t *testing.T) {
	table := map[string]struct {
		In    string
		Out   []string
		Error error
	}{
		"hello":  {`hello world`, []string{"hello", "world"}, nil},
		"setenv": {`hello ${MONKEY}`, []string{"hello", "monkey"}, nil},
		"oct":    {`\101`, []string{"A"}, nil},
		"escape": {`hello\ you\e[7m\z\e[m\r\n\101`, []string{"hello you\033[7mz\033[m\r\nA"}, nil},
		"quotes": {`"hello world" 'and you "too"'`, []string{"hello world", "and you \"too\""}, nil},
		"quoted": {`"hello 'nice' world" "you \'too"`, []string{"hello 'nice' world", "you 'too"}, nil},
		"multi": {`-i part.gcode
modifier --file "top plate.stl" --center 1.2 --edge 1.0
preview -o part.png
`, []string{"-i", "part.gcode", "modifier", "--file", "top plate.stl", "--center", "1.2", "--edge", "1.0", "preview", "-o", "part.png"}, nil},
	}

	os.Setenv("MONKEY", "monkey")

	for key, item := range table {
		reader := bytes.NewReader([]byte(item.In))
		args, err := CommandExpand(reader)
		if err != item.Error {
			t.Errorf("%v: expected %v, got %v", key, item.Error, err)
			continue
		}

		if err != nil {
			continue
		}

		if len(args) != len(item.Out) {
			t.Errorf("%v: expected len() %v, got %v", key, len(item.Out), len(args))
			continue
		}

		for n, arg := range args {
			if arg != item.Out[n] {
				t.Errorf("%v: expected [%v] %v, got %v", key, n, item.Out[n], arg)
				break
			}
		}
	}
}

func TestCommandExpandIncomplete(t *testing.T) {
	_, err := CommandExpand(strings.NewReader(`"never closed`))
	if err == nil {
		t.Errorf("expected an error for an unterminated quote")
	}
}

func TestExpandScripts(t *testing.T) {
	script := filepath.Join(t.TempDir(), "job.cmd")
	err := os.WriteFile(script, []byte("modifier -f a.stl -c 2 -e 1\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	args, err := ExpandScripts([]string{"-v", "@" + script, "preview", "@"})
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"-v", "modifier", "-f", "a.stl", "-c", "2", "-e", "1", "preview", "@"}
	if strings.Join(args, "|") != strings.Join(expected, "|") {
		t.Errorf("expected %v, got %v", expected, args)
	}

	_, err = ExpandScripts([]string{"@" + script + ".missing"})
	if err == nil {
		t.Errorf("expected an error for a missing script")
	}
}

func TestParseCommands(t *testing.T) {
	args := strings.Fields("modifier -f a.stl -c 1.2 -e 1.0 " +
		"modifier --file b.obj --type 3D --center 0.8 --edge 1 --exponent 2 --min-layer 0.4 " +
		"preview -o out.png -z 1.0")

	job, err := ParseCommands(args)
	if err != nil {
		t.Fatal(err)
	}

	if len(job.Modifiers) != 2 || len(job.Previews) != 1 {
		t.Fatalf("expected 2 modifiers and 1 preview, got %+v", job)
	}

	first := job.Modifiers[0]
	if first.Type != gradex.RegionPlanar || first.CenterMultiplier != 1.2 || first.EdgeMultiplier != 1.0 ||
		first.GradientExponent != gradex.DefaultGradientExponent || first.MinLayer != gradex.DefaultMinLayer {
		t.Errorf("unexpected first modifier %+v", first)
	}

	second := job.Modifiers[1]
	if second.Filename != "b.obj" || second.Type != gradex.RegionVolumetric || second.CenterMultiplier != 0.8 ||
		second.GradientExponent != 2.0 || second.MinLayer != 0.4 {
		t.Errorf("unexpected second modifier %+v", second)
	}

	opt := job.Previews[0].Options()
	if opt.MaxZ != 1.0 || opt.Size != 800 {
		t.Errorf("unexpected preview options %+v", opt)
	}
}

func TestParseCommandsErrors(t *testing.T) {
	table := map[string]string{
		"unknown":    "decimate",
		"no-file":    "modifier -c 1 -e 1",
		"no-edge":    "modifier -f a.stl -c 1.2",
		"no-center":  "modifier -f a.stl -e 1.2",
		"bad-flag":   "modifier -f a.stl -c 1 -e 1 --bogus",
		"bad-number": "modifier -f a.stl -c one -e 1",
		"no-output":  "preview -s 100",
		"trailing":   "preview -o a.png extra",
	}

	for key, line := range table {
		_, err := ParseCommands(strings.Fields(line))
		if err == nil {
			t.Errorf("%v: expected an error", key)
		}
	}
}

func TestPreviewOptions(t *testing.T) {
	cmd := NewPreviewCommand()
	err := cmd.Parse([]string{"-o", "a.png"})
	if err != nil {
		t.Fatal(err)
	}

	opt := cmd.Options()
	if !math.IsInf(opt.MaxZ, 1) {
		t.Errorf("expected no height limit, got %v", opt.MaxZ)
	}
}
