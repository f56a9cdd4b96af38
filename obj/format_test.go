//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package obj

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/ezrec/gradex"
)

const testCube = `# unit square prism
o prism
v 0 0 0
v 4 0 0
v 4 4 0
v 0 4 0 1.0
v 0 0 0   # repeated
vn 0 0 1
vt 0.5 0.5
f 1 2 3
f 1//1 3//1 4//1
`

func TestDecode(t *testing.T) {
	mesh, err := Decode(strings.NewReader(testCube), int64(len(testCube)))
	if err != nil {
		t.Fatal(err)
	}

	expected := []mgl64.Vec3{{0, 0, 0}, {4, 0, 0}, {4, 4, 0}, {0, 4, 0}}
	if len(mesh.Vertices) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, mesh.Vertices)
	}
	for n, v := range expected {
		if mesh.Vertices[n] != v {
			t.Errorf("vertex %v: expected %v, got %v", n, v, mesh.Vertices[n])
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	table := map[string]struct {
		In    string
		Cause error
	}{
		"empty":      {"", ErrNoVertices},
		"faces-only": {"f 1 2 3\n", ErrNoVertices},
		"short":      {"v 1 2\n", nil},
		"bad-number": {"v 1 2 x\n", nil},
	}

	for key, item := range table {
		_, err := Decode(strings.NewReader(item.In), int64(len(item.In)))
		if err == nil {
			t.Errorf("%v: expected an error", key)
			continue
		}
		if item.Cause != nil && errors.Cause(err) != item.Cause {
			t.Errorf("%v: expected %v, got %v", key, item.Cause, err)
		}
	}
}

func TestPlanarFromObj(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prism.obj")
	err := os.WriteFile(path, []byte(testCube), 0644)
	if err != nil {
		t.Fatal(err)
	}

	mc := gradex.NewModifierConfig(path, gradex.RegionPlanar, 2.0, 1.0)
	mod, err := mc.Modifier()
	if err != nil {
		t.Fatal(err)
	}

	if out := mod.Evaluate(2, 2, 0); out != 2.0 {
		t.Errorf("expected 2.0 at the centre, got %v", out)
	}
	if out := mod.Evaluate(5, 2, 0); out != 1.0 {
		t.Errorf("expected 1.0 outside, got %v", out)
	}
}
