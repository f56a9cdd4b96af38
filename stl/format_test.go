//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package stl

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-restruct/restruct"
	"github.com/pkg/errors"

	"github.com/ezrec/gradex"
)

var testTriangles = []stlTriangle{
	{
		Normal:   stlVec3{0, 0, -1},
		Vertices: [3]stlVec3{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}},
	},
	{
		Normal:   stlVec3{0, -1, 0},
		Vertices: [3]stlVec3{{0, 0, 0}, {10, 0, 0}, {0, 0, 10}},
	},
}

func binarySTL(t *testing.T, comment string, triangles []stlTriangle) []byte {
	header := stlHeader{Triangles: uint32(len(triangles))}
	copy(header.Comment[:], comment)

	data, err := restruct.Pack(binary.LittleEndian, &header)
	if err != nil {
		t.Fatal(err)
	}

	for n := range triangles {
		tri, err := restruct.Pack(binary.LittleEndian, &triangles[n])
		if err != nil {
			t.Fatal(err)
		}
		data = append(data, tri...)
	}

	return data
}

const testASCII = `solid tetra
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 10 0 0
      vertex 0 10 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 10 0 0
      vertex 0 0 1.0e1
    endloop
  endfacet
endsolid tetra
`

var testVertices = []mgl64.Vec3{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {0, 0, 10}}

func TestDecode(t *testing.T) {
	table := map[string][]byte{
		"binary":       binarySTL(t, "gradex test", testTriangles),
		"binary-solid": binarySTL(t, "solid but really binary", testTriangles),
		"ascii":        []byte(testASCII),
		"ascii-indent": []byte("\n  " + testASCII),
	}

	for key, data := range table {
		mesh, err := Decode(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			t.Errorf("%v: %v", key, err)
			continue
		}

		if len(mesh.Vertices) != len(testVertices) {
			t.Errorf("%v: expected %v vertices, got %v", key, len(testVertices), mesh.Vertices)
			continue
		}

		for n, v := range testVertices {
			if mesh.Vertices[n] != v {
				t.Errorf("%v: vertex %v: expected %v, got %v", key, n, v, mesh.Vertices[n])
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	full := binarySTL(t, "", testTriangles)

	table := map[string]struct {
		Data  []byte
		Cause error
	}{
		"empty":     {[]byte{}, ErrEmpty},
		"truncated": {full[:len(full)-10], ErrTruncated},
		"short":     {full[:20], ErrTruncated},
		"no-facets": {[]byte("solid empty\nendsolid empty\n"), ErrNoSolid},
		"no-triangles": {
			binarySTL(t, "", nil),
			ErrNoSolid,
		},
		"bad-vertex": {[]byte("solid x\nvertex 1 2\n"), nil},
		"bad-number": {[]byte("solid x\nvertex 1 2 three\n"), nil},
	}

	for key, item := range table {
		_, err := Decode(bytes.NewReader(item.Data), int64(len(item.Data)))
		if err == nil {
			t.Errorf("%v: expected an error", key)
			continue
		}
		if item.Cause != nil && errors.Cause(err) != item.Cause {
			t.Errorf("%v: expected %v, got %v", key, item.Cause, err)
		}
	}
}

func TestLoadMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TETRA.STL")
	err := os.WriteFile(path, binarySTL(t, "", testTriangles), 0644)
	if err != nil {
		t.Fatal(err)
	}

	mesh, err := gradex.LoadMesh(path)
	if err != nil {
		t.Fatal(err)
	}

	vol, err := gradex.NewVolumetric(mesh)
	if err != nil {
		t.Fatal(err)
	}

	if !vol.Centroid.ApproxEqual(mgl64.Vec3{2.5, 2.5, 2.5}) {
		t.Errorf("expected centroid (2.5, 2.5, 2.5), got %v", vol.Centroid)
	}
}
