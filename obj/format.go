//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package obj

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/ezrec/gradex"
)

var ErrNoVertices = errors.New("obj: no vertices")

// Decode reads the geometric vertex ("v") records of an OBJ file. Faces,
// normals, texture coordinates and groups are ignored.
func Decode(reader io.ReaderAt, size int64) (mesh *gradex.Mesh, err error) {
	scanner := bufio.NewScanner(io.NewSectionReader(reader, 0, size))

	var vertices []mgl64.Vec3
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if n := strings.IndexByte(text, '#'); n >= 0 {
			text = text[:n]
		}

		fields := strings.Fields(text)
		if len(fields) == 0 || fields[0] != "v" {
			continue
		}

		// Optional fourth (w) coordinate is ignored
		if len(fields) != 4 && len(fields) != 5 {
			err = errors.Errorf("obj: line %d: malformed vertex", line)
			return
		}

		var v mgl64.Vec3
		for n := range v {
			v[n], err = strconv.ParseFloat(fields[n+1], 64)
			if err != nil {
				err = errors.Wrapf(err, "obj: line %d", line)
				return
			}
		}

		vertices = append(vertices, v)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if len(vertices) == 0 {
		err = ErrNoVertices
		return
	}

	mesh = gradex.NewMesh(vertices)

	return
}
