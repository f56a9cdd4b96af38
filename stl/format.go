//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-restruct/restruct"
	"github.com/pkg/errors"

	"github.com/ezrec/gradex"
)

type stlHeader struct {
	Comment   [80]byte // 00: Free form, may start with "solid"
	Triangles uint32   // 50: Number of triangle records
}

type stlVec3 struct {
	X, Y, Z float32
}

type stlTriangle struct {
	Normal    stlVec3    // 00:
	Vertices  [3]stlVec3 // 0c:
	Attribute uint16     // 30: Usually zero
}

var (
	headerSize, _   = restruct.SizeOf(&stlHeader{})
	triangleSize, _ = restruct.SizeOf(&stlTriangle{})
)

var (
	ErrEmpty     = errors.New("stl: empty file")
	ErrTruncated = errors.New("stl: truncated binary file")
	ErrNoSolid   = errors.New("stl: no vertices")
)

// Decode an STL mesh, binary or ASCII
func Decode(reader io.ReaderAt, size int64) (mesh *gradex.Mesh, err error) {
	if size == 0 {
		err = ErrEmpty
		return
	}

	data, err := io.ReadAll(io.NewSectionReader(reader, 0, size))
	if err != nil {
		return
	}

	var vertices []mgl64.Vec3
	if isBinary(data) {
		vertices, err = decodeBinary(data)
	} else if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		vertices, err = decodeASCII(data)
	} else {
		err = ErrTruncated
	}
	if err != nil {
		return
	}

	if len(vertices) == 0 {
		err = ErrNoSolid
		return
	}

	mesh = gradex.NewMesh(vertices)

	return
}

// isBinary checks that the triangle count agrees with the data length.
// Many binary files start with "solid" too, so the prefix is not enough.
func isBinary(data []byte) bool {
	if len(data) < headerSize {
		return false
	}

	count := binary.LittleEndian.Uint32(data[80:84])
	return int64(len(data)) == int64(headerSize)+int64(count)*int64(triangleSize)
}

func decodeBinary(data []byte) (vertices []mgl64.Vec3, err error) {
	var header stlHeader
	err = restruct.Unpack(data, binary.LittleEndian, &header)
	if err != nil {
		return
	}

	vertices = make([]mgl64.Vec3, 0, 3*header.Triangles)

	offset := headerSize
	for n := uint32(0); n < header.Triangles; n++ {
		var tri stlTriangle
		err = restruct.Unpack(data[offset:offset+triangleSize], binary.LittleEndian, &tri)
		if err != nil {
			err = errors.Wrapf(err, "triangle %d", n)
			return
		}
		offset += triangleSize

		for _, v := range tri.Vertices {
			vertices = append(vertices, mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)})
		}
	}

	return
}

func decodeASCII(data []byte) (vertices []mgl64.Vec3, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "vertex" {
			continue
		}

		if len(fields) != 4 {
			err = errors.Errorf("stl: line %d: malformed vertex", line)
			return
		}

		var v mgl64.Vec3
		for n := range v {
			v[n], err = strconv.ParseFloat(fields[n+1], 64)
			if err != nil {
				err = errors.Wrapf(err, "stl: line %d", line)
				return
			}
		}

		vertices = append(vertices, v)
	}

	err = scanner.Err()

	return
}
