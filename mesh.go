//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Mesh is the vertex set of a modifier's source geometry
type Mesh struct {
	Vertices []mgl64.Vec3 // Distinct vertices, in first-seen order
}

// NewMesh builds a mesh, merging vertices with identical coordinates
func NewMesh(vertices []mgl64.Vec3) (mesh *Mesh) {
	seen := make(map[mgl64.Vec3]struct{}, len(vertices))

	mesh = &Mesh{}
	for _, v := range vertices {
		if _, found := seen[v]; found {
			continue
		}
		seen[v] = struct{}{}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	return
}

// MeshLoader decodes a mesh from a reader of the given size
type MeshLoader func(reader io.ReaderAt, size int64) (mesh *Mesh, err error)

var meshLoaderMap map[string]MeshLoader

// RegisterMeshLoader associates a file suffix (ie ".stl") with a loader
func RegisterMeshLoader(suffix string, loader MeshLoader) {
	if meshLoaderMap == nil {
		meshLoaderMap = make(map[string]MeshLoader)
	}

	meshLoaderMap[strings.ToLower(suffix)] = loader
}

// MeshSuffixes lists the registered mesh file suffixes
func MeshSuffixes() (list []string) {
	for suffix := range meshLoaderMap {
		list = append(list, suffix)
	}
	sort.Strings(list)

	return
}

// ErrMeshFormat is the cause of errors for files with no registered loader
var ErrMeshFormat = errors.New("mesh file extension unknown")

// LoadMesh reads a mesh file, selecting the loader by file suffix
func LoadMesh(filename string) (mesh *Mesh, err error) {
	var loader MeshLoader
	lower := strings.ToLower(filename)
	for suffix, newLoader := range meshLoaderMap {
		if strings.HasSuffix(lower, suffix) {
			loader = newLoader
			break
		}
	}

	if loader == nil {
		err = errors.Wrap(ErrMeshFormat, filename)
		return
	}

	reader, err := os.Open(filename)
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	info, err := reader.Stat()
	if err != nil {
		return
	}

	mesh, err = loader(reader, info.Size())
	if err != nil {
		err = errors.Wrapf(err, "%s", filename)
		return
	}

	return
}
