//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package obj loads the vertices of Wavefront OBJ meshes
package obj

import (
	"github.com/ezrec/gradex"
)

func init() {
	gradex.RegisterMeshLoader(".obj", Decode)
}
