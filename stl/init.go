//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package stl loads binary and ASCII STL meshes
package stl

import (
	"github.com/ezrec/gradex"
)

func init() {
	gradex.RegisterMeshLoader(".stl", Decode)
}
