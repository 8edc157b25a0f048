package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/goanatomy/pkg/stl"
)

// ErrUnsupportedModel is returned for model files that are not glTF, GLB or STL
var ErrUnsupportedModel = errors.New("unsupported model file")

// Load reads a model file into a registry and prepares every material for
// opacity changes. Supported: .glb, .gltf, .stl
func Load(filePath string) (*Registry, error) {
	var (
		reg *Registry
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".glb", ".gltf":
		reg, err = LoadGLTF(filePath)
	case ".stl":
		var model *stl.Model
		model, err = stl.Parse(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		reg, err = FromSTL(model, strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath)))
	default:
		return nil, fmt.Errorf("%w: %s (expected .glb, .gltf or .stl)", ErrUnsupportedModel, ext)
	}
	if err != nil {
		return nil, err
	}

	reg.PrepareMaterials()
	return reg, nil
}

// FromSTL converts an STL model into a registry with one mesh per solid
func FromSTL(model *stl.Model, rootName string) (*Registry, error) {
	b := NewBuilder(rootName)
	for i, solid := range model.Solids {
		name := solid.Name
		if name == "" {
			name = fmt.Sprintf("solid_%d", i)
		}
		b.AddMesh(b.Root(), name, solid.Triangles, DefaultColor)
	}
	return b.Build()
}
