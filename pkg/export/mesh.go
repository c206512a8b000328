package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chazu/wingbox/pkg/kernel"
)

// MeshData is the JSON-serializable mesh format sent to the viewer.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// BuildMesh tessellates the solid through the kernel and wraps the result
// with its part name and a color hint.
func BuildMesh(k kernel.Kernel, s kernel.Solid, name string) (*MeshData, error) {
	mesh, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", name, err)
	}
	return &MeshData{
		Vertices: mesh.Vertices,
		Normals:  mesh.Normals,
		Indices:  mesh.Indices,
		PartName: name,
		Color:    colorPalette[0],
	}, nil
}

// WriteMesh writes the mesh as indented JSON.
func WriteMesh(w io.Writer, md *MeshData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(md)
}
