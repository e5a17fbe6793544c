package mesh

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-navmesh/pkg/geom"
)

// Document is the on-disk YAML form of an indexed mesh.
//
//	vertices: [[0, 0], [10, 0], [0, 10]]
//	faces: [[0, 1, 2]]
//	constrained: [[0, 1]]   # optional interior walls
//	exterior: [3]           # optional non-walkable faces
type Document struct {
	Vertices    [][2]float64 `yaml:"vertices"`
	Faces       [][3]int     `yaml:"faces"`
	Constrained [][2]int     `yaml:"constrained,omitempty"`
	Exterior    []int        `yaml:"exterior,omitempty"`
}

// Mesh converts the document to a validated mesh.
func (d *Document) Mesh() (*Mesh, error) {
	verts := make([]geom.Vec2, len(d.Vertices))
	for i, v := range d.Vertices {
		verts[i] = geom.V(v[0], v[1])
	}

	m, err := FromIndexed(verts, d.Faces, d.Constrained)
	if err != nil {
		return nil, err
	}
	for _, f := range d.Exterior {
		if f < 0 || f >= m.Len() {
			return nil, FaceError(f, "exterior face out of range")
		}
		m.Triangles[f].Interior = false
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeYAML reads a mesh document from r. Unknown fields are rejected.
func DecodeYAML(r io.Reader) (*Mesh, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode mesh document: %w", err)
	}
	return doc.Mesh()
}

// LoadYAML reads a mesh document from a file.
func LoadYAML(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh document: %w", err)
	}
	defer f.Close()
	return DecodeYAML(f)
}
