package mesh

import "github.com/dd0wney/cluso-navmesh/pkg/geom"

// Grid builds a cols x rows mesh of square cells of the given size with the
// origin at (0, 0). Each open cell is split into two triangles along its
// rising diagonal. Cells for which blocked returns true are left out, so
// their sides become walls. blocked may be nil.
func Grid(cols, rows int, cell float64, blocked func(col, row int) bool) (*Mesh, error) {
	verts := make([]geom.Vec2, 0, (cols+1)*(rows+1))
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			verts = append(verts, geom.V(float64(c)*cell, float64(r)*cell))
		}
	}

	at := func(c, r int) int { return r*(cols+1) + c }

	faces := make([][3]int, 0, cols*rows*2)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if blocked != nil && blocked(c, r) {
				continue
			}
			v00, v10 := at(c, r), at(c+1, r)
			v01, v11 := at(c, r+1), at(c+1, r+1)
			faces = append(faces, [3]int{v00, v10, v11}, [3]int{v00, v11, v01})
		}
	}

	return FromIndexed(verts, faces, nil)
}
