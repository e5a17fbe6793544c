package navgraph

import "github.com/dd0wney/cluso-navmesh/pkg/mesh"

// ErrMalformedAdjacency is returned, wrapped in a *BuildError, when the
// mesh neighbour links are inconsistent.
var ErrMalformedAdjacency = mesh.ErrMalformedAdjacency

// BuildError describes a graph that could not be constructed.
type BuildError = mesh.BuildError
