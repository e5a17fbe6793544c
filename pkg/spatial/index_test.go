package spatial

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dd0wney/cluso-navmesh/pkg/geom"
)

func TestIndex_Query(t *testing.T) {
	ix := New[int32]()
	ix.Insert(1, geom.BoundsOf(geom.V(0, 0), geom.V(10, 10)))
	ix.Insert(2, geom.BoundsOf(geom.V(20, 20), geom.V(30, 30)))
	ix.Insert(3, geom.BoundsOf(geom.V(5, 5), geom.V(25, 25)))

	assert.Equal(t, 3, ix.Len())

	tests := []struct {
		name   string
		pt     geom.Vec2
		radius float64
		want   []int32
	}{
		{"first only", geom.V(1, 1), 0.5, []int32{1}},
		{"overlap", geom.V(7, 7), 0, []int32{1, 3}},
		{"all", geom.V(15, 15), 10, []int32{1, 2, 3}},
		{"none", geom.V(100, 100), 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ix.ItemsInRange(tt.pt, tt.radius, nil)
			sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndex_QueryRangeStops(t *testing.T) {
	ix := New[string]()
	for _, name := range []string{"a", "b", "c"} {
		ix.Insert(name, geom.BoxAround(geom.V(0, 0), 1))
	}

	visited := 0
	ix.QueryRange(geom.BoxAround(geom.V(0, 0), 1), func(string) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

func TestIndex_AppendsToDst(t *testing.T) {
	ix := New[int32]()
	ix.Insert(7, geom.BoxAround(geom.V(0, 0), 1))

	dst := make([]int32, 0, 4)
	dst = append(dst, 99)
	got := ix.ItemsInRange(geom.V(0, 0), 0, dst)
	assert.Equal(t, []int32{99, 7}, got)
}
