package board

import "github.com/rosshamish/catan/hexgrid"

// LongestRoad returns the length of the owner's longest continuous road: the
// longest trail over the owner's road edges, each edge used once. A building
// belonging to another owner cuts the trail at its vertex; the segment
// reaching it still counts.
func (b *Board) LongestRoad(owner int) int {
	visited := map[hexgrid.Edge]bool{}
	best := 0

	var walk func(at hexgrid.Vertex, length int)
	walk = func(at hexgrid.Vertex, length int) {
		if length > best {
			best = length
		}
		if bld, ok := b.buildings[at]; ok && bld.Owner != owner {
			return
		}
		for _, e := range at.Edges() {
			if visited[e] {
				continue
			}
			if r, ok := b.roads[e]; !ok || r.Owner != owner {
				continue
			}
			visited[e] = true
			walk(otherEndpoint(e, at), length+1)
			visited[e] = false
		}
	}

	// every longest trail ends somewhere, so trying each edge as the final
	// segment from both directions finds it
	for e, r := range b.roads {
		if r.Owner != owner {
			continue
		}
		for _, v := range e.Vertices() {
			visited[e] = true
			walk(otherEndpoint(e, v), 1)
			visited[e] = false
		}
	}
	return best
}

func otherEndpoint(e hexgrid.Edge, v hexgrid.Vertex) hexgrid.Vertex {
	ends := e.Vertices()
	if ends[0] == v {
		return ends[1]
	}
	return ends[0]
}
