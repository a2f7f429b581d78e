// Package hexgrid provides coordinates and adjacency lookups for a
// pointy-top hexagonal grid.
//
// Tiles use axial coordinates (Q, R). Vertices and edges are addressed
// relative to a tile: every vertex on the grid is the North or South corner
// of exactly one tile, and every edge is the NE, E, or SE side of exactly
// one tile, so canonical values compare with ==. All lookups are pure.
package hexgrid

import "fmt"

// Tile is an axial hex coordinate.
type Tile struct {
	Q, R int
}

// VertexCorner selects one of the two canonical corners of a tile.
type VertexCorner int

const (
	North VertexCorner = iota
	South
)

// EdgeSide selects one of the three canonical sides of a tile.
type EdgeSide int

const (
	NorthEast EdgeSide = iota
	East
	SouthEast
)

// Vertex is a canonical corner coordinate: the North or South corner of Tile.
type Vertex struct {
	Tile   Tile
	Corner VertexCorner
}

// Edge is a canonical side coordinate: the NE, E, or SE side of Tile.
type Edge struct {
	Tile Tile
	Side EdgeSide
}

// Neighbors returns the six adjacent tiles, east first, counterclockwise.
func (t Tile) Neighbors() [6]Tile {
	return [6]Tile{
		{t.Q + 1, t.R},     // E
		{t.Q + 1, t.R - 1}, // NE
		{t.Q, t.R - 1},     // NW
		{t.Q - 1, t.R},     // W
		{t.Q - 1, t.R + 1}, // SW
		{t.Q, t.R + 1},     // SE
	}
}

// Vertices returns the six corners of the tile, north corner first,
// clockwise.
func (t Tile) Vertices() [6]Vertex {
	return [6]Vertex{
		{t, North},                     // N
		{Tile{t.Q + 1, t.R - 1}, South}, // NE
		{Tile{t.Q, t.R + 1}, North},     // SE
		{t, South},                     // S
		{Tile{t.Q - 1, t.R + 1}, North}, // SW
		{Tile{t.Q, t.R - 1}, South},     // NW
	}
}

// Edges returns the six sides of the tile, NE side first, clockwise.
func (t Tile) Edges() [6]Edge {
	return [6]Edge{
		{t, NorthEast},
		{t, East},
		{t, SouthEast},
		{Tile{t.Q - 1, t.R + 1}, NorthEast}, // SW
		{Tile{t.Q - 1, t.R}, East},          // W
		{Tile{t.Q, t.R - 1}, SouthEast},     // NW
	}
}

// Tiles returns the three tiles sharing the vertex.
func (v Vertex) Tiles() [3]Tile {
	t := v.Tile
	if v.Corner == North {
		return [3]Tile{t, {t.Q, t.R - 1}, {t.Q + 1, t.R - 1}}
	}
	return [3]Tile{t, {t.Q, t.R + 1}, {t.Q - 1, t.R + 1}}
}

// Edges returns the three edges incident to the vertex.
func (v Vertex) Edges() [3]Edge {
	t := v.Tile
	if v.Corner == North {
		return [3]Edge{
			{t, NorthEast},
			{Tile{t.Q, t.R - 1}, SouthEast},
			{Tile{t.Q, t.R - 1}, East},
		}
	}
	return [3]Edge{
		{t, SouthEast},
		{Tile{t.Q - 1, t.R + 1}, NorthEast},
		{Tile{t.Q - 1, t.R + 1}, East},
	}
}

// Adjacent returns the three vertices one edge away.
func (v Vertex) Adjacent() [3]Vertex {
	t := v.Tile
	if v.Corner == North {
		return [3]Vertex{
			{Tile{t.Q + 1, t.R - 1}, South},
			{Tile{t.Q, t.R - 1}, South},
			{Tile{t.Q + 1, t.R - 2}, South},
		}
	}
	return [3]Vertex{
		{Tile{t.Q, t.R + 1}, North},
		{Tile{t.Q - 1, t.R + 1}, North},
		{Tile{t.Q - 1, t.R + 2}, North},
	}
}

// Vertices returns the two endpoints of the edge.
func (e Edge) Vertices() [2]Vertex {
	t := e.Tile
	switch e.Side {
	case NorthEast:
		return [2]Vertex{{t, North}, {Tile{t.Q + 1, t.R - 1}, South}}
	case East:
		return [2]Vertex{{Tile{t.Q + 1, t.R - 1}, South}, {Tile{t.Q, t.R + 1}, North}}
	default: // SouthEast
		return [2]Vertex{{Tile{t.Q, t.R + 1}, North}, {t, South}}
	}
}

// Tiles returns the two tiles the edge separates.
func (e Edge) Tiles() [2]Tile {
	t := e.Tile
	switch e.Side {
	case NorthEast:
		return [2]Tile{t, {t.Q + 1, t.R - 1}}
	case East:
		return [2]Tile{t, {t.Q + 1, t.R}}
	default: // SouthEast
		return [2]Tile{t, {t.Q, t.R + 1}}
	}
}

// Adjacent returns the four edges sharing a vertex with the edge: the other
// two edges at each endpoint.
func (e Edge) Adjacent() [4]Edge {
	ends := e.Vertices()
	var out [4]Edge
	i := 0
	for _, v := range ends {
		for _, other := range v.Edges() {
			if other != e {
				out[i] = other
				i++
			}
		}
	}
	return out
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d %d)", t.Q, t.R)
}

func (v Vertex) String() string {
	if v.Corner == North {
		return fmt.Sprintf("(%d %d N)", v.Tile.Q, v.Tile.R)
	}
	return fmt.Sprintf("(%d %d S)", v.Tile.Q, v.Tile.R)
}

func (e Edge) String() string {
	switch e.Side {
	case NorthEast:
		return fmt.Sprintf("(%d %d NE)", e.Tile.Q, e.Tile.R)
	case East:
		return fmt.Sprintf("(%d %d E)", e.Tile.Q, e.Tile.R)
	default:
		return fmt.Sprintf("(%d %d SE)", e.Tile.Q, e.Tile.R)
	}
}
