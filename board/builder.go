package board

import (
	"golang.org/x/exp/rand"

	"github.com/rosshamish/catan/hexgrid"
)

// Option selects a random layout for one facet of the board. Without
// options, New returns the fixed beginner layout.
type Option func(*layout)

type layout struct {
	terrainRNG *rand.Rand
	numberRNG  *rand.Rand
	portRNG    *rand.Rand
}

// WithRandomTerrain shuffles the official terrain pieces over the 19 tiles.
func WithRandomTerrain(rng *rand.Rand) Option {
	return func(l *layout) { l.terrainRNG = rng }
}

// WithRandomNumbers shuffles the official number tokens over the non-desert
// tiles.
func WithRandomNumbers(rng *rand.Rand) Option {
	return func(l *layout) { l.numberRNG = rng }
}

// WithRandomPorts shuffles the nine port kinds over the fixed coastal
// positions.
func WithRandomPorts(rng *rand.Rand) Option {
	return func(l *layout) { l.portRNG = rng }
}

// presetTerrain pairs with hexgrid.StandardTiles() order: the beginner
// layout. The robber starts on the desert.
var presetTerrain = [19]Terrain{
	Forest, Fields, Mountains, Fields, Pasture, Hills, Pasture, Fields,
	Forest, Mountains, Hills, Desert, Fields, Pasture, Forest, Mountains,
	Pasture, Forest, Hills,
}

// presetTokens lays onto non-desert tiles in layout order.
var presetTokens = [18]int{5, 2, 6, 3, 8, 10, 9, 12, 11, 4, 8, 10, 9, 4, 5, 6, 3, 11}

// presetPortKinds pairs with portPositions, the beginner port ring.
var presetPortKinds = [9]PortKind{
	Port3to1, PortWood, PortBrick, Port3to1, Port3to1, PortSheep, Port3to1,
	PortOre, PortWheat,
}

// portPositions index the coastline walk; gaps of three and four edges keep
// any settlement from reaching two ports.
var portPositions = [9]int{0, 3, 7, 10, 13, 17, 20, 23, 27}

// New builds a standard 19-tile board. Facets default to the beginner
// layout; pass options to shuffle terrain, numbers, or ports through a
// seeded source.
func New(opts ...Option) *Board {
	var l layout
	for _, opt := range opts {
		opt(&l)
	}

	terrain := presetTerrain[:]
	if l.terrainRNG != nil {
		terrain = terrainPieces()
		l.terrainRNG.Shuffle(len(terrain), func(i, j int) {
			terrain[i], terrain[j] = terrain[j], terrain[i]
		})
	}

	tokens := make([]int, len(presetTokens))
	copy(tokens, presetTokens[:])
	if l.numberRNG != nil {
		l.numberRNG.Shuffle(len(tokens), func(i, j int) {
			tokens[i], tokens[j] = tokens[j], tokens[i]
		})
	}

	b := &Board{
		tiles:     make(map[hexgrid.Tile]Tile, 19),
		buildings: make(map[hexgrid.Vertex]Building),
		roads:     make(map[hexgrid.Edge]Road),
	}
	next := 0
	for i, coord := range hexgrid.StandardTiles() {
		t := Tile{Terrain: terrain[i]}
		if t.Terrain == Desert {
			b.robber = coord
		} else {
			t.Number = tokens[next]
			next++
		}
		b.tiles[coord] = t
		b.order = append(b.order, coord)
	}

	kinds := presetPortKinds
	if l.portRNG != nil {
		l.portRNG.Shuffle(len(kinds), func(i, j int) {
			kinds[i], kinds[j] = kinds[j], kinds[i]
		})
	}
	coast := b.coastline()
	for i, pos := range portPositions {
		b.ports = append(b.ports, Port{Edge: coast[pos], Kind: kinds[i]})
	}
	return b
}

// terrainPieces returns the official terrain mix: one desert, four wood,
// three brick, four sheep, four wheat, three ore.
func terrainPieces() []Terrain {
	pieces := make([]Terrain, 0, 19)
	for _, p := range []struct {
		t Terrain
		n int
	}{
		{Desert, 1}, {Forest, 4}, {Hills, 3}, {Pasture, 4}, {Fields, 4}, {Mountains, 3},
	} {
		for i := 0; i < p.n; i++ {
			pieces = append(pieces, p.t)
		}
	}
	return pieces
}

// coastline returns the 30 coastal edges as one deterministic cycle walk:
// it starts at the least edge and steps toward the lesser neighbor first.
func (b *Board) coastline() []hexgrid.Edge {
	coastal := map[hexgrid.Edge]bool{}
	for t := range b.tiles {
		for _, e := range t.Edges() {
			onBoard := 0
			for _, side := range e.Tiles() {
				if b.HasTile(side) {
					onBoard++
				}
			}
			if onBoard == 1 {
				coastal[e] = true
			}
		}
	}

	var start hexgrid.Edge
	first := true
	for e := range coastal {
		if first || edgeLess(e, start) {
			start = e
			first = false
		}
	}

	walk := []hexgrid.Edge{start}
	seen := map[hexgrid.Edge]bool{start: true}
	cur := start
	for {
		var next hexgrid.Edge
		found := false
		for _, v := range cur.Vertices() {
			for _, adj := range v.Edges() {
				if !coastal[adj] || seen[adj] {
					continue
				}
				if !found || edgeLess(adj, next) {
					next = adj
					found = true
				}
			}
		}
		if !found {
			return walk
		}
		walk = append(walk, next)
		seen[next] = true
		cur = next
	}
}

func edgeLess(a, b hexgrid.Edge) bool {
	if a.Tile.Q != b.Tile.Q {
		return a.Tile.Q < b.Tile.Q
	}
	if a.Tile.R != b.Tile.R {
		return a.Tile.R < b.Tile.R
	}
	return a.Side < b.Side
}
