// Package board models the hex board: tiles with terrain and number tokens,
// buildings on vertices, roads on edges, ports, and the robber. It owns
// spatial legality (distance rule, road connectivity, robber placement) and
// nothing else; turn order, costs, and piece supplies belong to the game
// layer. All mutations re-validate and report ErrIllegalPlacement, and every
// mutation has an exact inverse so actions can be unwound.
package board

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rosshamish/catan/hexgrid"
)

// ErrIllegalPlacement reports a placement that violates spatial legality.
var ErrIllegalPlacement = errors.New("illegal placement")

// Resource is one of the five tradeable resource kinds.
type Resource int

const (
	Wood Resource = iota
	Brick
	Sheep
	Wheat
	Ore
)

// Resources lists every resource kind in canonical order. Iterating this
// instead of a map keeps shuffles, steals, and transcripts deterministic.
var Resources = [5]Resource{Wood, Brick, Sheep, Wheat, Ore}

func (r Resource) String() string {
	switch r {
	case Wood:
		return "wood"
	case Brick:
		return "brick"
	case Sheep:
		return "sheep"
	case Wheat:
		return "wheat"
	case Ore:
		return "ore"
	default:
		return fmt.Sprintf("resource(%d)", int(r))
	}
}

// Terrain is a tile's land type. Each terrain except desert produces one
// resource kind.
type Terrain int

const (
	Desert Terrain = iota
	Forest
	Hills
	Pasture
	Fields
	Mountains
)

// Resource returns the resource the terrain produces. ok is false for desert.
func (t Terrain) Resource() (Resource, bool) {
	switch t {
	case Forest:
		return Wood, true
	case Hills:
		return Brick, true
	case Pasture:
		return Sheep, true
	case Fields:
		return Wheat, true
	case Mountains:
		return Ore, true
	default:
		return 0, false
	}
}

// String returns the produced resource name, the form transcripts use.
func (t Terrain) String() string {
	if r, ok := t.Resource(); ok {
		return r.String()
	}
	return "desert"
}

// Tile is the fixed layout of one board hex.
type Tile struct {
	Terrain Terrain
	Number  int // dice number token, 0 on the desert
}

// BuildingKind distinguishes settlements from cities.
type BuildingKind int

const (
	Settlement BuildingKind = iota
	City
)

func (k BuildingKind) String() string {
	if k == City {
		return "city"
	}
	return "settlement"
}

// Building is a settlement or city occupying a vertex.
type Building struct {
	Kind  BuildingKind
	Owner int
}

// Road occupies an edge.
type Road struct {
	Owner int
}

// PortKind is a maritime trade ratio: 3:1 generic or 2:1 for one resource.
type PortKind int

const (
	Port3to1 PortKind = iota
	PortWood
	PortBrick
	PortSheep
	PortWheat
	PortOre
)

// Resource returns the port's 2:1 resource. ok is false for the generic port.
func (k PortKind) Resource() (Resource, bool) {
	switch k {
	case PortWood:
		return Wood, true
	case PortBrick:
		return Brick, true
	case PortSheep:
		return Sheep, true
	case PortWheat:
		return Wheat, true
	case PortOre:
		return Ore, true
	default:
		return 0, false
	}
}

// Ratio returns the trade ratio the port grants.
func (k PortKind) Ratio() int {
	if k == Port3to1 {
		return 3
	}
	return 2
}

func (k PortKind) String() string {
	if r, ok := k.Resource(); ok {
		return r.String()
	}
	return "3:1"
}

// Port sits on a coastal edge; buildings on either endpoint use its ratio.
type Port struct {
	Edge hexgrid.Edge
	Kind PortKind
}

// Board holds the complete spatial state of a game. Construct with New; zero
// value is not usable.
type Board struct {
	tiles     map[hexgrid.Tile]Tile
	order     []hexgrid.Tile // layout order, for deterministic iteration
	buildings map[hexgrid.Vertex]Building
	roads     map[hexgrid.Edge]Road
	ports     []Port
	robber    hexgrid.Tile
}

// Tiles returns the board's tile coordinates in layout order.
func (b *Board) Tiles() []hexgrid.Tile {
	out := make([]hexgrid.Tile, len(b.order))
	copy(out, b.order)
	return out
}

// TileAt returns the tile layout at t.
func (b *Board) TileAt(t hexgrid.Tile) (Tile, bool) {
	tile, ok := b.tiles[t]
	return tile, ok
}

// HasTile reports whether t is on the board.
func (b *Board) HasTile(t hexgrid.Tile) bool {
	_, ok := b.tiles[t]
	return ok
}

// BuildingAt returns the building on v, if any.
func (b *Board) BuildingAt(v hexgrid.Vertex) (Building, bool) {
	bld, ok := b.buildings[v]
	return bld, ok
}

// RoadAt returns the road on e, if any.
func (b *Board) RoadAt(e hexgrid.Edge) (Road, bool) {
	r, ok := b.roads[e]
	return r, ok
}

// Buildings returns a copy of every placed building by vertex.
func (b *Board) Buildings() map[hexgrid.Vertex]Building {
	out := make(map[hexgrid.Vertex]Building, len(b.buildings))
	for v, bld := range b.buildings {
		out[v] = bld
	}
	return out
}

// Roads returns a copy of every placed road by edge.
func (b *Board) Roads() map[hexgrid.Edge]Road {
	out := make(map[hexgrid.Edge]Road, len(b.roads))
	for e, r := range b.roads {
		out[e] = r
	}
	return out
}

// Robber returns the tile the robber occupies.
func (b *Board) Robber() hexgrid.Tile {
	return b.robber
}

// Ports returns the board's ports.
func (b *Board) Ports() []Port {
	out := make([]Port, len(b.ports))
	copy(out, b.ports)
	return out
}

// RoadCount returns how many roads the owner has placed.
func (b *Board) RoadCount(owner int) int {
	n := 0
	for _, r := range b.roads {
		if r.Owner == owner {
			n++
		}
	}
	return n
}

// HasVertex reports whether v is a corner of some board tile.
func (b *Board) HasVertex(v hexgrid.Vertex) bool {
	for _, t := range v.Tiles() {
		if b.HasTile(t) {
			return true
		}
	}
	return false
}

// HasEdge reports whether e is a side of some board tile.
func (b *Board) HasEdge(e hexgrid.Edge) bool {
	for _, t := range e.Tiles() {
		if b.HasTile(t) {
			return true
		}
	}
	return false
}

// CanPlaceRoad reports whether owner may place a road on e: the edge is on
// the board, vacant, and touches one of the owner's roads or buildings.
func (b *Board) CanPlaceRoad(e hexgrid.Edge, owner int) bool {
	if !b.HasEdge(e) {
		return false
	}
	if _, taken := b.roads[e]; taken {
		return false
	}
	for _, v := range e.Vertices() {
		if bld, ok := b.buildings[v]; ok && bld.Owner == owner {
			return true
		}
		for _, adj := range v.Edges() {
			if adj == e {
				continue
			}
			if r, ok := b.roads[adj]; ok && r.Owner == owner {
				return true
			}
		}
	}
	return false
}

// CanPlaceSettlement reports whether owner may place a settlement on v: the
// vertex is on the board, vacant, no building occupies an adjacent vertex
// (the distance rule), and, outside setup, one of the owner's roads reaches v.
func (b *Board) CanPlaceSettlement(v hexgrid.Vertex, owner int, setup bool) bool {
	if !b.HasVertex(v) {
		return false
	}
	if _, taken := b.buildings[v]; taken {
		return false
	}
	for _, adj := range v.Adjacent() {
		if _, taken := b.buildings[adj]; taken {
			return false
		}
	}
	if setup {
		return true
	}
	for _, e := range v.Edges() {
		if r, ok := b.roads[e]; ok && r.Owner == owner {
			return true
		}
	}
	return false
}

// CanPlaceCity reports whether owner may upgrade v: it holds their settlement.
func (b *Board) CanPlaceCity(v hexgrid.Vertex, owner int) bool {
	bld, ok := b.buildings[v]
	return ok && bld.Kind == Settlement && bld.Owner == owner
}

// CanMoveRobber reports whether the robber may move to t: on the board and
// not its current tile.
func (b *Board) CanMoveRobber(t hexgrid.Tile) bool {
	return b.HasTile(t) && t != b.robber
}

// PlaceRoad places owner's road on e.
func (b *Board) PlaceRoad(e hexgrid.Edge, owner int) error {
	if !b.CanPlaceRoad(e, owner) {
		return fmt.Errorf("road at %v: %w", e, ErrIllegalPlacement)
	}
	b.roads[e] = Road{Owner: owner}
	return nil
}

// PlaceSettlement places owner's settlement on v. setup relaxes the road
// connectivity requirement, matching the two placement rounds before play.
func (b *Board) PlaceSettlement(v hexgrid.Vertex, owner int, setup bool) error {
	if !b.CanPlaceSettlement(v, owner, setup) {
		return fmt.Errorf("settlement at %v: %w", v, ErrIllegalPlacement)
	}
	b.buildings[v] = Building{Kind: Settlement, Owner: owner}
	return nil
}

// UpgradeToCity replaces owner's settlement on v with a city.
func (b *Board) UpgradeToCity(v hexgrid.Vertex, owner int) error {
	if !b.CanPlaceCity(v, owner) {
		return fmt.Errorf("city at %v: %w", v, ErrIllegalPlacement)
	}
	b.buildings[v] = Building{Kind: City, Owner: owner}
	return nil
}

// MoveRobber moves the robber to t and returns the tile it left.
func (b *Board) MoveRobber(t hexgrid.Tile) (hexgrid.Tile, error) {
	if !b.CanMoveRobber(t) {
		return b.robber, fmt.Errorf("robber to %v: %w", t, ErrIllegalPlacement)
	}
	prev := b.robber
	b.robber = t
	return prev, nil
}

// RemoveRoad is the inverse of PlaceRoad.
func (b *Board) RemoveRoad(e hexgrid.Edge) error {
	if _, ok := b.roads[e]; !ok {
		return fmt.Errorf("no road at %v: %w", e, ErrIllegalPlacement)
	}
	delete(b.roads, e)
	return nil
}

// RemoveSettlement is the inverse of PlaceSettlement.
func (b *Board) RemoveSettlement(v hexgrid.Vertex) error {
	bld, ok := b.buildings[v]
	if !ok || bld.Kind != Settlement {
		return fmt.Errorf("no settlement at %v: %w", v, ErrIllegalPlacement)
	}
	delete(b.buildings, v)
	return nil
}

// DowngradeToSettlement is the inverse of UpgradeToCity.
func (b *Board) DowngradeToSettlement(v hexgrid.Vertex) error {
	bld, ok := b.buildings[v]
	if !ok || bld.Kind != City {
		return fmt.Errorf("no city at %v: %w", v, ErrIllegalPlacement)
	}
	b.buildings[v] = Building{Kind: Settlement, Owner: bld.Owner}
	return nil
}

// OwnersAdjacentToTile returns the distinct owners of buildings on the
// tile's corners, ascending.
func (b *Board) OwnersAdjacentToTile(t hexgrid.Tile) []int {
	seen := map[int]bool{}
	for _, v := range t.Vertices() {
		if bld, ok := b.buildings[v]; ok {
			seen[bld.Owner] = true
		}
	}
	owners := make([]int, 0, len(seen))
	for o := range seen {
		owners = append(owners, o)
	}
	sort.Ints(owners)
	return owners
}

// PortRatio returns the best maritime exchange ratio owner holds for giving
// r: 4 with no port, 3 with a generic port, 2 with the matching resource
// port. A port counts when the owner has a building on either end of its
// edge.
func (b *Board) PortRatio(owner int, r Resource) int {
	ratio := 4
	for _, p := range b.ports {
		if !b.touchesPort(p, owner) {
			continue
		}
		if pr, ok := p.Kind.Resource(); ok {
			if pr == r {
				return 2
			}
			continue
		}
		if ratio > 3 {
			ratio = 3
		}
	}
	return ratio
}

func (b *Board) touchesPort(p Port, owner int) bool {
	for _, v := range p.Edge.Vertices() {
		if bld, ok := b.buildings[v]; ok && bld.Owner == owner {
			return true
		}
	}
	return false
}
