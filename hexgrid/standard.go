package hexgrid

// ringDirections walks a ring counterclockwise starting due west of the
// center: northeast along the west face first, then around.
var ringDirections = [6]Tile{
	{1, -1}, // NE
	{1, 0},  // E
	{0, 1},  // SE
	{-1, 1}, // SW
	{-1, 0}, // W
	{0, -1}, // NW
}

// Ring returns the tiles at exactly radius steps from center, starting due
// west and proceeding counterclockwise. Radius 0 is the center itself.
func Ring(center Tile, radius int) []Tile {
	if radius == 0 {
		return []Tile{center}
	}
	out := make([]Tile, 0, 6*radius)
	cur := Tile{center.Q - radius, center.R}
	for _, d := range ringDirections {
		for i := 0; i < radius; i++ {
			out = append(out, cur)
			cur = Tile{cur.Q + d.Q, cur.R + d.R}
		}
	}
	return out
}

// StandardTiles returns the 19 tiles of the standard board, outer ring
// first, spiraling inward to the center. The order is fixed so preset
// terrain and number layouts pair with it deterministically.
func StandardTiles() []Tile {
	tiles := make([]Tile, 0, 19)
	for radius := 2; radius >= 0; radius-- {
		tiles = append(tiles, Ring(Tile{0, 0}, radius)...)
	}
	return tiles
}
