package game

// Player is one seat's fixed identity. Seat order is play order.
type Player struct {
	Name  string
	Color string
}

var defaultColors = []string{"red", "blue", "orange", "white"}

// StandardPlayers builds a roster from names, assigning the standard colors
// in seat order.
func StandardPlayers(names ...string) []Player {
	players := make([]Player, len(names))
	for i, name := range names {
		color := ""
		if i < len(defaultColors) {
			color = defaultColors[i]
		}
		players[i] = Player{Name: name, Color: color}
	}
	return players
}
