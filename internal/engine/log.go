package engine

import "fmt"

// Logf appends one human-readable entry to the append-only game log.
func (g *Game) Logf(format string, args ...interface{}) {
	g.Log = append(g.Log, fmt.Sprintf(format, args...))
}
