package model

import "github.com/mcoot/matchthree/internal/dependencies/random"

// Gem is the kind (color) of a single token on the grid
type Gem uint8

const (
	GemGreen Gem = iota
	GemRed
	GemYellow
	GemBlue
	GemWhite
	GemPink
	GemCyan
)

// GemCount is the number of distinct gem kinds
const GemCount = 7

var gemNames = [GemCount]string{
	GemGreen:  "green",
	GemRed:    "red",
	GemYellow: "yellow",
	GemBlue:   "blue",
	GemWhite:  "white",
	GemPink:   "pink",
	GemCyan:   "cyan",
}

// String returns the lower-case name of the gem
func (g Gem) String() string {
	if !g.IsValid() {
		return "unknown"
	}
	return gemNames[g]
}

// IsValid returns true if g is one of the known gem kinds
func (g Gem) IsValid() bool {
	return g < GemCount
}

// AllGems returns every gem kind in declaration order
func AllGems() []Gem {
	gems := make([]Gem, GemCount)
	for i := range gems {
		gems[i] = Gem(i)
	}
	return gems
}

// RandomGem draws a gem uniformly from all kinds
func RandomGem(rnd random.Random) Gem {
	return Gem(rnd.Intn(GemCount))
}
