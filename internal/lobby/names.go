package lobby

import (
	"math/rand/v2"
	"regexp"
)

// DefaultNames is the pool new players are named from until they pick a name.
var DefaultNames = []string{
	"Merasmus",
	"Count Dinkleberry",
	"Ethiopis",
	"Kelly Snames",
	"Raum",
	"Gunrat",
	"Tardis",
	"Yewtree",
	"Dreams",
	"Nino Lass",
	"Scom Tott",
	"Killer Kingsmill",
}

var namePattern = regexp.MustCompile(`^[ A-Za-z0-9_!"+&().]{3,20}$`)

// ValidName reports whether name may be used as a display name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// NamePicker chooses the display name of a player that just joined.
type NamePicker interface {
	Pick() string
}

// PoolPicker picks uniformly from a fixed list of names.
type PoolPicker struct {
	names []string
}

// NewPoolPicker builds a picker over names, falling back to DefaultNames.
func NewPoolPicker(names []string) *PoolPicker {
	if len(names) == 0 {
		names = DefaultNames
	}
	return &PoolPicker{names: names}
}

// Pick returns a random name from the pool.
func (p *PoolPicker) Pick() string {
	return p.names[rand.IntN(len(p.names))]
}
