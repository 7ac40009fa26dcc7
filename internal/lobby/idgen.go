package lobby

import "math/rand/v2"

// MinRoomNameLength is the shortest room name the registry accepts.
const MinRoomNameLength = 6

const roomNameAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// IDGenerator produces candidate room names. Uniqueness is enforced by the
// Registry, which keeps asking until it gets a free one.
type IDGenerator interface {
	Generate() string
}

// RandomIDGenerator draws lowercase base36 strings of a fixed length.
type RandomIDGenerator struct {
	length int
}

// NewRandomIDGenerator returns a generator for names of the given length.
// Lengths below MinRoomNameLength are raised to it.
func NewRandomIDGenerator(length int) *RandomIDGenerator {
	if length < MinRoomNameLength {
		length = MinRoomNameLength
	}
	return &RandomIDGenerator{length: length}
}

// Generate returns a new candidate name.
func (g *RandomIDGenerator) Generate() string {
	buf := make([]byte, g.length)
	for i := range buf {
		buf[i] = roomNameAlphabet[rand.IntN(len(roomNameAlphabet))]
	}
	return string(buf)
}
