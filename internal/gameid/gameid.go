// Package gameid generates sortable game identifiers: a UUIDv7 rendered as
// 26 characters of Crockford base32, TypeID style.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the length of an encoded game ID.
const Length = 26

// Generator produces game IDs from an optional entropy source.
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto/rand.
func NewGenerator(rand io.Reader) *Generator {
	return &Generator{rand: rand}
}

// Generate creates a new game ID.
func Generate() string {
	id, err := NewGenerator(nil).Generate()
	if err != nil {
		panic("failed to generate game id: " + err.Error())
	}
	return id
}

// Generate creates a new game ID using the generator's entropy source.
func (g *Generator) Generate() (string, error) {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		return "", err
	}
	return Encode(id), nil
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are
// left-padded with two zero bits, so the first character is at most '7'.
func Encode(id uuid.UUID) string {
	var b strings.Builder
	b.Grow(Length)
	for i := range Length {
		var value byte
		for j := range 5 {
			value = value<<1 | bit(id, i*5+j-2)
		}
		b.WriteByte(alphabet[value])
	}
	return b.String()
}

// Decode parses an encoded game ID back into its UUID.
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := range Length {
		value := byte(strings.IndexByte(alphabet, s[i]))
		for j := range 5 {
			pos := i*5 + j - 2
			if pos < 0 || (value>>(4-j))&1 == 0 {
				continue
			}
			id[pos/8] |= 1 << (7 - pos%8)
		}
	}
	return id, nil
}

func bit(id uuid.UUID, pos int) byte {
	if pos < 0 {
		return 0
	}
	return (id[pos/8] >> (7 - pos%8)) & 1
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
