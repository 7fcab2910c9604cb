package combo

import (
	"fmt"
	"strings"
)

// Type identifies the shape of a combination. The zero value is Pass.
type Type uint8

const (
	Pass Type = iota
	Single
	Pair
	Trio
	Chain
	PairsChain
	TrioSingle
	TrioPair
	Airplane
	AirplaneSmall
	AirplaneLarge
	FourWithTwo
	FourWithPairs
	Bomb
	KingBomb

	numTypes
)

// Types lists every playable type in catalog order (Pass excluded).
var Types = []Type{
	Single, Pair, Trio, Chain, PairsChain, TrioSingle, TrioPair,
	Airplane, AirplaneSmall, AirplaneLarge, FourWithTwo, FourWithPairs, Bomb, KingBomb,
}

var typeNames = [numTypes]string{
	Pass:          "pass",
	Single:        "single",
	Pair:          "pair",
	Trio:          "trio",
	Chain:         "chain",
	PairsChain:    "pairs_chain",
	TrioSingle:    "trio_single",
	TrioPair:      "trio_pair",
	Airplane:      "airplane",
	AirplaneSmall: "airplane_small",
	AirplaneLarge: "airplane_large",
	FourWithTwo:   "four_with_two",
	FourWithPairs: "four_with_pairs",
	Bomb:          "bomb",
	KingBomb:      "king_bomb",
}

func (t Type) String() string {
	if t < numTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// IsBomb reports whether the type carries bomb precedence.
func (t Type) IsBomb() bool {
	return t == Bomb || t == KingBomb
}

// ParseType parses the names produced by String.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == s {
			return Type(t), nil
		}
	}
	return 0, fmt.Errorf("unknown combination type %q", s)
}
