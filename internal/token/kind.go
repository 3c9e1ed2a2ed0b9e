package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Bare is an unquoted run: bare key, number, boolean or datetime fragment.
	Bare
	// BasicString is a "..." string.
	BasicString
	// LiteralString is a '...' string.
	LiteralString
	// MLBasicString is a """...""" string.
	MLBasicString
	// MLLiteralString is a '''...''' string.
	MLLiteralString

	Dot      // .
	Comma    // ,
	Assign   // =
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }
)

var kindNames = [...]string{
	Invalid:         "Invalid",
	EOF:             "EOF",
	Bare:            "Bare",
	BasicString:     "BasicString",
	LiteralString:   "LiteralString",
	MLBasicString:   "MLBasicString",
	MLLiteralString: "MLLiteralString",
	Dot:             "'.'",
	Comma:           "','",
	Assign:          "'='",
	LBracket:        "'['",
	RBracket:        "']'",
	LBrace:          "'{'",
	RBrace:          "'}'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
