package wire

import (
	"strings"

	"github.com/teranos/wabbit/errors"
)

// Reserved characters of the example-line grammar. A literal space separates
// tokens, a colon separates a label from its value, and a pipe separates
// segments, so none of them may appear inside a name or label.
const reserved = " :|"

// ErrInvalidCharacter is returned by Validate when a token contains one of
// the reserved characters.
var ErrInvalidCharacter = errors.New("wire: reserved character in token")

// Validate returns ErrInvalidCharacter if s contains a reserved character.
func Validate(s string) error {
	if i := strings.IndexAny(s, reserved); i >= 0 {
		return errors.Wrapf(ErrInvalidCharacter, "%q at offset %d", s, i)
	}
	return nil
}

var escaper = strings.NewReplacer(
	" ", `\_`,
	":", `\;`,
	"|", `\\`,
)

// Escape replaces every reserved character in s with its two-character
// escape sequence (space → \_, colon → \;, pipe → \\). It never fails;
// a token run through Escape always passes Validate.
func Escape(s string) string {
	return escaper.Replace(s)
}
