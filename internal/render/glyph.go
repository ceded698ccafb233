package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Glyph is a parsed emoji token: either a custom platform emoji reference
// (Name + ID) or a literal passed through as typed.
type Glyph struct {
	Name    string
	ID      string
	Literal string
}

// ParseGlyph understands three shapes:
//
//	"name:id"  -> custom emoji reference
//	"12345"    -> custom emoji id, named after the symbol
//	anything else is kept verbatim
func ParseGlyph(token, symbol string) (Glyph, bool) {
	if token == "" {
		return Glyph{}, false
	}
	if strings.Contains(token, ":") {
		parts := strings.Split(token, ":")
		if len(parts) == 2 {
			return Glyph{Name: parts[0], ID: parts[1]}, true
		}
		return Glyph{Literal: token}, true
	}
	if id, err := strconv.ParseInt(token, 10, 64); err == nil {
		return Glyph{Name: symbol, ID: strconv.FormatInt(id, 10)}, true
	}
	return Glyph{Literal: token}, true
}

func (g Glyph) IsReference() bool { return g.ID != "" }

// String renders the glyph as platform markup.
func (g Glyph) String() string {
	if g.IsReference() {
		return fmt.Sprintf("<:%s:%s>", g.Name, g.ID)
	}
	return g.Literal
}
