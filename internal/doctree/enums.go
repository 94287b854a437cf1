package doctree

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Heading is the paragraph heading style. The names follow the Google Docs
// ParagraphHeading vocabulary.
type Heading string

const (
	HeadingNormal   Heading = "NORMAL"
	Heading1        Heading = "HEADING1"
	Heading2        Heading = "HEADING2"
	Heading3        Heading = "HEADING3"
	Heading4        Heading = "HEADING4"
	Heading5        Heading = "HEADING5"
	Heading6        Heading = "HEADING6"
	HeadingTitle    Heading = "TITLE"
	HeadingSubtitle Heading = "SUBTITLE"
)

// HeadingValues lists every known heading style.
var HeadingValues = []Heading{
	HeadingNormal,
	Heading1, Heading2, Heading3, Heading4, Heading5, Heading6,
	HeadingTitle, HeadingSubtitle,
}

// HeadingForLevel returns HEADINGn for n in 1..6 and NORMAL otherwise.
func HeadingForLevel(n int) Heading {
	if n < 1 || n > 6 {
		return HeadingNormal
	}
	return Heading(fmt.Sprintf("HEADING%d", n))
}

// Level returns n for HEADINGn and 0 for every other style.
func (h Heading) Level() int {
	switch h {
	case Heading1:
		return 1
	case Heading2:
		return 2
	case Heading3:
		return 3
	case Heading4:
		return 4
	case Heading5:
		return 5
	case Heading6:
		return 6
	default:
		return 0
	}
}

// UnmarshalJSON accepts any case and maps unknown or empty values to NORMAL.
func (h *Heading) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("heading must be a string: %w", err)
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	*h = HeadingNormal
	for _, v := range HeadingValues {
		if string(v) == s {
			*h = v
			break
		}
	}
	return nil
}

// Glyph is the list marker style. The names follow the Google Docs
// GlyphType vocabulary.
type Glyph string

const (
	GlyphBullet       Glyph = "BULLET"
	GlyphHollowBullet Glyph = "HOLLOW_BULLET"
	GlyphSquareBullet Glyph = "SQUARE_BULLET"
	GlyphNumber       Glyph = "NUMBER"
	GlyphLatinUpper   Glyph = "LATIN_UPPER"
	GlyphLatinLower   Glyph = "LATIN_LOWER"
	GlyphRomanUpper   Glyph = "ROMAN_UPPER"
	GlyphRomanLower   Glyph = "ROMAN_LOWER"
)

// Ordered reports whether the glyph numbers its items. Empty and unknown
// glyphs are unordered.
func (g Glyph) Ordered() bool {
	switch g {
	case GlyphNumber, GlyphLatinUpper, GlyphLatinLower, GlyphRomanUpper, GlyphRomanLower:
		return true
	default:
		return false
	}
}

// UnmarshalJSON normalizes the glyph name to upper case.
func (g *Glyph) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("glyph must be a string: %w", err)
	}
	*g = Glyph(strings.ToUpper(strings.TrimSpace(s)))
	return nil
}
