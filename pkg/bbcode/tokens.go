// tokens.go defines the lexical tokens produced by the tokenizer.
package bbcode

import "fmt"

// TokenType represents token types for bracket markup [tag]...[/tag].
type TokenType int

const (
	TokenText       TokenType = iota // literal run, including unrecognized bracket spans
	TokenOpeningTag                  // [tag] or [tag=attr] or [tag attr]
	TokenClosingTag                  // [/tag]
)

// String returns a short name for the token type.
func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "text"
	case TokenOpeningTag:
		return "open"
	case TokenClosingTag:
		return "close"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token represents a single lexical unit.
type Token struct {
	Type TokenType
	Tag  TagID  // set for OpeningTag, ClosingTag
	Text string // set for Text tokens

	// Attribute is the raw attribute text after '=' or the first space,
	// without the delimiters. HasAttribute distinguishes [tag] from [tag=].
	Attribute    string
	HasAttribute bool

	Raw      string // exact source span that produced this token
	Position int    // byte offset in original input
}

// TextToken returns a literal text token.
func TextToken(text string) Token {
	return Token{Type: TokenText, Text: text, Raw: text}
}

// OpeningTag returns an opening tag token without an attribute.
func OpeningTag(tag TagID) Token {
	return Token{Type: TokenOpeningTag, Tag: tag}
}

// OpeningTagWithAttribute returns an opening tag token carrying raw attribute text.
func OpeningTagWithAttribute(tag TagID, attr string) Token {
	return Token{Type: TokenOpeningTag, Tag: tag, Attribute: attr, HasAttribute: true}
}

// ClosingTag returns a closing tag token.
func ClosingTag(tag TagID) Token {
	return Token{Type: TokenClosingTag, Tag: tag}
}

// String renders the token for debugging and the tokens command.
func (t Token) String() string {
	switch t.Type {
	case TokenText:
		return fmt.Sprintf("Text(%q)", t.Text)
	case TokenOpeningTag:
		if t.HasAttribute {
			return fmt.Sprintf("Open(%s, %q)", t.Tag, t.Attribute)
		}
		return fmt.Sprintf("Open(%s)", t.Tag)
	case TokenClosingTag:
		return fmt.Sprintf("Close(%s)", t.Tag)
	}
	return t.Type.String()
}
