// tokenizer.go implements lazy tokenization of [tag]...[/tag] bracket markup.
package bbcode

import "iter"

// Tokenizer produces tokens from its input one at a time, moving strictly forward.
// It cannot be restarted; create a new Tokenizer to scan the input again.
//
// Recognized forms:
//   - [tag] - opening tag without attribute
//   - [tag=attr] or [tag attr] - opening tag with raw attribute text
//   - [/tag] - closing tag
//
// Anything in brackets that does not resolve to a known tag, or that is not
// terminated before the end of input, is returned as Text.
type Tokenizer struct {
	cur  *Cursor
	err  error
	done bool
}

// NewTokenizer creates a tokenizer over input.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{cur: NewCursor(input)}
}

// Tokenize drains a tokenizer over input and returns every token.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	for tok, err := range NewTokenizer(input).All() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Next returns the next token. It returns false at end of input or after an
// internal error, which is then available from Err.
func (t *Tokenizer) Next() (Token, bool) {
	if t.done || t.err != nil {
		return Token{}, false
	}
	if t.cur.AtEnd() {
		t.done = true
		return Token{}, false
	}

	start := t.cur.Pos()
	tok := t.scan(start)
	end := t.cur.Pos()
	if end <= start {
		t.err = &InternalError{Offset: start, Reason: "cursor did not advance"}
		return Token{}, false
	}
	if end > len(t.cur.input) {
		t.err = &InternalError{Offset: end, Reason: "cursor moved past end of input"}
		return Token{}, false
	}

	tok.Raw = t.cur.Slice(start, end)
	tok.Position = start
	return tok, true
}

// Err returns the internal error that stopped the tokenizer, if any.
func (t *Tokenizer) Err() error {
	return t.err
}

// All returns the remaining tokens as a sequence. An internal error is yielded
// once as the final element.
func (t *Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, ok := t.Next()
			if !ok {
				if t.err != nil {
					yield(Token{}, t.err)
				}
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

func (t *Tokenizer) scan(start int) Token {
	r, _ := t.cur.Current()
	if r != '[' {
		t.cur.Advance()
		t.cur.AdvanceUntil(isOpenBracket)
		return t.textFrom(start)
	}
	if next, ok := t.cur.Peek(); ok && next == '/' {
		return t.scanClosingTag(start)
	}
	return t.scanOpeningTag(start)
}

// scanClosingTag handles [/tag]. The name runs to the next ']'; a '[' or the end
// of input before that makes the span literal without consuming the stopper.
func (t *Tokenizer) scanClosingTag(start int) Token {
	t.cur.Advance() // skip '['
	t.cur.Advance() // skip '/'

	nameStart := t.cur.Pos()
	r, found := t.cur.AdvanceUntil(func(r rune) bool { return r == ']' || r == '[' })
	if !found || r == '[' {
		return t.textFrom(start)
	}
	name := t.cur.Slice(nameStart, t.cur.Pos())
	t.cur.Advance() // skip ']'

	tt, ok := LookupTag(name)
	if !ok {
		return t.textFrom(start)
	}
	return ClosingTag(tt.ID)
}

// scanOpeningTag handles [tag], [tag=attr] and [tag attr].
func (t *Tokenizer) scanOpeningTag(start int) Token {
	t.cur.Advance() // skip '['

	nameStart := t.cur.Pos()
	delim, found := t.cur.AdvanceUntil(isNameDelimiter)
	if !found || delim == '[' {
		return t.textFrom(start)
	}
	tt, ok := LookupTag(t.cur.Slice(nameStart, t.cur.Pos()))
	if !ok {
		// Leave the delimiter for the next text token.
		return t.textFrom(start)
	}

	t.cur.Advance() // skip ']', '=' or ' '
	if delim == ']' {
		return OpeningTag(tt.ID)
	}

	attrStart := t.cur.Pos()
	var terminated bool
	if tt.Nested {
		terminated = t.skipBalancedAttribute()
	} else {
		terminated = t.skipAttribute()
	}
	if !terminated {
		return t.textFrom(start)
	}
	attr := t.cur.Slice(attrStart, t.cur.Pos())
	t.cur.Advance() // skip ']'
	return OpeningTagWithAttribute(tt.ID, attr)
}

// skipAttribute stops on the first ']' not preceded by a backslash.
func (t *Tokenizer) skipAttribute() bool {
	for {
		r, ok := t.cur.Current()
		if !ok {
			return false
		}
		switch r {
		case '\\':
			t.cur.Advance()
		case ']':
			return true
		}
		t.cur.Advance()
	}
}

// skipBalancedAttribute stops on the first ']' that has no matching '[' opened
// since the attribute began.
func (t *Tokenizer) skipBalancedAttribute() bool {
	depth := 0
	for {
		r, ok := t.cur.Current()
		if !ok {
			return false
		}
		switch r {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return true
			}
			depth--
		}
		t.cur.Advance()
	}
}

func (t *Tokenizer) textFrom(start int) Token {
	return TextToken(t.cur.Slice(start, t.cur.Pos()))
}

func isOpenBracket(r rune) bool {
	return r == '['
}

func isNameDelimiter(r rune) bool {
	return r == ']' || r == '=' || r == ' ' || r == '['
}
