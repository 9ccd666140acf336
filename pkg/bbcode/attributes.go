// attributes.go parses the raw attribute text carried by opening tags.
package bbcode

import (
	"strconv"
	"strings"
)

// ParseQuoteMetadata extracts name, date and post from a quote header such as
// `name="X" date="Y" post=123`. Any subset of keys may be present. A header with
// no recognized keys is taken as the author name ([quote=Someone]).
// Returns nil for an empty header.
func ParseQuoteMetadata(raw string) *QuoteMetadata {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if !strings.Contains(raw, "=") {
		return &QuoteMetadata{Name: unquote(raw)}
	}

	params := parseParameters(raw)
	name, hasName := params["name"]
	date, hasDate := params["date"]
	post, hasPost := params["post"]
	if !hasName && !hasDate && !hasPost {
		return &QuoteMetadata{Name: unquote(raw)}
	}

	meta := &QuoteMetadata{Name: name}
	if hasDate {
		meta.Date = &date
	}
	if hasPost {
		if id, err := strconv.Atoi(post); err == nil {
			meta.PostID = &id
		}
	}
	return meta
}

// parseParameters scans key=value pairs separated by whitespace. Values may be
// quoted with ' or "; escaped quotes inside a quoted value are unescaped.
// Keys are lowercased. Malformed input is skipped rather than rejected.
func parseParameters(input string) map[string]string {
	params := make(map[string]string)
	pos := 0

	for pos < len(input) {
		for pos < len(input) && isSpaceByte(input[pos]) {
			pos++
		}
		if pos >= len(input) {
			break
		}

		keyStart := pos
		for pos < len(input) && isParamKeyChar(rune(input[pos])) {
			pos++
		}
		if pos == keyStart {
			// Not a key; skip one byte and resync.
			pos++
			continue
		}
		key := strings.ToLower(input[keyStart:pos])

		if pos >= len(input) || input[pos] != '=' {
			params[key] = "true"
			continue
		}
		pos++ // skip '='

		value, newPos := parseParamValue(input, pos)
		params[key] = value
		pos = newPos
	}

	return params
}

// parseParamValue parses a parameter value, handling quoted strings.
// An unterminated quoted value runs to the end of input.
func parseParamValue(input string, pos int) (string, int) {
	if pos >= len(input) {
		return "", pos
	}

	if input[pos] == '"' || input[pos] == '\'' {
		quoteChar := input[pos]
		pos++ // skip opening quote
		var value strings.Builder
		for pos < len(input) {
			if input[pos] == quoteChar {
				return value.String(), pos + 1
			}
			if input[pos] == '\\' && pos+1 < len(input) && input[pos+1] == quoteChar {
				value.WriteByte(quoteChar)
				pos += 2
				continue
			}
			value.WriteByte(input[pos])
			pos++
		}
		return value.String(), pos
	}

	valueStart := pos
	for pos < len(input) && !isSpaceByte(input[pos]) {
		pos++
	}
	return input[valueStart:pos], pos
}

// unquote trims whitespace and one pair of matching surrounding quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// parseAttachmentID returns the id part of an attachment reference like "123:file.png".
func parseAttachmentID(raw string) string {
	ref := unquote(raw)
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		ref = ref[:i]
	}
	return strings.TrimSpace(ref)
}

// parseListType maps a list attribute to its ordering.
func parseListType(raw string, hasAttr bool) ListType {
	if !hasAttr {
		return ListBullet
	}
	switch unquote(raw) {
	case "1":
		return ListNumeric
	case "i", "I":
		return ListRoman
	}
	return ListBullet
}

// parseMinPosts reads the post-count requirement of a hide block.
func parseMinPosts(raw string, hasAttr bool) *int {
	if !hasAttr {
		return nil
	}
	n, err := strconv.Atoi(unquote(raw))
	if err != nil {
		return nil
	}
	return &n
}

// isSpaceByte reports ASCII whitespace only. Bytes of multi-byte UTF-8
// sequences are never separators.
func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isParamKeyChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
}
