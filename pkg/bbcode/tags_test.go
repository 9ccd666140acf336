package bbcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTag(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID TagID
		wantOK bool
	}{
		{"lowercase", "b", TagBold, true},
		{"uppercase", "B", TagBold, true},
		{"mixed case", "CoLoR", TagColor, true},
		{"list item", "*", TagListItem, true},
		{"curator alias", "curator", TagNoticeCurator, true},
		{"short curator", "CUR", TagNoticeCurator, true},
		{"admin alias", "admin", TagNoticeAdmin, true},
		{"unknown", "notatag", 0, false},
		{"empty", "", 0, false},
		{"with space", "b ", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupTag(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestTagRegistry_NestedAttributes(t *testing.T) {
	for name, tt := range TagRegistry {
		switch tt.ID {
		case TagQuote, TagSpoiler:
			assert.True(t, tt.Nested, name)
		default:
			assert.False(t, tt.Nested, name)
		}
	}
}

func TestTagRegistry_EveryContainerHasNodeKind(t *testing.T) {
	for name, tt := range TagRegistry {
		if tt.ID == TagAttachment {
			continue
		}
		_, ok := tagNodeKinds[tt.ID]
		require.True(t, ok, "tag %q has no node kind", name)
	}
}

func TestTagID_String(t *testing.T) {
	assert.Equal(t, "b", TagBold.String())
	assert.Equal(t, "cur", TagNoticeCurator.String())
	assert.Equal(t, "*", TagListItem.String())
	assert.Equal(t, "unknown", TagID(999).String())
}
