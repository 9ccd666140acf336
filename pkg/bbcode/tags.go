// tags.go defines the closed vocabulary of recognized tags.
package bbcode

import "strings"

// TagID identifies a recognized tag. Unknown tag names have no TagID.
type TagID int

const (
	TagBold TagID = iota + 1
	TagItalic
	TagUnderline
	TagStrike
	TagSubscript
	TagSuperscript
	TagColor
	TagBackground
	TagSize
	TagFont
	TagURL
	TagImage
	TagLeft
	TagCenter
	TagRight
	TagJustify
	TagQuote
	TagSpoiler
	TagCode
	TagList
	TagListItem
	TagHide
	TagNoticeCurator
	TagNoticeModerator
	TagNoticeAdmin
	TagAttachment
	TagOfftop
)

// TagKind describes how the tree builder treats a tag.
type TagKind int

const (
	KindInline TagKind = iota // formatting container inside a text run
	KindBlock                 // block container (alignment, quote, list, ...)
	KindLeaf                  // emitted immediately, never pushed
	KindRaw                   // content up to the closer is taken literally
)

// TagType defines the behavior for a specific tag.
type TagType struct {
	ID   TagID
	Name string // canonical lowercase name
	Kind TagKind
	// Nested means the attribute may contain bracketed markup and is
	// delimited by bracket-depth balancing instead of the first ']'.
	Nested bool
}

// TagRegistry maps lowercase tag names (including aliases) to their definitions.
// Adding a new tag = adding one entry here and a node mapping in the builder.
var TagRegistry = map[string]TagType{
	"b":          {ID: TagBold, Name: "b", Kind: KindInline},
	"i":          {ID: TagItalic, Name: "i", Kind: KindInline},
	"u":          {ID: TagUnderline, Name: "u", Kind: KindInline},
	"s":          {ID: TagStrike, Name: "s", Kind: KindInline},
	"sub":        {ID: TagSubscript, Name: "sub", Kind: KindInline},
	"sup":        {ID: TagSuperscript, Name: "sup", Kind: KindInline},
	"color":      {ID: TagColor, Name: "color", Kind: KindInline},
	"background": {ID: TagBackground, Name: "background", Kind: KindInline},
	"size":       {ID: TagSize, Name: "size", Kind: KindInline},
	"font":       {ID: TagFont, Name: "font", Kind: KindInline},
	"url":        {ID: TagURL, Name: "url", Kind: KindInline},
	"offtop":     {ID: TagOfftop, Name: "offtop", Kind: KindInline},
	"img":        {ID: TagImage, Name: "img", Kind: KindRaw},
	"left":       {ID: TagLeft, Name: "left", Kind: KindBlock},
	"center":     {ID: TagCenter, Name: "center", Kind: KindBlock},
	"right":      {ID: TagRight, Name: "right", Kind: KindBlock},
	"justify":    {ID: TagJustify, Name: "justify", Kind: KindBlock},
	"quote":      {ID: TagQuote, Name: "quote", Kind: KindBlock, Nested: true},
	"spoiler":    {ID: TagSpoiler, Name: "spoiler", Kind: KindBlock, Nested: true},
	"code":       {ID: TagCode, Name: "code", Kind: KindRaw},
	"list":       {ID: TagList, Name: "list", Kind: KindBlock},
	"*":          {ID: TagListItem, Name: "*", Kind: KindBlock},
	"hide":       {ID: TagHide, Name: "hide", Kind: KindBlock},
	"cur":        {ID: TagNoticeCurator, Name: "cur", Kind: KindBlock},
	"curator":    {ID: TagNoticeCurator, Name: "cur", Kind: KindBlock},
	"mod":        {ID: TagNoticeModerator, Name: "mod", Kind: KindBlock},
	"moderator":  {ID: TagNoticeModerator, Name: "mod", Kind: KindBlock},
	"ex":         {ID: TagNoticeAdmin, Name: "ex", Kind: KindBlock},
	"admin":      {ID: TagNoticeAdmin, Name: "ex", Kind: KindBlock},
	"attachment": {ID: TagAttachment, Name: "attachment", Kind: KindLeaf},
}

// tagsByID holds the canonical definition for every TagID.
var tagsByID = func() map[TagID]TagType {
	m := make(map[TagID]TagType, len(TagRegistry))
	for _, tt := range TagRegistry {
		m[tt.ID] = tt
	}
	return m
}()

// LookupTag returns the TagType for a given name, normalizing to lowercase.
// Returns ok=false if the tag is not registered.
func LookupTag(name string) (TagType, bool) {
	tt, ok := TagRegistry[strings.ToLower(name)]
	return tt, ok
}

// Type returns the canonical definition of the tag.
func (id TagID) Type() TagType {
	return tagsByID[id]
}

// String returns the canonical tag name.
func (id TagID) String() string {
	if tt, ok := tagsByID[id]; ok {
		return tt.Name
	}
	return "unknown"
}
