// node.go defines the semantic tree handed to renderers.
package bbcode

import (
	"fmt"
	"strings"
)

// NodeKind identifies the variant of a Node. Renderers must handle every kind
// or explicitly ignore it.
type NodeKind int

const (
	NodeText NodeKind = iota
	NodeAttachment
	NodeImage

	// inline formatting containers
	NodeBold
	NodeItalic
	NodeUnderline
	NodeStrike
	NodeSubscript
	NodeSuperscript
	NodeOfftop
	NodeColor
	NodeBackground
	NodeSize
	NodeFont
	NodeURL

	// block containers
	NodeLeft
	NodeCenter
	NodeRight
	NodeJustify
	NodeBullet
	NodeList
	NodeSpoiler
	NodeQuote
	NodeCode
	NodeHide
	NodeNotice
)

var nodeKindNames = map[NodeKind]string{
	NodeText:        "text",
	NodeAttachment:  "attachment",
	NodeImage:       "image",
	NodeBold:        "bold",
	NodeItalic:      "italic",
	NodeUnderline:   "underline",
	NodeStrike:      "strike",
	NodeSubscript:   "subscript",
	NodeSuperscript: "superscript",
	NodeOfftop:      "offtop",
	NodeColor:       "color",
	NodeBackground:  "background",
	NodeSize:        "size",
	NodeFont:        "font",
	NodeURL:         "url",
	NodeLeft:        "left",
	NodeCenter:      "center",
	NodeRight:       "right",
	NodeJustify:     "justify",
	NodeBullet:      "bullet",
	NodeList:        "list",
	NodeSpoiler:     "spoiler",
	NodeQuote:       "quote",
	NodeCode:        "code",
	NodeHide:        "hide",
	NodeNotice:      "notice",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// MarshalText encodes the kind by name so JSON output stays readable.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its name, so cached trees can be reloaded.
func (k *NodeKind) UnmarshalText(text []byte) error {
	for kind, name := range nodeKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", text)
}

// ListType is the ordering of a list container.
type ListType int

const (
	ListBullet ListType = iota + 1
	ListNumeric
	ListRoman
)

func (l ListType) String() string {
	switch l {
	case ListBullet:
		return "bullet"
	case ListNumeric:
		return "numeric"
	case ListRoman:
		return "roman"
	}
	return ""
}

// MarshalText encodes the list type by name.
func (l ListType) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a list type from its name.
func (l *ListType) UnmarshalText(text []byte) error {
	for _, candidate := range []ListType{ListBullet, ListNumeric, ListRoman} {
		if candidate.String() == string(text) {
			*l = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown list type %q", text)
}

// NoticeKind is the staff role a notice block is issued by.
type NoticeKind int

const (
	NoticeCurator NoticeKind = iota + 1
	NoticeModerator
	NoticeAdmin
)

func (n NoticeKind) String() string {
	switch n {
	case NoticeCurator:
		return "curator"
	case NoticeModerator:
		return "moderator"
	case NoticeAdmin:
		return "admin"
	}
	return ""
}

// MarshalText encodes the notice kind by name.
func (n NoticeKind) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText decodes a notice kind from its name.
func (n *NoticeKind) UnmarshalText(text []byte) error {
	for _, candidate := range []NoticeKind{NoticeCurator, NoticeModerator, NoticeAdmin} {
		if candidate.String() == string(text) {
			*n = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown notice kind %q", text)
}

// QuoteMetadata is parsed from a quote header like name="X" date="Y" post=123.
type QuoteMetadata struct {
	Name   string  `json:"name"`
	Date   *string `json:"date,omitempty"`
	PostID *int    `json:"post_id,omitempty"`
}

// CodeTitle is the optional plain-text title of a code block. Empty means untitled.
type CodeTitle string

// Untitled reports whether the code block has no title.
func (c CodeTitle) Untitled() bool {
	return c == ""
}

// Node is one element of the parsed tree. Which fields are meaningful depends
// on Kind; children are owned by value and kept in reading order.
type Node struct {
	Kind NodeKind `json:"kind"`

	Text string `json:"text,omitempty"` // NodeText

	// Value holds the single scalar a node carries: the colour, size, font or
	// href of inline containers, the URL of an image, the id of an attachment.
	Value string `json:"value,omitempty"`

	Children []Node `json:"children,omitempty"`

	Title     []Node         `json:"title,omitempty"` // NodeSpoiler; nil when untitled
	Quote     *QuoteMetadata `json:"quote,omitempty"` // NodeQuote
	Inner     *Node          `json:"inner,omitempty"` // NodeCode
	CodeTitle CodeTitle      `json:"code_title,omitempty"`
	List      ListType       `json:"list,omitempty"`      // NodeList
	MinPosts  *int           `json:"min_posts,omitempty"` // NodeHide
	Notice    NoticeKind     `json:"notice,omitempty"`    // NodeNotice
}

// TextNode returns a text leaf.
func TextNode(s string) Node {
	return Node{Kind: NodeText, Text: s}
}

// Container returns a node of kind wrapping children.
func Container(kind NodeKind, children ...Node) Node {
	return Node{Kind: kind, Children: children}
}

// IsLeaf reports whether the node can never have children.
func (n Node) IsLeaf() bool {
	switch n.Kind {
	case NodeText, NodeAttachment, NodeImage:
		return true
	}
	return false
}

// Label returns a one-line description of the node for tree printers.
func (n Node) Label() string {
	var sb strings.Builder
	sb.WriteString(n.Kind.String())
	switch n.Kind {
	case NodeText:
		fmt.Fprintf(&sb, " %q", n.Text)
	case NodeList:
		sb.WriteString(" ")
		sb.WriteString(n.List.String())
	case NodeNotice:
		sb.WriteString(" ")
		sb.WriteString(n.Notice.String())
	case NodeHide:
		if n.MinPosts != nil {
			fmt.Fprintf(&sb, " posts>=%d", *n.MinPosts)
		}
	case NodeQuote:
		if q := n.Quote; q != nil {
			fmt.Fprintf(&sb, " name=%q", q.Name)
			if q.Date != nil {
				fmt.Fprintf(&sb, " date=%q", *q.Date)
			}
			if q.PostID != nil {
				fmt.Fprintf(&sb, " post=%d", *q.PostID)
			}
		}
	case NodeSpoiler:
		if n.Title != nil {
			fmt.Fprintf(&sb, " title=%q", PlainText(n.Title))
		}
	case NodeCode:
		if !n.CodeTitle.Untitled() {
			fmt.Fprintf(&sb, " title=%q", string(n.CodeTitle))
		}
	default:
		if n.Value != "" {
			fmt.Fprintf(&sb, " %s", n.Value)
		}
	}
	return sb.String()
}

// mergeText joins adjacent text nodes, dropping empty ones.
func mergeText(nodes []Node) []Node {
	if len(nodes) < 2 {
		if len(nodes) == 1 && nodes[0].Kind == NodeText && nodes[0].Text == "" {
			return nil
		}
		return nodes
	}
	out := nodes[:0]
	for _, n := range nodes {
		if n.Kind == NodeText {
			if n.Text == "" {
				continue
			}
			if len(out) > 0 && out[len(out)-1].Kind == NodeText {
				out[len(out)-1].Text += n.Text
				continue
			}
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
