// builder.go turns a token stream into a Node tree with a stack of open frames.
package bbcode

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// tagNodeKinds maps every pushable tag to the node kind it produces.
var tagNodeKinds = map[TagID]NodeKind{
	TagBold:            NodeBold,
	TagItalic:          NodeItalic,
	TagUnderline:       NodeUnderline,
	TagStrike:          NodeStrike,
	TagSubscript:       NodeSubscript,
	TagSuperscript:     NodeSuperscript,
	TagOfftop:          NodeOfftop,
	TagColor:           NodeColor,
	TagBackground:      NodeBackground,
	TagSize:            NodeSize,
	TagFont:            NodeFont,
	TagURL:             NodeURL,
	TagImage:           NodeImage,
	TagLeft:            NodeLeft,
	TagCenter:          NodeCenter,
	TagRight:           NodeRight,
	TagJustify:         NodeJustify,
	TagQuote:           NodeQuote,
	TagSpoiler:         NodeSpoiler,
	TagCode:            NodeCode,
	TagList:            NodeList,
	TagListItem:        NodeBullet,
	TagHide:            NodeHide,
	TagNoticeCurator:   NodeNotice,
	TagNoticeModerator: NodeNotice,
	TagNoticeAdmin:     NodeNotice,
}

// Tokens adapts a token slice to the sequence Build consumes.
func Tokens(tokens []Token) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for _, tok := range tokens {
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Build consumes tokens in a single pass and returns the document tree.
//
// Closing tags close everything opened after their matching opener; a closer
// with no opener on the stack is dropped. Frames still open at the end of the
// stream are closed implicitly. None of these conditions is an error.
func Build(tokens iter.Seq2[Token, error], opts ...Option) (*Document, error) {
	b := newBuilder(newOptions(opts))
	for tok, err := range tokens {
		if err != nil {
			return nil, fmt.Errorf("failed to tokenize: %w", err)
		}
		if err := b.consume(tok); err != nil {
			return nil, err
		}
	}
	return b.finish(), nil
}

// frame tracks an in-progress container.
type frame struct {
	tag  TagType // zero for the root frame
	node Node
	raw  *strings.Builder // non-nil for frames whose content is literal
	pos  int              // offset of the opening tag
}

type builder struct {
	opts  options
	doc   *Document
	stack []*frame

	// literal counts openers kept as text past the depth limit, per tag.
	// Their closers are dropped instead of closing an outer frame.
	literal map[TagID]int
}

func newBuilder(opts options) *builder {
	return &builder{
		opts:    opts,
		doc:     &Document{},
		stack:   []*frame{{}},
		literal: make(map[TagID]int),
	}
}

func (b *builder) consume(tok Token) error {
	switch tok.Type {
	case TokenText:
		b.appendText(tok.Text)
		return nil
	case TokenOpeningTag:
		return b.open(tok)
	case TokenClosingTag:
		b.close(tok)
		return nil
	default:
		return &InternalError{Offset: tok.Position, Reason: fmt.Sprintf("unknown token type %d", tok.Type)}
	}
}

func (b *builder) top() *frame {
	return b.stack[len(b.stack)-1]
}

// depth returns the number of open containers, excluding the root.
func (b *builder) depth() int {
	return len(b.stack) - 1
}

func (b *builder) appendText(s string) {
	top := b.top()
	if top.raw != nil {
		top.raw.WriteString(s)
		return
	}
	top.node.Children = append(top.node.Children, TextNode(s))
}

func (b *builder) appendNode(n Node) {
	top := b.top()
	top.node.Children = append(top.node.Children, n)
}

func (b *builder) open(tok Token) error {
	top := b.top()
	if top.raw != nil {
		top.raw.WriteString(tokenSource(tok))
		return nil
	}

	tt := tok.Tag.Type()
	if tt.ID == 0 {
		return &InternalError{Offset: tok.Position, Reason: fmt.Sprintf("opening tag with unregistered id %d", int(tok.Tag))}
	}

	switch tt.ID {
	case TagAttachment:
		if !tok.HasAttribute {
			b.warn("attachment at offset %d has no reference, kept as text", tok.Position)
			b.appendText(tokenSource(tok))
			return nil
		}
		b.appendNode(Node{Kind: NodeAttachment, Value: parseAttachmentID(tok.Attribute)})
		return nil
	case TagImage:
		if tok.HasAttribute {
			b.appendNode(Node{Kind: NodeImage, Value: unquote(tok.Attribute)})
			return nil
		}
	case TagListItem:
		// An item ends where the next one begins.
		if i := b.openItem(); i > 0 {
			b.unwind(i, "[*]")
			b.pop()
		}
	}

	if b.depth() >= b.opts.maxDepth {
		b.warn("nesting deeper than %d at offset %d, [%s] kept as text", b.opts.maxDepth, tok.Position, tt.Name)
		b.appendText(tokenSource(tok))
		b.literal[tt.ID]++
		return nil
	}

	node, err := b.newNode(tok, tt)
	if err != nil {
		return err
	}
	f := &frame{tag: tt, node: node, pos: tok.Position}
	if tt.Kind == KindRaw {
		f.raw = &strings.Builder{}
	}
	b.stack = append(b.stack, f)
	return nil
}

func (b *builder) close(tok Token) {
	top := b.top()
	if top.raw != nil {
		if tok.Tag == top.tag.ID {
			b.pop()
			return
		}
		top.raw.WriteString(tokenSource(tok))
		return
	}

	if b.literal[tok.Tag] > 0 {
		b.literal[tok.Tag]--
		b.warn("closing tag [/%s] at offset %d matches an opener kept as text, dropped", tok.Tag, tok.Position)
		return
	}

	i := b.find(tok.Tag)
	if i < 0 {
		b.warn("stray closing tag [/%s] at offset %d dropped", tok.Tag, tok.Position)
		return
	}
	b.unwind(i, "[/"+tok.Tag.String()+"]")
	b.pop()
}

// unwind pops every frame above stack index i, recording each implicit close.
func (b *builder) unwind(i int, by string) {
	for len(b.stack)-1 > i {
		inner := b.top()
		if inner.tag.ID != TagListItem {
			b.warn("[%s] opened at offset %d implicitly closed by %s", inner.tag.Name, inner.pos, by)
		}
		b.pop()
	}
}

// openItem returns the stack index of the list item open in the innermost
// list, or -1 when that list has no open item.
func (b *builder) openItem() int {
	for i := len(b.stack) - 1; i >= 1; i-- {
		switch b.stack[i].tag.ID {
		case TagListItem:
			return i
		case TagList:
			return -1
		}
	}
	return -1
}

// find returns the stack index of the nearest open frame for id, or -1.
func (b *builder) find(id TagID) int {
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.stack[i].tag.ID == id {
			return i
		}
	}
	return -1
}

// pop closes the top frame and appends its node to the frame below.
func (b *builder) pop() {
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	b.appendNode(finalize(f))
}

func (b *builder) finish() *Document {
	for len(b.stack) > 1 {
		f := b.top()
		if f.tag.ID != TagListItem {
			b.warn("unclosed [%s] at offset %d closed at end of input", f.tag.Name, f.pos)
		}
		b.pop()
	}
	b.doc.Nodes = mergeText(b.stack[0].node.Children)
	return b.doc
}

func (b *builder) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	b.doc.Warnings = append(b.doc.Warnings, msg)
	b.opts.logger.Debug().Msg(msg)
}

// newNode prepares the container for an opening tag, parsing its attribute.
func (b *builder) newNode(tok Token, tt TagType) (Node, error) {
	n := Node{Kind: tagNodeKinds[tt.ID]}
	switch tt.ID {
	case TagColor, TagBackground, TagSize, TagFont, TagURL:
		n.Value = unquote(tok.Attribute)
	case TagQuote:
		if tok.HasAttribute {
			n.Quote = ParseQuoteMetadata(tok.Attribute)
		}
	case TagSpoiler:
		title, err := b.parseTitle(tok)
		if err != nil {
			return Node{}, err
		}
		n.Title = title
	case TagCode:
		n.CodeTitle = CodeTitle(unquote(tok.Attribute))
	case TagList:
		n.List = parseListType(tok.Attribute, tok.HasAttribute)
	case TagHide:
		n.MinPosts = parseMinPosts(tok.Attribute, tok.HasAttribute)
	case TagNoticeCurator:
		n.Notice = NoticeCurator
	case TagNoticeModerator:
		n.Notice = NoticeModerator
	case TagNoticeAdmin:
		n.Notice = NoticeAdmin
	}
	return n, nil
}

// parseTitle builds a spoiler title by parsing its attribute as markup.
func (b *builder) parseTitle(tok Token) ([]Node, error) {
	if !tok.HasAttribute {
		return nil, nil
	}
	title := unquote(tok.Attribute)
	if title == "" {
		return nil, nil
	}

	remaining := b.opts.maxDepth - b.depth() - 1
	if remaining < 1 {
		return []Node{TextNode(title)}, nil
	}
	sub, err := Build(NewTokenizer(title).All(), WithMaxDepth(remaining), WithLogger(b.opts.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to parse spoiler title at offset %d: %w", tok.Position, err)
	}
	for _, w := range sub.Warnings {
		b.doc.Warnings = append(b.doc.Warnings, "spoiler title: "+w)
	}
	return sub.Nodes, nil
}

// finalize converts a closed frame into its node.
func finalize(f *frame) Node {
	n := f.node
	n.Children = mergeText(n.Children)

	switch f.tag.ID {
	case TagCode:
		inner := TextNode(f.raw.String())
		n.Inner = &inner
	case TagImage:
		n.Value = strings.TrimSpace(f.raw.String())
	case TagURL:
		if n.Value == "" && len(n.Children) > 0 && !slices.ContainsFunc(n.Children, isNotText) {
			n.Value = strings.TrimSpace(PlainText(n.Children))
		}
	}
	return n
}

func isNotText(n Node) bool {
	return n.Kind != NodeText
}

// tokenSource returns the original markup for a token. Tokens built by hand
// have no Raw span and are reconstructed.
func tokenSource(tok Token) string {
	if tok.Raw != "" {
		return tok.Raw
	}
	switch tok.Type {
	case TokenText:
		return tok.Text
	case TokenClosingTag:
		return "[/" + tok.Tag.String() + "]"
	}
	if tok.HasAttribute {
		return "[" + tok.Tag.String() + "=" + tok.Attribute + "]"
	}
	return "[" + tok.Tag.String() + "]"
}
