package bbcode

import "strings"

// PlainText concatenates the text a tree decorates, dropping all markup.
// Code bodies are included verbatim; spoiler titles precede their content.
// Images and attachments contribute nothing.
func PlainText(nodes []Node) string {
	var sb strings.Builder
	writePlainText(&sb, nodes)
	return sb.String()
}

func writePlainText(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n.Kind {
		case NodeText:
			sb.WriteString(n.Text)
		case NodeAttachment, NodeImage:
		case NodeCode:
			if n.Inner != nil {
				sb.WriteString(n.Inner.Text)
			}
		case NodeSpoiler:
			writePlainText(sb, n.Title)
			writePlainText(sb, n.Children)
		default:
			writePlainText(sb, n.Children)
		}
	}
}
