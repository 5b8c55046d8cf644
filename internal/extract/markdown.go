package extract

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractMarkdown renders a Markdown document down to its plain-text content
// and scans that for answer notations. Inline formatting around a notation
// ("**1/c**", "`2-b`") does not get in the way of matching.
func (e *Extractor) ExtractMarkdown(src []byte) AnswerSet {
	return e.Extract(markdownToText(src))
}

// markdownToText walks the goldmark AST and collects the raw text segments,
// inserting line breaks at block boundaries so notations in adjacent blocks
// never concatenate into a single run.
func markdownToText(src []byte) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			switch node := n.(type) {
			case *ast.Text:
				buf.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					buf.WriteByte('\n')
				}
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					buf.Write(seg.Value(src))
				}
			}
			return ast.WalkContinue, nil
		}
		if _, isDoc := n.(*ast.Document); !isDoc && n.Type() == ast.TypeBlock {
			buf.WriteByte('\n')
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
