package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"linepatch/pkg/patch"
)

// expectLanguage tags the fenced block holding the anchor text.
const expectLanguage = "expect"

// ParseMarkdown reads a patch written as a Markdown document:
//
//	- path: src/app/page.tsx
//	- lines: 1304-1379
//
//	```tsx
//	...replacement...
//	```
//
// List items of the form "key: value" set the scalar fields (path, start,
// end, lines, content_file, expect_file); other list items are prose and
// ignored. The first fenced code block is the replacement content; a
// fenced block whose info string is "expect" holds the anchor text.
func ParseMarkdown(data []byte, baseDir string) (patch.File, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))

	var d document
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.ListItem:
			key, value, ok := strings.Cut(firstLine(node, data), ":")
			if !ok {
				return ast.WalkSkipChildren, nil
			}
			if _, err := d.set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
				return ast.WalkStop, err
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			body := blockText(node, data)
			if string(node.Language(data)) == expectLanguage {
				if d.Expect == nil {
					d.Expect = &body
				}
			} else if d.Content == nil {
				d.Content = &body
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return patch.File{}, err
	}
	return d.build(baseDir)
}

// firstLine returns the raw source of the first line of a list item.
func firstLine(item *ast.ListItem, source []byte) string {
	child := item.FirstChild()
	if child == nil {
		return ""
	}
	lines := child.Lines()
	if lines == nil || lines.Len() == 0 {
		return ""
	}
	seg := lines.At(0)
	return strings.TrimSpace(string(seg.Value(source)))
}

// blockText returns a fenced block's body exactly as written, terminators included.
func blockText(block *ast.FencedCodeBlock, source []byte) string {
	var b strings.Builder
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
