// Package mdblocks turns Markdown source into the block-event stream
// described by §1's external contract: an ordered sequence of
// Heading/Paragraph/CodeBlock/Text events, each carrying the source line
// it started on. It wraps github.com/yuin/goldmark's CommonMark parser
// the way original_source/src/parser.rs wraps comrak, so the extractor
// in internal/extract never has to know a specific Markdown library.
package mdblocks

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kind identifies what a block event represents.
type Kind int

const (
	Heading Kind = iota
	Paragraph
	CodeBlock
	Text
)

// Event is one block in document order.
type Event struct {
	Kind  Kind
	Line  int // 1-based
	Level int // heading level; 0 for non-headings
	Text  string
}

// Extract parses source and returns its block-event stream.
func Extract(source []byte) []Event {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var events []Event

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			events = append(events, Event{
				Kind: Heading, Level: v.Level, Line: lineOf(v, source), Text: inlineText(v, source),
			})
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			events = append(events, Event{
				Kind: Paragraph, Line: lineOf(v, source), Text: inlineText(v, source),
			})
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			events = append(events, Event{
				Kind: CodeBlock, Line: lineOf(v, source), Text: linesText(v, source),
			})
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			events = append(events, Event{
				Kind: CodeBlock, Line: lineOf(v, source), Text: linesText(v, source),
			})
			return ast.WalkSkipChildren, nil
		case *ast.TextBlock:
			events = append(events, Event{
				Kind: Text, Line: lineOf(v, source), Text: inlineText(v, source),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return events
}

type linedNode interface {
	Lines() *text.Segments
}

func lineOf(n ast.Node, source []byte) int {
	ln, ok := n.(linedNode)
	if !ok || ln.Lines().Len() == 0 {
		return 0
	}
	offset := ln.Lines().At(0).Start
	return 1 + bytes.Count(source[:offset], []byte("\n"))
}

func linesText(n linedNode, source []byte) string {
	var buf bytes.Buffer
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// inlineText walks an inline container (heading/paragraph content) and
// concatenates its literal text, ignoring emphasis/link markup and
// preserving soft line breaks as spaces.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
			if t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.CodeSpan:
			// goldmark's parser consumes the surrounding backticks and
			// keeps only the inner text as a child *ast.Text; put them
			// back so a backtick-quoted timestamp span still reads as
			// one when it reaches internal/extract's backtickSpanRe.
			buf.WriteByte('`')
			buf.WriteString(inlineText(t, source))
			buf.WriteByte('`')
		default:
			buf.WriteString(inlineText(c, source))
		}
	}
	return buf.String()
}
