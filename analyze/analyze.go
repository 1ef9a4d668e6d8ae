// Package analyze parses markdown into the structural facts the chunking
// engine selects strategies with: a ContentAnalysis summary and an ordered
// list of structural elements with 1-based line ranges.
//
// The implementation is goldmark-backed with GFM extensions enabled, so
// pipe tables and task lists are recognized.
package analyze

import (
	"sort"
	"strings"

	chunkmd "github.com/nevindra/chunkmd"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Analyzer implements chunkmd.Analyzer using a goldmark parser.
// It is stateless between calls and safe for concurrent use.
type Analyzer struct {
	md goldmark.Markdown
}

// New returns a GFM-aware markdown analyzer.
func New() *Analyzer {
	return &Analyzer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Analyze parses input and returns the document summary plus all structural
// elements (headers, code blocks, lists, list items, tables) in document
// order. Plain paragraphs are not elements; they are the space between them.
func (a *Analyzer) Analyze(input string) (chunkmd.ContentAnalysis, []chunkmd.Element, error) {
	source := []byte(input)
	docLines := strings.Split(input, "\n")
	idx := newLineIndex(source)

	doc := a.md.Parser().Parse(text.NewReader(source))

	var elements []chunkmd.Element
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if start, end, ok := nodeRange(node, idx); ok {
				elements = append(elements, element(chunkmd.ElementHeader, node.Level, start, end, docLines))
			}
		case *ast.FencedCodeBlock:
			if el, ok := fencedElement(node, source, idx, docLines); ok {
				elements = append(elements, el)
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			if start, end, ok := nodeRange(node, idx); ok {
				elements = append(elements, element(chunkmd.ElementCode, 0, start, end, docLines))
			}
			return ast.WalkSkipChildren, nil
		case *ast.List:
			if start, end, ok := nodeRange(node, idx); ok {
				el := element(chunkmd.ElementList, 0, start, end, docLines)
				el.Ordered = node.IsOrdered()
				elements = append(elements, el)
				elements = append(elements, listItems(node, idx, docLines)...)
			}
			return ast.WalkSkipChildren, nil
		case *east.Table:
			if start, end, ok := nodeRange(node, idx); ok {
				elements = append(elements, element(chunkmd.ElementTable, 0, start, end, docLines))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return chunkmd.ContentAnalysis{}, nil, err
	}

	sort.SliceStable(elements, func(i, j int) bool {
		if elements[i].StartLine != elements[j].StartLine {
			return elements[i].StartLine < elements[j].StartLine
		}
		return elements[i].EndLine > elements[j].EndLine
	})

	return summarize(input, docLines, elements), elements, nil
}

// listItems records the direct items of a list. Nested lists stay inside the
// item ranges rather than becoming separate list elements.
func listItems(list *ast.List, idx lineIndex, docLines []string) []chunkmd.Element {
	var items []chunkmd.Element
	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*ast.ListItem); !ok {
			continue
		}
		if start, end, ok := nodeRange(c, idx); ok {
			el := element(chunkmd.ElementListItem, 0, start, end, docLines)
			el.Ordered = list.IsOrdered()
			items = append(items, el)
		}
	}
	return items
}

// fencedElement extends the content range of a fenced block to cover the
// fence lines themselves, since the chunker must keep fences with their code.
func fencedElement(node *ast.FencedCodeBlock, source []byte, idx lineIndex, docLines []string) (chunkmd.Element, bool) {
	var start, end int
	if lines := node.Lines(); lines.Len() > 0 {
		start = idx.lineOf(lines.At(0).Start)
		end = idx.lineOf(lastByte(lines.At(lines.Len() - 1)))
		start--
	} else if info := node.Info; info != nil {
		start = idx.lineOf(info.Segment.Start)
		end = start
	} else {
		return chunkmd.Element{}, false
	}
	if start < 1 {
		start = 1
	}
	if end < len(docLines) && isFenceLine(docLines[end]) {
		end++
	}
	el := element(chunkmd.ElementCode, 0, start, end, docLines)
	el.Language = string(node.Language(source))
	return el, true
}

func isFenceLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "```") || strings.HasPrefix(t, "~~~")
}

func element(kind chunkmd.ElementKind, level, start, end int, docLines []string) chunkmd.Element {
	if end > len(docLines) {
		end = len(docLines)
	}
	return chunkmd.Element{
		Kind:      kind,
		Level:     level,
		StartLine: start,
		EndLine:   end,
		Text:      strings.Join(docLines[start-1:end], "\n"),
	}
}

// nodeRange returns the 1-based inclusive line span of a node. Container
// nodes carry no text segments of their own, so the span is the union of
// their descendants.
func nodeRange(n ast.Node, idx lineIndex) (start, end int, ok bool) {
	if n.Type() == ast.TypeInline {
		// Inline nodes have no Lines; text segments still locate them, which
		// is how table cell positions are recovered.
		if t, isText := n.(*ast.Text); isText && t.Segment.Len() > 0 {
			return idx.lineOf(t.Segment.Start), idx.lineOf(lastByte(t.Segment)), true
		}
	} else if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		return idx.lineOf(first.Start), idx.lineOf(lastByte(last)), true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		cs, ce, cok := nodeRange(c, idx)
		if !cok {
			continue
		}
		if !ok {
			start, end, ok = cs, ce, true
			continue
		}
		if cs < start {
			start = cs
		}
		if ce > end {
			end = ce
		}
	}
	return start, end, ok
}

func lastByte(seg text.Segment) int {
	if seg.Stop > seg.Start {
		return seg.Stop - 1
	}
	return seg.Start
}

// summarize computes the document-level facts strategy selection runs on.
func summarize(input string, docLines []string, elements []chunkmd.Element) chunkmd.ContentAnalysis {
	a := chunkmd.ContentAnalysis{
		TotalChars: len(input),
		TotalLines: len(docLines),
	}

	codeChars := 0
	structuredLines := 0
	for _, el := range elements {
		switch el.Kind {
		case chunkmd.ElementHeader:
			a.HeaderCount++
		case chunkmd.ElementCode:
			a.CodeBlockCount++
			codeChars += len(el.Text)
		case chunkmd.ElementList:
			a.ListCount++
		case chunkmd.ElementListItem:
			a.ListItemCount++
		case chunkmd.ElementTable:
			a.TableCount++
		}
		if el.Kind != chunkmd.ElementListItem {
			structuredLines += el.Lines()
		}
	}

	if a.TotalChars > 0 {
		a.CodeRatio = clamp01(float64(codeChars) / float64(a.TotalChars))
	}

	kinds := 0
	for _, present := range []bool{a.HeaderCount > 0, a.CodeBlockCount > 0, a.ListCount > 0, a.TableCount > 0} {
		if present {
			kinds++
		}
	}
	density := 0.0
	if a.TotalLines > 0 {
		density = clamp01(float64(structuredLines) / float64(a.TotalLines))
	}
	a.ComplexityScore = clamp01(0.4*float64(kinds)/4 + 0.3*density + 0.3*a.CodeRatio)
	a.ContentType = classify(a, kinds)
	return a
}

func classify(a chunkmd.ContentAnalysis, kinds int) string {
	switch {
	case kinds >= 2:
		return "mixed"
	case a.CodeBlockCount > 0:
		return "code"
	case a.TableCount > 0:
		return "table"
	case a.ListCount > 0:
		return "list"
	case a.HeaderCount > 0:
		return "structured"
	default:
		return "text"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lineIndex maps byte offsets in the source to 1-based line numbers.
type lineIndex struct {
	starts []int
}

func newLineIndex(src []byte) lineIndex {
	starts := make([]int, 1, 64)
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{starts: starts}
}

func (ix lineIndex) lineOf(off int) int {
	lo, hi := 0, len(ix.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if ix.starts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

var _ chunkmd.Analyzer = (*Analyzer)(nil)
