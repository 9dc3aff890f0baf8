package markdown

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// PostRef is an inline ">>uuid" reference to another post of the thread.
type PostRef struct {
	ast.BaseInline
	PostId string // lower case
}

var KindPostRef = ast.NewNodeKind("PostRef")

func (n *PostRef) Kind() ast.NodeKind {
	return KindPostRef
}

func (n *PostRef) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"PostId": n.PostId}, nil)
}

var postRefPattern = regexp.MustCompile(`^>>([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})`)

type postRefParser struct{}

func newPostRefParser() parser.InlineParser {
	return &postRefParser{}
}

func (p *postRefParser) Trigger() []byte {
	return []byte{'>'}
}

// Parse runs only on text goldmark hands to inline parsers, so code spans
// and code blocks never produce references.
func (p *postRefParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	m := postRefPattern.FindSubmatch(line)
	if m == nil {
		return nil
	}
	block.Advance(len(m[0]))
	return &PostRef{PostId: string(bytes.ToLower(m[1]))}
}

type postRefHTMLRenderer struct{}

func newPostRefHTMLRenderer() renderer.NodeRenderer {
	return &postRefHTMLRenderer{}
}

func (r *postRefHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindPostRef, r.renderPostRef)
}

func (r *postRefHTMLRenderer) renderPostRef(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	id := node.(*PostRef).PostId
	_, _ = w.WriteString(`<a class="post-ref" href="#post-` + id + `" data-post-id="` + id + `">&gt;&gt;` + id + `</a>`)
	return ast.WalkSkipChildren, nil
}
