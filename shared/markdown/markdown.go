// Package markdown renders reply bodies to sanitized HTML.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// goldmark escapes '>' inside text, so links are matched after rendering
var replyLinkRegex = regexp.MustCompile(`&gt;&gt;(\d+)\b`)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	p := parser.NewParser(
		parser.WithBlockParsers(blockParsers()...),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithRendererOptions(html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^reply-link$`)).OnElements("a")
	policy.RequireNoFollowOnLinks(true)
	policy.AllowRelativeURLs(true)

	return &Renderer{md: md, policy: policy}
}

// blockParsers is goldmark's default set without blockquotes: a line
// starting with >>N is a reply link, not a quote.
func blockParsers() []util.PrioritizedValue {
	var out []util.PrioritizedValue
	for _, v := range parser.DefaultBlockParsers() {
		if bp, ok := v.Value.(parser.BlockParser); ok && bytes.Equal(bp.Trigger(), []byte{'>'}) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Render converts markdown to HTML, turns >>N into an anchor to reply N
// and strips anything the policy does not allow. Raw HTML in the source
// never survives. On a conversion error the escaped source is returned.
func (r *Renderer) Render(body string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return r.policy.Sanitize(body)
	}
	linked := replyLinkRegex.ReplaceAllString(strings.TrimSpace(buf.String()),
		`<a class="reply-link" href="#reply-$1">&gt;&gt;$1</a>`)
	return r.policy.Sanitize(linked)
}
