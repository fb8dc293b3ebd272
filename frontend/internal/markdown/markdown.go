// Package markdown turns user written text (forum descriptions, comments, chat messages)
// into sanitized HTML for templates.
package markdown

import (
	"bytes"
	stdhtml "html"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Mode picks how much markdown a piece of text may use.
type Mode int

const (
	// Full allows block elements: headings, lists, quotes, fenced code.
	Full Mode = iota
	// Inline keeps to paragraphs, emphasis, code spans and links. Used for chat and comments.
	Inline
)

var internalLink = regexp.MustCompile(`^/(forum|kolaborasi|pesan|profil)(/|\?|$)`)

type Renderer struct {
	full   goldmark.Markdown
	inline goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	inlineParser := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewLinkParser(), 200),
			util.Prioritized(parser.NewAutoLinkParser(), 300),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
		parser.WithParagraphTransformers(
			util.Prioritized(parser.LinkReferenceParagraphTransformer, 100),
		),
	)

	return &Renderer{
		full: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify, extension.Table),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		inline: goldmark.New(
			goldmark.WithParser(inlineParser),
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: newPolicy(),
	}
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^internal-link$`)).OnElements("a")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.AllowRelativeURLs(true)
	return p
}

// Render converts text and sanitizes the result. Raw HTML in the input never survives:
// goldmark drops it and the policy strips anything that slips through.
func (r *Renderer) Render(text string, mode Mode) template.HTML {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	md := r.full
	if mode == Inline {
		md = r.inline
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	out := markInternalLinks(buf.String())
	return template.HTML(strings.TrimSpace(r.policy.Sanitize(out)))
}

var hrefAttr = regexp.MustCompile(`<a href="([^"]*)"`)

// markInternalLinks tags links to this site's own pages so they are styled apart.
func markInternalLinks(s string) string {
	return hrefAttr.ReplaceAllStringFunc(s, func(m string) string {
		href := hrefAttr.FindStringSubmatch(m)[1]
		if internalLink.MatchString(href) {
			return `<a class="internal-link" href="` + href + `"`
		}
		return m
	})
}

// Plain strips all markup and returns unescaped text; used for card excerpts and the
// chat sidebar.
func (r *Renderer) Plain(text string) string {
	stripped := bluemonday.StrictPolicy().Sanitize(string(r.Render(text, Inline)))
	return strings.TrimSpace(stdhtml.UnescapeString(stripped))
}
