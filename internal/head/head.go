// Package head renders resolved SEO tags as HTML.
package head

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"finitefield.org/hanko-seo/internal/seo"
)

// Option adjusts rendering.
type Option func(*options)

type options struct {
	separator string
	jsonld    []seo.Schema
}

// WithSeparator sets the text written between elements. The default is a newline.
func WithSeparator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// WithJSONLD appends one application/ld+json script per non-empty schema.
func WithJSONLD(schemas ...seo.Schema) Option {
	return func(o *options) { o.jsonld = append(o.jsonld, schemas...) }
}

// Nodes converts tags into detached element nodes, preserving order. Tags of
// an unknown kind are skipped.
func Nodes(tags []seo.Tag) []*html.Node {
	out := make([]*html.Node, 0, len(tags))
	for _, t := range tags {
		if n := node(t); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func node(t seo.Tag) *html.Node {
	switch t.Kind {
	case seo.TitleTag:
		n := element(atom.Title)
		n.AppendChild(&html.Node{Type: html.TextNode, Data: t.Title})
		return n
	case seo.MetaTag:
		n := element(atom.Meta)
		if t.Property != "" {
			attr(n, "property", t.Property)
		} else {
			attr(n, "name", t.Name)
		}
		attr(n, "content", t.Content)
		return n
	case seo.CharSetTag:
		n := element(atom.Meta)
		attr(n, "charset", t.CharSet)
		return n
	case seo.LinkTag:
		n := element(atom.Link)
		attr(n, "rel", t.Rel)
		attr(n, "href", t.Href)
		if t.HrefLang != "" {
			attr(n, "hreflang", t.HrefLang)
		}
		if t.Media != "" {
			attr(n, "media", t.Media)
		}
		return n
	}
	return nil
}

func scriptNode(s seo.Schema) *html.Node {
	body := seo.JSON(s)
	if len(s) == 0 || body == "" {
		return nil
	}
	n := element(atom.Script)
	attr(n, "type", "application/ld+json")
	// json.Marshal escapes <, > and &, so the body cannot close the script.
	n.AppendChild(&html.Node{Type: html.TextNode, Data: body})
	return n
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func attr(n *html.Node, key, val string) {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Render writes the tags to w.
func Render(w io.Writer, tags []seo.Tag, opts ...Option) error {
	o := options{separator: "\n"}
	for _, opt := range opts {
		opt(&o)
	}
	nodes := Nodes(tags)
	for _, s := range o.jsonld {
		if n := scriptNode(s); n != nil {
			nodes = append(nodes, n)
		}
	}
	for i, n := range nodes {
		if i > 0 && o.separator != "" {
			if _, err := io.WriteString(w, o.separator); err != nil {
				return err
			}
		}
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

// String renders the tags to a string.
func String(tags []seo.Tag, opts ...Option) string {
	var sb strings.Builder
	_ = Render(&sb, tags, opts...)
	return sb.String()
}

// Component wraps the tags as a templ component for use inside a layout.
func Component(tags []seo.Tag, jsonld ...seo.Schema) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return Render(w, tags, WithJSONLD(jsonld...))
	})
}

// Document renders a complete HTML page: the resolved head followed by body.
// A charset tag is added unless tags already carry one.
func Document(lang string, tags []seo.Tag, body templ.Component, jsonld ...seo.Schema) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		l := lang
		if l == "" {
			l = "en"
		}
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="`+html.EscapeString(l)+`"><head>`+"\n"); err != nil {
			return err
		}
		all := tags
		if !hasCharSet(tags) {
			all = append([]seo.Tag{seo.CharSet("utf-8")}, tags...)
		}
		if err := Render(w, all, WithJSONLD(jsonld...)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n</head><body>\n"); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n</body></html>\n")
		return err
	})
}

func hasCharSet(tags []seo.Tag) bool {
	for _, t := range tags {
		if t.Kind == seo.CharSetTag {
			return true
		}
	}
	return false
}
