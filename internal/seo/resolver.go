// Package seo maps a declarative SEO configuration to the ordered list of
// <head> tag descriptors (title, meta, link) a page should render.
//
// Resolution is synchronous and pure: a Resolver captures an immutable copy of
// the site defaults, merges each page config on top of it and walks a fixed
// set of fields. Malformed input never fails a call; the offending tag is
// skipped (or emitted as-is for URL problems) and a warning goes to the
// configured Warner.
package seo

import (
	"fmt"
	"net/url"
)

// RouteArgs carries the per-request data a ProviderFunc may consult.
type RouteArgs struct {
	Params map[string]string
	Path   string
	Query  url.Values
	Data   any
}

// Param returns the named route parameter.
func (a RouteArgs) Param(key string) string {
	if a.Params == nil {
		return ""
	}
	return a.Params[key]
}

// Provider yields the page config for a route.
type Provider interface {
	SEO(args RouteArgs) Config
}

// SEO lets a literal Config act as a Provider.
func (c Config) SEO(RouteArgs) Config { return c }

// ProviderFunc builds the page config from route arguments.
type ProviderFunc func(args RouteArgs) Config

// SEO calls f.
func (f ProviderFunc) SEO(args RouteArgs) Config {
	if f == nil {
		return Config{}
	}
	return f(args)
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithWarner routes warnings to w instead of the zap global logger.
func WithWarner(w Warner) Option {
	return func(r *Resolver) {
		if w != nil {
			r.warner = w
		}
	}
}

// Resolver turns page configs into head tags. It is safe for concurrent use.
type Resolver struct {
	defaults Config
	warner   Warner
}

// New returns a Resolver whose every call merges on top of defaults. The
// defaults are copied; later changes to the argument have no effect.
func New(defaults Config, opts ...Option) *Resolver {
	r := &Resolver{
		defaults: defaults.Clone(),
		warner:   LogWarner(nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Defaults returns a copy of the captured default config.
func (r *Resolver) Defaults() Config { return r.defaults.Clone() }

// ResolveConfig returns the page config merged over the defaults. A nil
// provider resolves to the defaults alone.
func (r *Resolver) ResolveConfig(p Provider, args RouteArgs) Config {
	var page Config
	if p != nil {
		page = p.SEO(args)
	}
	return Merge(r.defaults, page)
}

// Resolve returns every head tag for the page in emission order.
func (r *Resolver) Resolve(p Provider, args RouteArgs) []Tag {
	return r.resolve(r.ResolveConfig(p, args), r.warner)
}

// ResolveWith is Resolve with warnings sent to w for this call only.
func (r *Resolver) ResolveWith(p Provider, args RouteArgs, w Warner) []Tag {
	if w == nil {
		w = r.warner
	}
	return r.resolve(r.ResolveConfig(p, args), w)
}

// Meta returns the non-link tags (title and meta) for the page.
func (r *Resolver) Meta(p Provider, args RouteArgs) []Tag {
	return filter(r.Resolve(p, args), func(t Tag) bool { return t.Kind != LinkTag })
}

// Links returns the link tags for the page.
func (r *Resolver) Links(p Provider, args RouteArgs) []Tag {
	return filter(r.Resolve(p, args), func(t Tag) bool { return t.Kind == LinkTag })
}

func (r *Resolver) resolve(cfg Config, w Warner) []Tag {
	b := &builder{
		cfg:    cfg,
		titles: resolveTitles(cfg),
		warner: w,
	}
	if b.titles.base != "" {
		b.tags = append(b.tags, Title(b.titles.base))
	}
	b.name("description", cfg.Description)
	b.links()
	b.openGraph()
	b.twitter()
	if cfg.Facebook != nil {
		b.property("fb:app_id", cfg.Facebook.AppID)
	}
	b.robots()
	b.google()
	return b.tags
}

// builder accumulates tags for one resolution.
type builder struct {
	cfg    Config
	titles titles
	warner Warner
	tags   []Tag
}

func (b *builder) name(name, content string) {
	if content != "" {
		b.tags = append(b.tags, Name(name, content))
	}
}

func (b *builder) property(property, content string) {
	if content != "" {
		b.tags = append(b.tags, Property(property, content))
	}
}

func (b *builder) link(t Tag) {
	b.tags = append(b.tags, t)
}

func (b *builder) warn(format string, args ...any) {
	b.warner.Warn(fmt.Sprintf(format, args...))
}

// checkURL warns when raw is not absolute. The caller still emits the tag.
func (b *builder) checkURL(raw, tag, field string) {
	if !IsAbsoluteURL(raw) {
		b.warn("the %s tag must be a valid, absolute URL; relative paths will not work as expected (check %s)", tag, field)
	}
}
