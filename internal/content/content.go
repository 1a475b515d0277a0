// Package content loads markdown pages whose YAML front matter carries the
// page's SEO configuration.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-seo/internal/seo"
)

// ErrNotFound is returned when no page exists for the slug in any candidate language.
var ErrNotFound = errors.New("content: page not found")

// Page is a markdown page with its resolved SEO config.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Body      string // raw markdown
	HTML      string // sanitized rendered body
	SEO       seo.Config
	UpdatedAt time.Time
}

// Clone returns a deep copy of p.
func (p Page) Clone() Page {
	cp := p
	cp.SEO = p.SEO.Clone()
	return cp
}

type frontMatter struct {
	Title     string     `yaml:"title"`
	Lang      string     `yaml:"lang"`
	UpdatedAt string     `yaml:"updated_at"`
	SEO       seo.Config `yaml:"seo"`
}

const (
	defaultDir      = "content"
	defaultLang     = "en"
	excerptRunes    = 160
	defaultCacheTTL = 5 * time.Minute
	meterName       = "finitefield.org/hanko-seo/internal/content"
)

// Store reads pages from dir/<lang>/<slug>.md, falling back to the default
// language and then to dir/<slug>.md.
type Store struct {
	dir         string
	defaultLang string
	ttl         time.Duration
	now         func() time.Time

	md       goldmark.Markdown
	sanitize *bluemonday.Policy
	strip    *bluemonday.Policy

	meter   metric.Meter
	lookups metric.Int64Counter
	latency metric.Float64Histogram

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithCacheTTL overrides how long loaded pages are cached. A non-positive
// duration disables caching.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithDefaultLang sets the language tried when the requested one has no page.
func WithDefaultLang(lang string) Option {
	return func(s *Store) {
		if lang = normalizeLang(lang); lang != "" {
			s.defaultLang = lang
		}
	}
}

// WithClock overrides the time source used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMeter sets the meter for cache and load metrics. The global meter
// provider is used otherwise.
func WithMeter(m metric.Meter) Option {
	return func(s *Store) { s.meter = m }
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string, opts ...Option) *Store {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultDir
	}
	s := &Store{
		dir:         dir,
		defaultLang: defaultLang,
		ttl:         defaultCacheTTL,
		now:         time.Now,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		sanitize: newBodyPolicy(),
		strip:    bluemonday.StrictPolicy(),
		cache:    map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.initMetrics()
	return s
}

func (s *Store) initMetrics() {
	if s.meter == nil {
		s.meter = otel.GetMeterProvider().Meter(meterName)
	}
	lookups, err := s.meter.Int64Counter(
		"content.page.lookups",
		metric.WithDescription("Page lookups by cache result"),
	)
	if err != nil {
		s.lookups = noop.Int64Counter{}
	} else {
		s.lookups = lookups
	}
	latency, err := s.meter.Float64Histogram(
		"content.page.load.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("Latency in milliseconds for reading and rendering a page"),
	)
	if err != nil {
		s.latency = noop.Float64Histogram{}
	} else {
		s.latency = latency
	}
}

func (s *Store) recordLookup(result string) {
	s.lookups.Add(context.Background(), 1, metric.WithAttributes(attribute.String("result", result)))
}

func newBodyPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "code")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Dir returns the content root.
func (s *Store) Dir() string { return s.dir }

// Languages lists the language directories under the content root, default
// language first.
func (s *Store) Languages() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("content: list languages: %w", err)
	}
	langs := []string{s.defaultLang}
	for _, e := range entries {
		name := normalizeLang(e.Name())
		if !e.IsDir() || name == "" || name == s.defaultLang {
			continue
		}
		if _, err := language.Parse(name); err != nil {
			continue
		}
		langs = append(langs, name)
	}
	sort.Strings(langs[1:])
	return langs, nil
}

// Load returns the page for slug in lang. Pages are cached per lang and slug;
// callers receive their own copy.
func (s *Store) Load(slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = normalizeLang(lang)
	if lang == "" {
		lang = s.defaultLang
	}

	key := lang + "|" + slug
	if page, ok := s.cached(key); ok {
		s.recordLookup("hit")
		return page, nil
	}

	start := s.now()
	page, err := s.read(slug, lang)
	s.latency.Record(context.Background(), float64(s.now().Sub(start))/float64(time.Millisecond))
	switch {
	case errors.Is(err, ErrNotFound):
		s.recordLookup("not_found")
		return Page{}, err
	case err != nil:
		s.recordLookup("error")
		return Page{}, err
	}
	s.recordLookup("miss")
	s.store(key, page)
	return page.Clone(), nil
}

func (s *Store) read(slug, lang string) (Page, error) {
	candidates := []string{filepath.Join(s.dir, lang, slug+".md")}
	if lang != s.defaultLang {
		candidates = append(candidates, filepath.Join(s.dir, s.defaultLang, slug+".md"))
	}
	candidates = append(candidates, filepath.Join(s.dir, slug+".md"))

	for _, file := range candidates {
		page, err := s.readFile(file, slug, lang)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return page, err
	}
	return Page{}, ErrNotFound
}

func (s *Store) readFile(file, slug, lang string) (Page, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Page{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}

	var rendered bytes.Buffer
	if err := s.md.Convert([]byte(body), &rendered); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}

	page := Page{
		Slug:  slug,
		Lang:  firstNonEmpty(normalizeLang(front.Lang), langFromPath(s.dir, file), lang),
		Title: firstNonEmpty(strings.TrimSpace(front.Title), prettifySlug(slug)),
		Body:  body,
		HTML:  s.sanitize.Sanitize(rendered.String()),
		SEO:   front.SEO,
	}
	if page.SEO.Title == "" {
		page.SEO.Title = page.Title
	}
	if page.SEO.Description == "" {
		page.SEO.Description = s.excerpt(rendered.String())
	}
	page.UpdatedAt = parseDate(front.UpdatedAt)
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	return page, nil
}

// excerpt reduces rendered HTML to at most excerptRunes of plain text.
func (s *Store) excerpt(rendered string) string {
	text := html.UnescapeString(s.strip.Sanitize(rendered))
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= excerptRunes {
		return text
	}
	runes := []rune(text)[:excerptRunes-1]
	return strings.TrimRight(string(runes), " ") + "…"
}

func (s *Store) cached(key string) (Page, bool) {
	if s.ttl <= 0 {
		return Page{}, false
	}
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page.Clone(), true
}

func (s *Store) store(key string, page Page) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{page: page.Clone(), expires: s.now().Add(s.ttl)}
}

// Purge drops every cached page.
func (s *Store) Purge() {
	s.mu.Lock()
	s.cache = map[string]cacheEntry{}
	s.mu.Unlock()
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n")
		}
	}
	return "", input
}

func langFromPath(dir, file string) string {
	rel, err := filepath.Rel(dir, filepath.Dir(file))
	if err != nil || rel == "." {
		return ""
	}
	return rel
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		if r >= 'a' && r <= 'z' {
			parts[i] = string(r-('a'-'A')) + part[size:]
		}
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func normalizeLang(lang string) string {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" || strings.Contains(lang, "..") || strings.ContainsAny(lang, `/\`) {
		return ""
	}
	return lang
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
