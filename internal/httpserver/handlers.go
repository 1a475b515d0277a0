package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/content"
	"finitefield.org/hanko-seo/internal/head"
	"finitefield.org/hanko-seo/internal/observability"
	"finitefield.org/hanko-seo/internal/seo"
)

type pageTagsResponse struct {
	Slug     string    `json:"slug"`
	Lang     string    `json:"lang"`
	Tags     []seo.Tag `json:"tags"`
	Warnings []string  `json:"warnings"`
}

type resolveResponse struct {
	Tags     []seo.Tag `json:"tags"`
	Warnings []string  `json:"warnings"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, ok := s.loadPage(w, r)
	if !ok {
		return
	}
	provider := s.pageProvider(r, page)
	args := routeArgs(r, page)
	warner := observability.Warner(observability.FromContext(r.Context()))

	tags := s.resolver.ResolveWith(provider, args, warner)
	var schemas []seo.Schema
	if article := seo.Article(s.resolver.ResolveConfig(provider, args)); article != nil {
		schemas = append(schemas, article)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", page.Lang)
	doc := head.Document(page.Lang, tags, templ.Raw(page.HTML), schemas...)
	if err := doc.Render(r.Context(), w); err != nil {
		observability.FromContext(r.Context()).Error("render page", zap.Error(err))
	}
}

func (s *Server) handlePageTags(w http.ResponseWriter, r *http.Request) {
	page, ok := s.loadPage(w, r)
	if !ok {
		return
	}
	rec := &seo.Recorder{}
	tags := s.resolver.ResolveWith(s.pageProvider(r, page), routeArgs(r, page), rec)
	writeJSON(w, http.StatusOK, pageTagsResponse{
		Slug:     page.Slug,
		Lang:     page.Lang,
		Tags:     nonNil(tags),
		Warnings: nonNil(rec.Messages()),
	})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var cfg seo.Config
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxResolveBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_config", err.Error())
		return
	}
	rec := &seo.Recorder{}
	args := seo.RouteArgs{Path: r.URL.Query().Get("path"), Query: r.URL.Query()}
	tags := s.resolver.ResolveWith(cfg, args, rec)
	writeJSON(w, http.StatusOK, resolveResponse{
		Tags:     nonNil(tags),
		Warnings: nonNil(rec.Messages()),
	})
}

func (s *Server) loadPage(w http.ResponseWriter, r *http.Request) (content.Page, bool) {
	slug := chi.URLParam(r, "slug")
	page, err := s.pages.Load(slug, s.locales.lang(r))
	if errors.Is(err, content.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "not_found", "page not found")
		return content.Page{}, false
	}
	if err != nil {
		observability.FromContext(r.Context()).Error("load page", zap.String("slug", slug), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal_server_error", "failed to load page")
		return content.Page{}, false
	}
	return page, true
}

// pageProvider adds a canonical derived from the public page path when the
// page does not declare one.
func (s *Server) pageProvider(r *http.Request, page content.Page) seo.Provider {
	base := s.baseURL
	if base == "" {
		base = requestOrigin(r)
	}
	return seo.ProviderFunc(func(args seo.RouteArgs) seo.Config {
		cfg := page.SEO
		if cfg.Canonical == "" && base != "" {
			cfg.Canonical = base + args.Path
		}
		return cfg
	})
}

func routeArgs(r *http.Request, page content.Page) seo.RouteArgs {
	params := map[string]string{}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return seo.RouteArgs{
		Params: params,
		Path:   "/pages/" + page.Slug,
		Query:  r.URL.Query(),
		Data:   page,
	}
}

func requestOrigin(r *http.Request) string {
	host := strings.TrimSpace(r.Host)
	if host == "" {
		return ""
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto == "https" || proto == "http" {
		scheme = proto
	}
	return scheme + "://" + host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	payload := map[string]any{
		"error":   code,
		"message": message,
		"status":  status,
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		payload["request_id"] = id
	}
	writeJSON(w, status, payload)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
