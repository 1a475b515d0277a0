package httpserver

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// negotiator picks a page language from the lang query parameter or the
// Accept-Language header. The first supported language is the fallback.
type negotiator struct {
	names   []string
	matcher language.Matcher
}

func newNegotiator(langs []string) *negotiator {
	n := &negotiator{}
	var tags []language.Tag
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		n.names = append(n.names, l)
	}
	if len(tags) > 0 {
		n.matcher = language.NewMatcher(tags)
	}
	return n
}

func (n *negotiator) lang(r *http.Request) string {
	if q := strings.TrimSpace(r.URL.Query().Get("lang")); q != "" {
		return q
	}
	if n == nil || n.matcher == nil {
		return ""
	}
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return ""
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return ""
	}
	_, idx, conf := n.matcher.Match(prefs...)
	if conf == language.No {
		return ""
	}
	return n.names[idx]
}

// varyLocale marks responses as depending on Accept-Language.
func varyLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}
