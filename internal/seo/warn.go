package seo

import (
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Warner receives advisory messages about malformed configuration. Warnings
// never change what the resolver emits.
type Warner interface {
	Warn(msg string)
}

// WarnFunc adapts a function to Warner.
type WarnFunc func(msg string)

// Warn calls f.
func (f WarnFunc) Warn(msg string) { f(msg) }

type logWarner struct {
	logger *zap.Logger
}

// LogWarner reports warnings through logger at WARN level. A nil logger
// resolves zap's global logger on every call so zap.ReplaceGlobals applies.
func LogWarner(logger *zap.Logger) Warner {
	return logWarner{logger: logger}
}

func (w logWarner) Warn(msg string) {
	l := w.logger
	if l == nil {
		l = zap.L()
	}
	l.Warn("seo: "+msg, zap.String("component", "seo"))
}

// Recorder collects warnings in memory. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	msgs []string
}

// Warn records msg.
func (r *Recorder) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

// Messages returns a copy of the recorded warnings.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// Len returns the number of recorded warnings.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

// Reset drops recorded warnings.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.msgs = nil
	r.mu.Unlock()
}

// IsAbsoluteURL reports whether s parses as an absolute URL.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return u.IsAbs() && (u.Host != "" || u.Opaque != "")
}

// validHrefLang accepts BCP 47 tags and the x-default sentinel.
func validHrefLang(s string) bool {
	if strings.EqualFold(s, "x-default") {
		return true
	}
	_, err := language.Parse(s)
	return err == nil
}
