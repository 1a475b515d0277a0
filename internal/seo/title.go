package seo

import "strings"

// titles holds the three independently templated title variants.
type titles struct {
	base      string
	openGraph string
	twitter   string
}

func resolveTitles(cfg Config) titles {
	var ogTitle, twTitle string
	if cfg.OpenGraph != nil {
		ogTitle = cfg.OpenGraph.Title
	}
	if cfg.Twitter != nil {
		twTitle = cfg.Twitter.Title
	}
	bypass := cfg.BypassTitleTemplate
	return titles{
		base:      applyTemplate(cfg.TitleTemplate, firstNonEmpty(cfg.Title, cfg.DefaultTitle), isTrue(bypass.Title)),
		openGraph: applyTemplate(cfg.TitleTemplate, firstNonEmpty(ogTitle, cfg.Title, cfg.DefaultTitle), isTrue(bypass.OpenGraph)),
		twitter:   applyTemplate(cfg.TitleTemplate, firstNonEmpty(twTitle, ogTitle, cfg.Title, cfg.DefaultTitle), isTrue(bypass.Twitter)),
	}
}

// applyTemplate substitutes every %s in tmpl with value.
func applyTemplate(tmpl, value string, bypass bool) string {
	if value == "" || tmpl == "" || bypass {
		return value
	}
	return strings.ReplaceAll(tmpl, "%s", value)
}

// firstNonEmpty returns the first value that is set. Whitespace counts as set.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
