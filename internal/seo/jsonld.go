package seo

import (
	"encoding/json"
	"strings"
)

// Schema is a schema.org JSON-LD object.
type Schema map[string]any

const schemaContext = "https://schema.org"

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) Schema {
	m := Schema{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     name,
	}
	setIf(m, "url", url)
	setIf(m, "logo", logoURL)
	return m
}

// WebSite returns a WebSite schema with an optional SearchAction. The search
// term is appended to searchActionURL.
func WebSite(name, url, searchActionURL string) Schema {
	m := Schema{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     name,
	}
	setIf(m, "url", url)
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) Schema {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return Schema{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Product returns a minimal Product schema.
func Product(name, description, url, imageURL, sku string) Schema {
	m := Schema{
		"@context": schemaContext,
		"@type":    "Product",
		"name":     name,
	}
	setIf(m, "description", description)
	setIf(m, "url", url)
	setIf(m, "image", imageURL)
	setIf(m, "sku", sku)
	return m
}

// Article derives an Article schema from a resolved config. It returns nil
// unless the config declares og:type article.
func Article(cfg Config) Schema {
	og := cfg.OpenGraph
	if og == nil || !strings.EqualFold(strings.TrimSpace(og.Type), "article") {
		return nil
	}
	t := resolveTitles(cfg)
	m := Schema{
		"@context": schemaContext,
		"@type":    "Article",
		"headline": t.openGraph,
	}
	setIf(m, "description", firstNonEmpty(og.Description, cfg.Description))
	setIf(m, "url", firstNonEmpty(og.URL, cfg.Canonical))
	for _, img := range og.Images {
		if img.URL != "" {
			m["image"] = img.URL
			break
		}
	}
	if len(og.Article.Authors) > 0 {
		authors := make([]map[string]any, 0, len(og.Article.Authors))
		for _, a := range og.Article.Authors {
			authors = append(authors, map[string]any{"@type": "Person", "name": a})
		}
		m["author"] = authors
	}
	setIf(m, "datePublished", og.Article.PublishedTime)
	setIf(m, "dateModified", og.Article.ModifiedTime)
	setIf(m, "articleSection", og.Article.Section)
	if len(og.Article.Tags) > 0 {
		m["keywords"] = append([]string(nil), og.Article.Tags...)
	}
	return m
}

func setIf(m Schema, key, value string) {
	if value != "" {
		m[key] = value
	}
}
