package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizationAndWebSite(t *testing.T) {
	t.Parallel()

	org := Organization("Hanko", "https://a.com", "")
	assert.Equal(t, Schema{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     "Hanko",
		"url":      "https://a.com",
	}, org)

	site := WebSite("Hanko", "https://a.com", "https://a.com/search?q=")
	action, ok := site["potentialAction"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://a.com/search?q={search_term_string}", action["target"])
}

func TestProductSchema(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Schema{
		"@context": "https://schema.org",
		"@type":    "Product",
		"name":     "Round seal",
		"url":      "https://a.com/p/round",
		"sku":      "SEAL-01",
	}, Product("Round seal", "", "https://a.com/p/round", "", "SEAL-01"))
}

func TestBreadcrumbListJSON(t *testing.T) {
	t.Parallel()

	raw := JSON(BreadcrumbList([]BreadcrumbItem{
		{Name: "Home", Item: "https://a.com/"},
		{Name: "Blog", Item: "https://a.com/blog"},
	}))
	var decoded struct {
		Items []struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
		} `json:"itemListElement"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, 2, decoded.Items[1].Position)
	assert.Equal(t, "Blog", decoded.Items[1].Name)

	assert.Empty(t, JSON(func() {}))
}

func TestArticleSchema(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Article(Config{Title: "Not an article"}))
	assert.Nil(t, Article(Config{OpenGraph: &OpenGraph{Type: "website"}}))

	s := Article(Config{
		Title:         "Post",
		TitleTemplate: "%s | Blog",
		Description:   "About things",
		Canonical:     "https://a.com/post",
		OpenGraph: &OpenGraph{
			Type:   "ARTICLE",
			Images: []Media{{Alt: "skipped"}, {URL: "https://a.com/cover.png"}},
			Article: OpenGraphArticle{
				PublishedTime: "2024-05-01",
				Authors:       []string{"Ada"},
				Tags:          []string{"go"},
			},
		},
	})
	require.NotNil(t, s)
	assert.Equal(t, "Article", s["@type"])
	assert.Equal(t, "Post | Blog", s["headline"])
	assert.Equal(t, "About things", s["description"])
	assert.Equal(t, "https://a.com/post", s["url"])
	assert.Equal(t, "https://a.com/cover.png", s["image"])
	assert.Equal(t, "2024-05-01", s["datePublished"])
	assert.Equal(t, []map[string]any{{"@type": "Person", "name": "Ada"}}, s["author"])
	assert.Equal(t, []string{"go"}, s["keywords"])
	assert.NotContains(t, s, "dateModified")
}
