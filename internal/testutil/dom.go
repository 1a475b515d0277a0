// Package testutil holds HTML assertion helpers shared by package tests.
package testutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses body into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// MetaContent returns the content of the first meta tag whose name or
// property equals key, and whether one was found.
func MetaContent(doc *goquery.Document, key string) (string, bool) {
	sel := doc.Find(`meta[property="` + key + `"], meta[name="` + key + `"]`).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Attr("content")
}
