package seo

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the tag descriptors produced by the resolver.
type Kind uint8

const (
	TitleTag Kind = iota + 1
	MetaTag
	LinkTag
	CharSetTag
)

func (k Kind) String() string {
	switch k {
	case TitleTag:
		return "title"
	case MetaTag:
		return "meta"
	case LinkTag:
		return "link"
	case CharSetTag:
		return "charset"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Tag is one <head> element. Which fields are meaningful depends on Kind:
// TitleTag uses Title; MetaTag uses Name or Property with Content;
// CharSetTag uses CharSet; LinkTag uses Rel, Href and optionally HrefLang
// and Media.
type Tag struct {
	Kind     Kind
	Title    string
	Name     string
	Property string
	Content  string
	CharSet  string
	Rel      string
	Href     string
	HrefLang string
	Media    string
}

// Title returns a <title> descriptor.
func Title(v string) Tag { return Tag{Kind: TitleTag, Title: v} }

// Name returns a <meta name content> descriptor.
func Name(name, content string) Tag { return Tag{Kind: MetaTag, Name: name, Content: content} }

// Property returns a <meta property content> descriptor.
func Property(property, content string) Tag {
	return Tag{Kind: MetaTag, Property: property, Content: content}
}

// Link returns a <link rel href> descriptor.
func Link(rel, href string) Tag { return Tag{Kind: LinkTag, Rel: rel, Href: href} }

// CharSet returns a <meta charset> descriptor.
func CharSet(v string) Tag { return Tag{Kind: CharSetTag, CharSet: v} }

// Key returns the name or property of a meta tag.
func (t Tag) Key() string {
	if t.Property != "" {
		return t.Property
	}
	return t.Name
}

// MarshalJSON encodes the descriptor in the head-descriptor wire shape:
// {title}, {name,content}, {property,content}, {charSet} or
// {tagName:"link",rel,href,...}.
func (t Tag) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case TitleTag:
		return json.Marshal(struct {
			Title string `json:"title"`
		}{t.Title})
	case MetaTag:
		if t.Property != "" {
			return json.Marshal(struct {
				Property string `json:"property"`
				Content  string `json:"content"`
			}{t.Property, t.Content})
		}
		return json.Marshal(struct {
			Name    string `json:"name"`
			Content string `json:"content"`
		}{t.Name, t.Content})
	case CharSetTag:
		return json.Marshal(struct {
			CharSet string `json:"charSet"`
		}{t.CharSet})
	case LinkTag:
		return json.Marshal(struct {
			TagName  string `json:"tagName"`
			Rel      string `json:"rel"`
			Href     string `json:"href"`
			HrefLang string `json:"hrefLang,omitempty"`
			Media    string `json:"media,omitempty"`
		}{"link", t.Rel, t.Href, t.HrefLang, t.Media})
	}
	return nil, fmt.Errorf("seo: cannot encode tag of %s", t.Kind)
}

// Find returns the first meta tag whose name or property is key.
func Find(tags []Tag, key string) (Tag, bool) {
	for _, t := range tags {
		if t.Kind == MetaTag && t.Key() == key {
			return t, true
		}
	}
	return Tag{}, false
}

// FindAll returns the contents of every meta tag whose name or property is key.
func FindAll(tags []Tag, key string) []string {
	var out []string
	for _, t := range tags {
		if t.Kind == MetaTag && t.Key() == key {
			out = append(out, t.Content)
		}
	}
	return out
}

func filter(tags []Tag, keep func(Tag) bool) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
