package seo

import (
	"strconv"
	"strings"
)

// Content builds the robots directive string. The order of the optional
// directives is fixed.
func (r Robots) Content() string {
	var sb strings.Builder
	if isTrue(r.NoIndex) {
		sb.WriteString("noindex")
	} else {
		sb.WriteString("index")
	}
	if isTrue(r.NoFollow) {
		sb.WriteString(",nofollow")
	} else {
		sb.WriteString(",follow")
	}
	add := func(ok bool, directive string) {
		if ok {
			sb.WriteByte(',')
			sb.WriteString(directive)
		}
	}
	add(isTrue(r.NoArchive), "noarchive")
	add(isTrue(r.NoImageIndex), "noimageindex")
	add(isTrue(r.NoSnippet), "nosnippet")
	add(isTrue(r.NoTranslate), "notranslate")
	add(r.MaxImagePreview != "", "max-image-preview:"+r.MaxImagePreview)
	add(r.MaxSnippet != 0, "max-snippet:"+strconv.Itoa(r.MaxSnippet))
	add(r.MaxVideoPreview != 0, "max-video-preview:"+strconv.Itoa(r.MaxVideoPreview))
	add(r.UnavailableAfter != "", "unavailable_after:"+r.UnavailableAfter)
	return sb.String()
}

var imagePreviewSizes = map[string]bool{"none": true, "standard": true, "large": true}

func (b *builder) robots() {
	content := b.validRobots(b.cfg.Robots, "robots").Content()
	b.name("robots", content)
	if isTrue(b.cfg.Robots.OmitGoogleBotMeta) {
		return
	}
	if g := b.cfg.Google; g != nil && g.Robots != nil {
		content = b.validRobots(*g.Robots, "google.robots").Content()
	}
	b.name("googlebot", content)
}

// validRobots drops directive values crawlers would reject.
func (b *builder) validRobots(r Robots, field string) Robots {
	if r.MaxImagePreview != "" && !imagePreviewSizes[r.MaxImagePreview] {
		b.warn("%s.maxImagePreview %q is not one of none, standard, large and will be ignored", field, r.MaxImagePreview)
		r.MaxImagePreview = ""
	}
	return r
}

func (b *builder) google() {
	g := b.cfg.Google
	if g == nil {
		return
	}
	if isTrue(g.NoPageReadAloud) {
		b.name("google", "nopagereadaloud")
	}
	if isTrue(g.NoSiteLinksSearchBox) {
		b.name("google", "nositelinkssearchbox")
	}
	b.name("google-site-verification", g.SiteVerification)
}
