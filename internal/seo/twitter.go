package seo

import "strings"

// Twitter card types.
const (
	CardSummary           = "summary"
	CardSummaryLargeImage = "summary_large_image"
	CardApp               = "app"
	CardPlayer            = "player"
)

var validCards = map[string]bool{
	CardSummary:           true,
	CardSummaryLargeImage: true,
	CardApp:               true,
	CardPlayer:            true,
}

// imageCards may carry twitter:image metadata.
var imageCards = map[string]bool{
	CardSummary:           true,
	CardSummaryLargeImage: true,
	CardPlayer:            true,
}

func (b *builder) twitter() {
	cfg := b.cfg
	tw := cfg.Twitter
	if tw == nil {
		return
	}
	var ogDescription string
	if cfg.OpenGraph != nil {
		ogDescription = cfg.OpenGraph.Description
	}

	b.name("twitter:title", b.titles.twitter)
	b.name("twitter:description", firstNonEmpty(tw.Description, ogDescription, cfg.Description))
	b.name("twitter:site", tw.Site.Value())
	b.name("twitter:creator", tw.Creator.Value())

	card, hasImage, hasPlayer, hasApp := b.twitterCard(tw)
	b.name("twitter:card", card)

	if hasImage {
		b.checkURL(tw.Image.URL, "twitter:image", "twitter.image.url")
		b.name("twitter:image", tw.Image.URL)
		if tw.Image.Alt != "" {
			b.name("twitter:image:alt", tw.Image.Alt)
		} else {
			b.warn("a Twitter image should have alt text describing the image for visually impaired users; add twitter.image.alt")
		}
	}

	if hasPlayer {
		p := tw.Player
		if p.URL != "" {
			b.checkURL(p.URL, "twitter:player", "twitter.player.url")
			b.name("twitter:player", p.URL)
		}
		if p.Stream != "" {
			b.checkURL(p.Stream, "twitter:player:stream", "twitter.player.stream")
			b.name("twitter:player:stream", p.Stream)
		}
		b.name("twitter:player:height", itoa(p.Height))
		b.name("twitter:player:width", itoa(p.Width))
	}

	if hasApp {
		b.appValue("name", tw.App.Name)
		b.appValue("id", tw.App.ID)
		b.appValue("url", tw.App.URL)
	}

	if card == "" {
		b.twitterFallbackImage()
	}
}

// twitterCard settles the card type and which metadata groups survive it.
// An explicit card wins and any group it cannot carry is dropped with a
// warning. Without one, the first group found (image, then player, then app)
// picks the card and the remaining groups are held to it the same way.
func (b *builder) twitterCard(tw *Twitter) (card string, hasImage, hasPlayer, hasApp bool) {
	hasImage = tw.Image.URL != ""
	hasPlayer = tw.Player.URL != "" || tw.Player.Stream != ""
	hasApp = !tw.App.Name.IsZero()

	card = strings.TrimSpace(tw.Card)
	if card != "" && !validCards[card] {
		b.warn("twitter.card %q is not a valid card type and will be ignored; use one of app, player, summary, summary_large_image", tw.Card)
		card = ""
	}
	if card == "" {
		switch {
		case hasImage:
			card = CardSummary
		case hasPlayer:
			card = CardPlayer
		case hasApp:
			card = CardApp
		default:
			return "", false, false, false
		}
	}

	if hasImage && !imageCards[card] {
		b.warn("the %s card type does not support the twitter:image metadata in twitter.image, so it will be ignored", card)
		hasImage = false
	}
	if hasPlayer && card != CardPlayer {
		b.warn("the %s card type does not support the twitter:player metadata in twitter.player, so it will be ignored; player cards need twitter.card set to player", card)
		hasPlayer = false
	}
	if hasApp && card != CardApp {
		b.warn("the %s card type does not support the twitter:app metadata in twitter.app, so it will be ignored; app cards need twitter.card set to app", card)
		hasApp = false
	}
	return card, hasImage, hasPlayer, hasApp
}

func (b *builder) appValue(field string, v AppValue) {
	for _, d := range Devices {
		b.name("twitter:app:"+field+":"+string(d), v.For(d))
	}
}

// twitterFallbackImage uses the first Open Graph image when Twitter config
// produced no card of its own.
func (b *builder) twitterFallbackImage() {
	og := b.cfg.OpenGraph
	if og == nil {
		return
	}
	for _, img := range og.Images {
		if img.URL == "" {
			continue
		}
		b.name("twitter:card", CardSummaryLargeImage)
		b.name("twitter:image", img.URL)
		b.name("twitter:image:alt", img.Alt)
		return
	}
}
