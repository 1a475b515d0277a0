package seo

import (
	"strconv"
	"strings"
)

// ogTypeHandlers emit the type-specific tags for a lower-cased og:type.
// Types missing from the table only get og:type itself.
var ogTypeHandlers = map[string]func(*builder, *OpenGraph){
	"profile":             (*builder).ogProfile,
	"book":                (*builder).ogBook,
	"article":             (*builder).ogArticle,
	"video.movie":         (*builder).ogVideo,
	"video.episode":       (*builder).ogVideo,
	"video.tv_show":       (*builder).ogVideo,
	"video.other":         (*builder).ogVideo,
	"music.song":          (*builder).ogMusicSong,
	"music.album":         (*builder).ogMusicAlbum,
	"music.playlist":      (*builder).ogMusicPlaylist,
	"music.radio_station": (*builder).ogMusicRadioStation,
	"website":             func(*builder, *OpenGraph) {},
}

func (b *builder) openGraph() {
	cfg := b.cfg
	og := cfg.OpenGraph
	if og == nil {
		return
	}

	b.property("og:site_name", og.SiteName)
	b.property("og:title", b.titles.openGraph)
	b.property("og:description", firstNonEmpty(og.Description, cfg.Description))
	// canonical was already checked when its link tag was emitted
	if og.URL != "" {
		b.checkURL(og.URL, "og:url", "openGraph.url")
	}
	b.property("og:url", firstNonEmpty(og.URL, cfg.Canonical))

	if og.Type != "" {
		ogType := strings.ToLower(strings.TrimSpace(og.Type))
		b.property("og:type", ogType)
		if handle, ok := ogTypeHandlers[ogType]; ok {
			handle(b, og)
		}
	}

	for i, img := range og.Images {
		if img.URL == "" {
			b.warn("openGraph.images[%d] has no url; the image was skipped", i)
			continue
		}
		b.checkURL(img.URL, "og:image", "each url in openGraph.images")
		b.property("og:image", img.URL)
		if img.Alt != "" {
			b.property("og:image:alt", img.Alt)
		} else {
			b.warn("Open Graph images should have alt text describing the image for visually impaired users; add alt to openGraph.images[%d]", i)
		}
		b.media("og:image", img, "openGraph.images")
	}

	for i, vid := range og.Videos {
		if vid.URL == "" {
			b.warn("openGraph.videos[%d] has no url; the video was skipped", i)
			continue
		}
		b.checkURL(vid.URL, "og:video", "each url in openGraph.videos")
		b.property("og:video", vid.URL)
		b.property("og:video:alt", vid.Alt)
		b.media("og:video", vid, "openGraph.videos")
	}

	b.property("og:locale", og.Locale)
}

// media emits the shared secure_url/type/width/height tags of an image or video.
func (b *builder) media(prefix string, m Media, field string) {
	if m.SecureURL != "" {
		b.checkURL(m.SecureURL, prefix+":secure_url", "each secureUrl in "+field)
		b.property(prefix+":secure_url", m.SecureURL)
	}
	b.property(prefix+":type", m.Type)
	b.property(prefix+":width", itoa(m.Width))
	b.property(prefix+":height", itoa(m.Height))
}

func (b *builder) ogProfile(og *OpenGraph) {
	p := og.Profile
	b.property("profile:first_name", p.FirstName)
	b.property("profile:last_name", p.LastName)
	b.property("profile:username", p.Username)
	b.property("profile:gender", p.Gender)
}

func (b *builder) ogBook(og *OpenGraph) {
	book := og.Book
	b.each("book:author", book.Authors)
	b.property("book:isbn", book.ISBN)
	b.property("book:release_date", book.ReleaseDate)
	b.each("book:tag", book.Tags)
}

func (b *builder) ogArticle(og *OpenGraph) {
	a := og.Article
	b.property("article:published_time", a.PublishedTime)
	b.property("article:modified_time", a.ModifiedTime)
	b.property("article:expiration_time", a.ExpirationTime)
	b.each("article:author", a.Authors)
	b.property("article:section", a.Section)
	b.each("article:tag", a.Tags)
}

func (b *builder) ogVideo(og *OpenGraph) {
	v := og.Video
	for _, actor := range v.Actors {
		b.property("video:actor", actor.Profile)
		b.property("video:actor:role", actor.Role)
	}
	b.each("video:director", v.Directors)
	b.each("video:writer", v.Writers)
	b.property("video:duration", itoa(v.Duration))
	b.property("video:release_date", v.ReleaseDate)
	b.each("video:tag", v.Tags)
	b.property("video:series", v.Series)
}

func (b *builder) ogMusicSong(og *OpenGraph) {
	m := og.Music
	b.property("music:duration", itoa(m.Duration))
	b.references("music:album", m.Albums)
	b.each("music:musician", m.Musicians)
}

func (b *builder) ogMusicAlbum(og *OpenGraph) {
	m := og.Music
	b.references("music:song", m.Songs)
	b.each("music:musician", m.Musicians)
	b.property("music:release_date", m.ReleaseDate)
}

func (b *builder) ogMusicPlaylist(og *OpenGraph) {
	m := og.Music
	b.references("music:song", m.Songs)
	b.each("music:creator", m.Creators)
}

func (b *builder) ogMusicRadioStation(og *OpenGraph) {
	b.each("music:creator", og.Music.Creators)
}

// each repeats property once per value; multi-valued Open Graph fields are
// separate tags, not a joined string.
func (b *builder) each(property string, values []string) {
	for _, v := range values {
		b.property(property, v)
	}
}

func (b *builder) references(property string, refs []MusicReference) {
	for _, ref := range refs {
		if ref.URL == "" {
			continue
		}
		b.property(property, ref.URL)
		b.property(property+":disc", itoa(ref.Disc))
		b.property(property+":track", itoa(ref.Track))
	}
}

// itoa formats n, mapping 0 to "" so unset numbers emit nothing.
func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
