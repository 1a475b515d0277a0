package seo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config describes the SEO intent of a page. Every field is optional; the
// zero value resolves to robots directives only.
type Config struct {
	Title               string              `yaml:"title,omitempty" json:"title,omitempty"`
	DefaultTitle        string              `yaml:"defaultTitle,omitempty" json:"defaultTitle,omitempty"`
	TitleTemplate       string              `yaml:"titleTemplate,omitempty" json:"titleTemplate,omitempty"`
	BypassTitleTemplate TemplateBypass      `yaml:"bypassTitleTemplate,omitempty" json:"bypassTitleTemplate,omitempty"`
	Description         string              `yaml:"description,omitempty" json:"description,omitempty"`
	Canonical           string              `yaml:"canonical,omitempty" json:"canonical,omitempty"`
	Robots              Robots              `yaml:"robots,omitempty" json:"robots,omitempty"`
	OpenGraph           *OpenGraph          `yaml:"openGraph,omitempty" json:"openGraph,omitempty"`
	Twitter             *Twitter            `yaml:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook            *Facebook           `yaml:"facebook,omitempty" json:"facebook,omitempty"`
	MobileAlternate     *MobileAlternate    `yaml:"mobileAlternate,omitempty" json:"mobileAlternate,omitempty"`
	LanguageAlternates  []LanguageAlternate `yaml:"languageAlternates,omitempty" json:"languageAlternates,omitempty"`
	Google              *Google             `yaml:"google,omitempty" json:"google,omitempty"`
}

// TemplateBypass selects which title channels skip the title template. It
// decodes from a single bool (all channels) or a per-channel map.
type TemplateBypass struct {
	Title     *bool `yaml:"title,omitempty" json:"title,omitempty"`
	OpenGraph *bool `yaml:"openGraph,omitempty" json:"openGraph,omitempty"`
	Twitter   *bool `yaml:"twitter,omitempty" json:"twitter,omitempty"`
}

// BypassAll returns a TemplateBypass that applies to every channel.
func BypassAll(v bool) TemplateBypass {
	return TemplateBypass{Title: Bool(v), OpenGraph: Bool(v), Twitter: Bool(v)}
}

type templateBypassFields TemplateBypass

func (t *TemplateBypass) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v bool
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("bypassTitleTemplate: %w", err)
		}
		*t = BypassAll(v)
		return nil
	}
	var fields templateBypassFields
	if err := value.Decode(&fields); err != nil {
		return fmt.Errorf("bypassTitleTemplate: %w", err)
	}
	*t = TemplateBypass(fields)
	return nil
}

func (t *TemplateBypass) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] != '{' {
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("bypassTitleTemplate: %w", err)
		}
		*t = BypassAll(v)
		return nil
	}
	var fields templateBypassFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("bypassTitleTemplate: %w", err)
	}
	*t = TemplateBypass(fields)
	return nil
}

// Robots holds crawler directives. Flags are pointers so a page can turn off
// a flag its defaults turned on.
//
// See https://developers.google.com/search/docs/crawling-indexing/robots-meta-tag
type Robots struct {
	NoIndex           *bool  `yaml:"noIndex,omitempty" json:"noIndex,omitempty"`
	NoFollow          *bool  `yaml:"noFollow,omitempty" json:"noFollow,omitempty"`
	NoArchive         *bool  `yaml:"noArchive,omitempty" json:"noArchive,omitempty"`
	NoImageIndex      *bool  `yaml:"noImageIndex,omitempty" json:"noImageIndex,omitempty"`
	NoSnippet         *bool  `yaml:"noSnippet,omitempty" json:"noSnippet,omitempty"`
	NoTranslate       *bool  `yaml:"noTranslate,omitempty" json:"noTranslate,omitempty"`
	OmitGoogleBotMeta *bool  `yaml:"omitGoogleBotMeta,omitempty" json:"omitGoogleBotMeta,omitempty"`
	MaxSnippet        int    `yaml:"maxSnippet,omitempty" json:"maxSnippet,omitempty"`
	MaxImagePreview   string `yaml:"maxImagePreview,omitempty" json:"maxImagePreview,omitempty"` // none, standard or large
	MaxVideoPreview   int    `yaml:"maxVideoPreview,omitempty" json:"maxVideoPreview,omitempty"`
	UnavailableAfter  string `yaml:"unavailableAfter,omitempty" json:"unavailableAfter,omitempty"`
}

// OpenGraph is the og:* vocabulary plus the per-type records.
type OpenGraph struct {
	Title       string           `yaml:"title,omitempty" json:"title,omitempty"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	URL         string           `yaml:"url,omitempty" json:"url,omitempty"`
	SiteName    string           `yaml:"siteName,omitempty" json:"siteName,omitempty"`
	Locale      string           `yaml:"locale,omitempty" json:"locale,omitempty"`
	Type        string           `yaml:"type,omitempty" json:"type,omitempty"`
	Profile     OpenGraphProfile `yaml:"profile,omitempty" json:"profile,omitempty"`
	Book        OpenGraphBook    `yaml:"book,omitempty" json:"book,omitempty"`
	Article     OpenGraphArticle `yaml:"article,omitempty" json:"article,omitempty"`
	Video       OpenGraphVideo   `yaml:"video,omitempty" json:"video,omitempty"`
	Music       OpenGraphMusic   `yaml:"music,omitempty" json:"music,omitempty"`
	Images      []Media          `yaml:"images,omitempty" json:"images,omitempty"`
	Videos      []Media          `yaml:"videos,omitempty" json:"videos,omitempty"`
}

type OpenGraphProfile struct {
	FirstName string `yaml:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string `yaml:"lastName,omitempty" json:"lastName,omitempty"`
	Username  string `yaml:"username,omitempty" json:"username,omitempty"`
	Gender    string `yaml:"gender,omitempty" json:"gender,omitempty"`
}

type OpenGraphBook struct {
	Authors     []string `yaml:"authors,omitempty" json:"authors,omitempty"`
	ISBN        string   `yaml:"isbn,omitempty" json:"isbn,omitempty"`
	ReleaseDate string   `yaml:"releaseDate,omitempty" json:"releaseDate,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

type OpenGraphArticle struct {
	PublishedTime  string   `yaml:"publishedTime,omitempty" json:"publishedTime,omitempty"`
	ModifiedTime   string   `yaml:"modifiedTime,omitempty" json:"modifiedTime,omitempty"`
	ExpirationTime string   `yaml:"expirationTime,omitempty" json:"expirationTime,omitempty"`
	Authors        []string `yaml:"authors,omitempty" json:"authors,omitempty"`
	Section        string   `yaml:"section,omitempty" json:"section,omitempty"`
	Tags           []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

type OpenGraphVideo struct {
	Actors      []VideoActor `yaml:"actors,omitempty" json:"actors,omitempty"`
	Directors   []string     `yaml:"directors,omitempty" json:"directors,omitempty"`
	Writers     []string     `yaml:"writers,omitempty" json:"writers,omitempty"`
	Duration    int          `yaml:"duration,omitempty" json:"duration,omitempty"`
	ReleaseDate string       `yaml:"releaseDate,omitempty" json:"releaseDate,omitempty"`
	Tags        []string     `yaml:"tags,omitempty" json:"tags,omitempty"`
	Series      string       `yaml:"series,omitempty" json:"series,omitempty"`
}

type VideoActor struct {
	Profile string `yaml:"profile" json:"profile"`
	Role    string `yaml:"role,omitempty" json:"role,omitempty"`
}

// OpenGraphMusic covers music.song, music.album, music.playlist and
// music.radio_station; each type reads the fields it understands.
type OpenGraphMusic struct {
	Duration    int              `yaml:"duration,omitempty" json:"duration,omitempty"`
	Albums      []MusicReference `yaml:"albums,omitempty" json:"albums,omitempty"`
	Songs       []MusicReference `yaml:"songs,omitempty" json:"songs,omitempty"`
	Musicians   []string         `yaml:"musicians,omitempty" json:"musicians,omitempty"`
	Creators    []string         `yaml:"creators,omitempty" json:"creators,omitempty"`
	ReleaseDate string           `yaml:"releaseDate,omitempty" json:"releaseDate,omitempty"`
}

// MusicReference points at an album or song with its disc/track position.
type MusicReference struct {
	URL   string `yaml:"url" json:"url"`
	Disc  int    `yaml:"disc,omitempty" json:"disc,omitempty"`
	Track int    `yaml:"track,omitempty" json:"track,omitempty"`
}

// Media is an og:image or og:video entry. URL is required.
type Media struct {
	URL       string `yaml:"url" json:"url"`
	Alt       string `yaml:"alt,omitempty" json:"alt,omitempty"`
	Width     int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height    int    `yaml:"height,omitempty" json:"height,omitempty"`
	Type      string `yaml:"type,omitempty" json:"type,omitempty"`
	SecureURL string `yaml:"secureUrl,omitempty" json:"secureUrl,omitempty"`
}

// Twitter is the twitter:* card vocabulary.
//
// See https://developer.x.com/en/docs/x-for-websites/cards/overview/markup
type Twitter struct {
	Card        string        `yaml:"card,omitempty" json:"card,omitempty"`
	Title       string        `yaml:"title,omitempty" json:"title,omitempty"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Site        Account       `yaml:"site,omitempty" json:"site,omitempty"`
	Creator     Account       `yaml:"creator,omitempty" json:"creator,omitempty"`
	Image       TwitterImage  `yaml:"image,omitempty" json:"image,omitempty"`
	Player      TwitterPlayer `yaml:"player,omitempty" json:"player,omitempty"`
	App         TwitterApp    `yaml:"app,omitempty" json:"app,omitempty"`
}

type TwitterImage struct {
	URL string `yaml:"url" json:"url"`
	Alt string `yaml:"alt,omitempty" json:"alt,omitempty"`
}

type TwitterPlayer struct {
	URL    string `yaml:"url,omitempty" json:"url,omitempty"`
	Stream string `yaml:"stream,omitempty" json:"stream,omitempty"`
	Height int    `yaml:"height,omitempty" json:"height,omitempty"`
	Width  int    `yaml:"width,omitempty" json:"width,omitempty"`
}

type TwitterApp struct {
	Name AppValue `yaml:"name,omitempty" json:"name,omitempty"`
	ID   AppValue `yaml:"id,omitempty" json:"id,omitempty"`
	URL  AppValue `yaml:"url,omitempty" json:"url,omitempty"`
}

// Account is either a bare @username or an {id} record. When both are set
// the ID wins.
type Account struct {
	Username string `yaml:"-" json:"-"`
	ID       string `yaml:"id,omitempty" json:"id,omitempty"`
}

// Value returns the string emitted into the tag.
func (a Account) Value() string {
	if a.ID != "" {
		return a.ID
	}
	return a.Username
}

func (a *Account) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*a = Account{Username: value.Value}
		return nil
	}
	var rec struct {
		ID string `yaml:"id"`
	}
	if err := value.Decode(&rec); err != nil {
		return fmt.Errorf("twitter account: %w", err)
	}
	*a = Account{ID: rec.ID}
	return nil
}

func (a *Account) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("twitter account: %w", err)
		}
		*a = Account{Username: s}
		return nil
	}
	var rec struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("twitter account: %w", err)
	}
	*a = Account{ID: rec.ID}
	return nil
}

func (a Account) MarshalJSON() ([]byte, error) {
	if a.ID != "" {
		return json.Marshal(struct {
			ID string `json:"id"`
		}{a.ID})
	}
	return json.Marshal(a.Username)
}

// AppValue is a twitter:app field: one value for every device, or a value
// per device.
type AppValue struct {
	All        string `yaml:"-" json:"-"`
	IPhone     string `yaml:"iPhone,omitempty" json:"iPhone,omitempty"`
	IPad       string `yaml:"iPad,omitempty" json:"iPad,omitempty"`
	GooglePlay string `yaml:"googlePlay,omitempty" json:"googlePlay,omitempty"`
}

// Device identifies a twitter:app platform.
type Device string

const (
	DeviceIPhone     Device = "iphone"
	DeviceIPad       Device = "ipad"
	DeviceGooglePlay Device = "googleplay"
)

// Devices lists the twitter:app platforms in emission order.
var Devices = []Device{DeviceIPhone, DeviceIPad, DeviceGooglePlay}

// For returns the value for the device; a bare value applies to all devices.
func (v AppValue) For(d Device) string {
	if v.All != "" {
		return v.All
	}
	switch d {
	case DeviceIPhone:
		return v.IPhone
	case DeviceIPad:
		return v.IPad
	case DeviceGooglePlay:
		return v.GooglePlay
	}
	return ""
}

// IsZero reports whether no device carries a value.
func (v AppValue) IsZero() bool {
	return v.All == "" && v.IPhone == "" && v.IPad == "" && v.GooglePlay == ""
}

type appValueFields struct {
	IPhone     string `yaml:"iPhone" json:"iPhone,omitempty"`
	IPad       string `yaml:"iPad" json:"iPad,omitempty"`
	GooglePlay string `yaml:"googlePlay" json:"googlePlay,omitempty"`
}

func (v *AppValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*v = AppValue{All: value.Value}
		return nil
	}
	var f appValueFields
	if err := value.Decode(&f); err != nil {
		return fmt.Errorf("twitter app: %w", err)
	}
	*v = AppValue{IPhone: f.IPhone, IPad: f.IPad, GooglePlay: f.GooglePlay}
	return nil
}

func (v *AppValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("twitter app: %w", err)
		}
		*v = AppValue{All: s}
		return nil
	}
	var f appValueFields
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("twitter app: %w", err)
	}
	*v = AppValue{IPhone: f.IPhone, IPad: f.IPad, GooglePlay: f.GooglePlay}
	return nil
}

func (v AppValue) MarshalJSON() ([]byte, error) {
	if v.All != "" {
		return json.Marshal(v.All)
	}
	return json.Marshal(appValueFields{IPhone: v.IPhone, IPad: v.IPad, GooglePlay: v.GooglePlay})
}

type Facebook struct {
	AppID string `yaml:"appId,omitempty" json:"appId,omitempty"`
}

type MobileAlternate struct {
	Media string `yaml:"media" json:"media"`
	Href  string `yaml:"href" json:"href"`
}

type LanguageAlternate struct {
	HrefLang string `yaml:"hrefLang" json:"hrefLang"`
	Href     string `yaml:"href" json:"href"`
}

// Google holds Google-specific tags. Robots, when set, replaces the
// googlebot directives derived from Config.Robots.
type Google struct {
	SiteVerification     string  `yaml:"siteVerification,omitempty" json:"siteVerification,omitempty"`
	NoPageReadAloud      *bool   `yaml:"noPageReadAloud,omitempty" json:"noPageReadAloud,omitempty"`
	NoSiteLinksSearchBox *bool   `yaml:"noSiteLinksSearchBox,omitempty" json:"noSiteLinksSearchBox,omitempty"`
	Robots               *Robots `yaml:"robots,omitempty" json:"robots,omitempty"`
}

// Bool returns a pointer to v, for the optional flags above.
func Bool(v bool) *bool { return &v }

func isTrue(v *bool) bool { return v != nil && *v }
