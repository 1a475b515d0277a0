package seo

// Merge layers override on top of base. Every field set on override wins,
// nested records merge field by field, and slices from override replace the
// base slice. The result shares no pointers or slices with either input.
func Merge(base, override Config) Config {
	return Config{
		Title:               pick(base.Title, override.Title),
		DefaultTitle:        pick(base.DefaultTitle, override.DefaultTitle),
		TitleTemplate:       pick(base.TitleTemplate, override.TitleTemplate),
		BypassTitleTemplate: mergeBypass(base.BypassTitleTemplate, override.BypassTitleTemplate),
		Description:         pick(base.Description, override.Description),
		Canonical:           pick(base.Canonical, override.Canonical),
		Robots:              mergeRobots(base.Robots, override.Robots),
		OpenGraph:           mergeOpenGraph(base.OpenGraph, override.OpenGraph),
		Twitter:             mergeTwitter(base.Twitter, override.Twitter),
		Facebook:            mergeFacebook(base.Facebook, override.Facebook),
		MobileAlternate:     mergeMobileAlternate(base.MobileAlternate, override.MobileAlternate),
		LanguageAlternates:  list(base.LanguageAlternates, override.LanguageAlternates),
		Google:              mergeGoogle(base.Google, override.Google),
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config { return Merge(Config{}, c) }

func pick[T comparable](base, override T) T {
	var zero T
	if override != zero {
		return override
	}
	return base
}

func flag(base, override *bool) *bool {
	switch {
	case override != nil:
		return Bool(*override)
	case base != nil:
		return Bool(*base)
	}
	return nil
}

func list[T any](base, override []T) []T {
	src := base
	if override != nil {
		src = override
	}
	if src == nil {
		return nil
	}
	return append(make([]T, 0, len(src)), src...)
}

// both dereferences a pair of optional records, reporting whether either was set.
func both[T any](base, override *T) (b, o T, ok bool) {
	if base != nil {
		b = *base
	}
	if override != nil {
		o = *override
	}
	return b, o, base != nil || override != nil
}

func mergeBypass(base, override TemplateBypass) TemplateBypass {
	return TemplateBypass{
		Title:     flag(base.Title, override.Title),
		OpenGraph: flag(base.OpenGraph, override.OpenGraph),
		Twitter:   flag(base.Twitter, override.Twitter),
	}
}

func mergeRobots(base, override Robots) Robots {
	return Robots{
		NoIndex:           flag(base.NoIndex, override.NoIndex),
		NoFollow:          flag(base.NoFollow, override.NoFollow),
		NoArchive:         flag(base.NoArchive, override.NoArchive),
		NoImageIndex:      flag(base.NoImageIndex, override.NoImageIndex),
		NoSnippet:         flag(base.NoSnippet, override.NoSnippet),
		NoTranslate:       flag(base.NoTranslate, override.NoTranslate),
		OmitGoogleBotMeta: flag(base.OmitGoogleBotMeta, override.OmitGoogleBotMeta),
		MaxSnippet:        pick(base.MaxSnippet, override.MaxSnippet),
		MaxImagePreview:   pick(base.MaxImagePreview, override.MaxImagePreview),
		MaxVideoPreview:   pick(base.MaxVideoPreview, override.MaxVideoPreview),
		UnavailableAfter:  pick(base.UnavailableAfter, override.UnavailableAfter),
	}
}

func mergeOpenGraph(base, override *OpenGraph) *OpenGraph {
	b, o, ok := both(base, override)
	if !ok {
		return nil
	}
	return &OpenGraph{
		Title:       pick(b.Title, o.Title),
		Description: pick(b.Description, o.Description),
		URL:         pick(b.URL, o.URL),
		SiteName:    pick(b.SiteName, o.SiteName),
		Locale:      pick(b.Locale, o.Locale),
		Type:        pick(b.Type, o.Type),
		Profile:     mergeProfile(b.Profile, o.Profile),
		Book: OpenGraphBook{
			Authors:     list(b.Book.Authors, o.Book.Authors),
			ISBN:        pick(b.Book.ISBN, o.Book.ISBN),
			ReleaseDate: pick(b.Book.ReleaseDate, o.Book.ReleaseDate),
			Tags:        list(b.Book.Tags, o.Book.Tags),
		},
		Article: OpenGraphArticle{
			PublishedTime:  pick(b.Article.PublishedTime, o.Article.PublishedTime),
			ModifiedTime:   pick(b.Article.ModifiedTime, o.Article.ModifiedTime),
			ExpirationTime: pick(b.Article.ExpirationTime, o.Article.ExpirationTime),
			Authors:        list(b.Article.Authors, o.Article.Authors),
			Section:        pick(b.Article.Section, o.Article.Section),
			Tags:           list(b.Article.Tags, o.Article.Tags),
		},
		Video: OpenGraphVideo{
			Actors:      list(b.Video.Actors, o.Video.Actors),
			Directors:   list(b.Video.Directors, o.Video.Directors),
			Writers:     list(b.Video.Writers, o.Video.Writers),
			Duration:    pick(b.Video.Duration, o.Video.Duration),
			ReleaseDate: pick(b.Video.ReleaseDate, o.Video.ReleaseDate),
			Tags:        list(b.Video.Tags, o.Video.Tags),
			Series:      pick(b.Video.Series, o.Video.Series),
		},
		Music: OpenGraphMusic{
			Duration:    pick(b.Music.Duration, o.Music.Duration),
			Albums:      list(b.Music.Albums, o.Music.Albums),
			Songs:       list(b.Music.Songs, o.Music.Songs),
			Musicians:   list(b.Music.Musicians, o.Music.Musicians),
			Creators:    list(b.Music.Creators, o.Music.Creators),
			ReleaseDate: pick(b.Music.ReleaseDate, o.Music.ReleaseDate),
		},
		Images: list(b.Images, o.Images),
		Videos: list(b.Videos, o.Videos),
	}
}

func mergeProfile(base, override OpenGraphProfile) OpenGraphProfile {
	return OpenGraphProfile{
		FirstName: pick(base.FirstName, override.FirstName),
		LastName:  pick(base.LastName, override.LastName),
		Username:  pick(base.Username, override.Username),
		Gender:    pick(base.Gender, override.Gender),
	}
}

func mergeTwitter(base, override *Twitter) *Twitter {
	b, o, ok := both(base, override)
	if !ok {
		return nil
	}
	return &Twitter{
		Card:        pick(b.Card, o.Card),
		Title:       pick(b.Title, o.Title),
		Description: pick(b.Description, o.Description),
		Site:        mergeAccount(b.Site, o.Site),
		Creator:     mergeAccount(b.Creator, o.Creator),
		Image: TwitterImage{
			URL: pick(b.Image.URL, o.Image.URL),
			Alt: pick(b.Image.Alt, o.Image.Alt),
		},
		Player: TwitterPlayer{
			URL:    pick(b.Player.URL, o.Player.URL),
			Stream: pick(b.Player.Stream, o.Player.Stream),
			Height: pick(b.Player.Height, o.Player.Height),
			Width:  pick(b.Player.Width, o.Player.Width),
		},
		App: TwitterApp{
			Name: mergeAppValue(b.App.Name, o.App.Name),
			ID:   mergeAppValue(b.App.ID, o.App.ID),
			URL:  mergeAppValue(b.App.URL, o.App.URL),
		},
	}
}

// An account is a single value; the override replaces it whole rather than
// mixing a username from one layer with an id from another.
func mergeAccount(base, override Account) Account {
	if override.Value() != "" {
		return override
	}
	return base
}

func mergeAppValue(base, override AppValue) AppValue {
	if override.All != "" {
		return AppValue{All: override.All}
	}
	if base.All != "" && override.IsZero() {
		return base
	}
	if base.All != "" {
		// A per-device override of a bare value keeps the bare value for the
		// devices it leaves out.
		base = AppValue{IPhone: base.All, IPad: base.All, GooglePlay: base.All}
	}
	return AppValue{
		IPhone:     pick(base.IPhone, override.IPhone),
		IPad:       pick(base.IPad, override.IPad),
		GooglePlay: pick(base.GooglePlay, override.GooglePlay),
	}
}

func mergeFacebook(base, override *Facebook) *Facebook {
	b, o, ok := both(base, override)
	if !ok {
		return nil
	}
	return &Facebook{AppID: pick(b.AppID, o.AppID)}
}

func mergeMobileAlternate(base, override *MobileAlternate) *MobileAlternate {
	b, o, ok := both(base, override)
	if !ok {
		return nil
	}
	return &MobileAlternate{
		Media: pick(b.Media, o.Media),
		Href:  pick(b.Href, o.Href),
	}
}

func mergeGoogle(base, override *Google) *Google {
	b, o, ok := both(base, override)
	if !ok {
		return nil
	}
	g := &Google{
		SiteVerification:     pick(b.SiteVerification, o.SiteVerification),
		NoPageReadAloud:      flag(b.NoPageReadAloud, o.NoPageReadAloud),
		NoSiteLinksSearchBox: flag(b.NoSiteLinksSearchBox, o.NoSiteLinksSearchBox),
	}
	if r, ro, ok := both(b.Robots, o.Robots); ok {
		merged := mergeRobots(r, ro)
		g.Robots = &merged
	}
	return g
}
