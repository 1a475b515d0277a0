package seo

func (b *builder) links() {
	cfg := b.cfg
	if cfg.Canonical != "" {
		b.checkURL(cfg.Canonical, "canonical link", "canonical")
		b.link(Link("canonical", cfg.Canonical))
	}

	if m := cfg.MobileAlternate; m != nil {
		if m.Media == "" || m.Href == "" {
			b.warn("mobileAlternate needs both media and href to produce a link tag; it currently has no effect")
		} else {
			t := Link("alternate", m.Href)
			t.Media = m.Media
			b.link(t)
		}
	}

	for i, alt := range cfg.LanguageAlternates {
		if alt.HrefLang == "" || alt.Href == "" {
			b.warn("languageAlternates[%d] needs both hrefLang and href; the item was skipped", i)
			continue
		}
		if !validHrefLang(alt.HrefLang) {
			b.warn("languageAlternates[%d] hrefLang %q is not a BCP 47 language tag or x-default", i, alt.HrefLang)
		}
		t := Link("alternate", alt.Href)
		t.HrefLang = alt.HrefLang
		b.link(t)
	}
}
