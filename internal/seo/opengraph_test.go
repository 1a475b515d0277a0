package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ogTags resolves og and returns only the tags it emits before robots.
func ogTags(t *testing.T, og OpenGraph) ([]Tag, *Recorder) {
	t.Helper()
	r, rec := newTestResolver(t, Config{})
	tags := r.Resolve(Config{OpenGraph: &og, Robots: Robots{OmitGoogleBotMeta: Bool(true)}}, RouteArgs{})
	require.NotEmpty(t, tags)
	last := tags[len(tags)-1]
	require.Equal(t, "robots", last.Name)
	// drop the twitter fallback derived from og images
	return filter(tags[:len(tags)-1], func(tag Tag) bool {
		return !strings.HasPrefix(tag.Key(), "twitter:")
	}), rec
}

func TestOpenGraphArticle(t *testing.T) {
	t.Parallel()

	tags, rec := ogTags(t, OpenGraph{
		Type: "Article",
		Article: OpenGraphArticle{
			PublishedTime: "2024-05-01T00:00:00Z",
			ModifiedTime:  "2024-05-02T00:00:00Z",
			Authors:       []string{"https://a.com/alice", "https://a.com/bob"},
			Section:       "Tech",
			Tags:          []string{"go", "seo"},
		},
	})

	require.Zero(t, rec.Len())
	require.Equal(t, []Tag{
		Property("og:type", "article"),
		Property("article:published_time", "2024-05-01T00:00:00Z"),
		Property("article:modified_time", "2024-05-02T00:00:00Z"),
		Property("article:author", "https://a.com/alice"),
		Property("article:author", "https://a.com/bob"),
		Property("article:section", "Tech"),
		Property("article:tag", "go"),
		Property("article:tag", "seo"),
	}, tags)
}

func TestOpenGraphTypeDispatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		og   OpenGraph
		want []Tag
	}{
		{
			"profile",
			OpenGraph{Type: "profile", Profile: OpenGraphProfile{FirstName: "Ada", LastName: "Lovelace", Username: "ada", Gender: "female"}},
			[]Tag{
				Property("og:type", "profile"),
				Property("profile:first_name", "Ada"),
				Property("profile:last_name", "Lovelace"),
				Property("profile:username", "ada"),
				Property("profile:gender", "female"),
			},
		},
		{
			"book",
			OpenGraph{Type: "book", Book: OpenGraphBook{Authors: []string{"https://a.com/ada"}, ISBN: "978-3-16-148410-0", ReleaseDate: "2020-01-01", Tags: []string{"math"}}},
			[]Tag{
				Property("og:type", "book"),
				Property("book:author", "https://a.com/ada"),
				Property("book:isbn", "978-3-16-148410-0"),
				Property("book:release_date", "2020-01-01"),
				Property("book:tag", "math"),
			},
		},
		{
			"video movie",
			OpenGraph{Type: "video.movie", Video: OpenGraphVideo{
				Actors:    []VideoActor{{Profile: "https://a.com/actor", Role: "Lead"}},
				Directors: []string{"https://a.com/director"},
				Writers:   []string{"https://a.com/writer"},
				Duration:  120,
				Tags:      []string{"drama"},
			}},
			[]Tag{
				Property("og:type", "video.movie"),
				Property("video:actor", "https://a.com/actor"),
				Property("video:actor:role", "Lead"),
				Property("video:director", "https://a.com/director"),
				Property("video:writer", "https://a.com/writer"),
				Property("video:duration", "120"),
				Property("video:tag", "drama"),
			},
		},
		{
			"video episode series",
			OpenGraph{Type: "video.episode", Video: OpenGraphVideo{Series: "https://a.com/show"}},
			[]Tag{
				Property("og:type", "video.episode"),
				Property("video:series", "https://a.com/show"),
			},
		},
		{
			"music song",
			OpenGraph{Type: "music.song", Music: OpenGraphMusic{
				Duration:  215,
				Albums:    []MusicReference{{URL: "https://a.com/album", Disc: 1, Track: 4}, {Disc: 2}},
				Musicians: []string{"https://a.com/band"},
			}},
			[]Tag{
				Property("og:type", "music.song"),
				Property("music:duration", "215"),
				Property("music:album", "https://a.com/album"),
				Property("music:album:disc", "1"),
				Property("music:album:track", "4"),
				Property("music:musician", "https://a.com/band"),
			},
		},
		{
			"music album",
			OpenGraph{Type: "music.album", Music: OpenGraphMusic{
				Songs:       []MusicReference{{URL: "https://a.com/song", Track: 1}},
				Musicians:   []string{"https://a.com/band"},
				ReleaseDate: "2021-06-01",
			}},
			[]Tag{
				Property("og:type", "music.album"),
				Property("music:song", "https://a.com/song"),
				Property("music:song:track", "1"),
				Property("music:musician", "https://a.com/band"),
				Property("music:release_date", "2021-06-01"),
			},
		},
		{
			"music playlist",
			OpenGraph{Type: "music.playlist", Music: OpenGraphMusic{
				Songs:    []MusicReference{{URL: "https://a.com/song"}},
				Creators: []string{"https://a.com/dj"},
			}},
			[]Tag{
				Property("og:type", "music.playlist"),
				Property("music:song", "https://a.com/song"),
				Property("music:creator", "https://a.com/dj"),
			},
		},
		{
			"music radio station",
			OpenGraph{Type: "music.radio_station", Music: OpenGraphMusic{Creators: []string{"https://a.com/dj"}}},
			[]Tag{
				Property("og:type", "music.radio_station"),
				Property("music:creator", "https://a.com/dj"),
			},
		},
		{
			"website",
			OpenGraph{Type: "website", Article: OpenGraphArticle{Section: "ignored"}},
			[]Tag{Property("og:type", "website")},
		},
		{
			"unknown type",
			OpenGraph{Type: "restaurant.menu", Profile: OpenGraphProfile{FirstName: "ignored"}},
			[]Tag{Property("og:type", "restaurant.menu")},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tags, rec := ogTags(t, tc.og)
			assert.Zero(t, rec.Len())
			assert.Equal(t, tc.want, tags)
		})
	}
}

func TestOpenGraphImagesAndVideos(t *testing.T) {
	t.Parallel()

	tags, rec := ogTags(t, OpenGraph{
		Images: []Media{
			{URL: "https://a.com/1.png", Alt: "one", Width: 800, Height: 600, Type: "image/png", SecureURL: "https://a.com/s1.png"},
			{Alt: "no url"},
			{URL: "https://a.com/2.png"},
		},
		Videos: []Media{{URL: "https://a.com/v.mp4", Alt: "clip", Type: "video/mp4"}},
		Locale: "en_US",
	})

	require.Len(t, rec.Messages(), 2, "skipped image and missing alt")
	require.Equal(t, []Tag{
		Property("og:image", "https://a.com/1.png"),
		Property("og:image:alt", "one"),
		Property("og:image:secure_url", "https://a.com/s1.png"),
		Property("og:image:type", "image/png"),
		Property("og:image:width", "800"),
		Property("og:image:height", "600"),
		Property("og:image", "https://a.com/2.png"),
		Property("og:video", "https://a.com/v.mp4"),
		Property("og:video:alt", "clip"),
		Property("og:video:type", "video/mp4"),
		Property("og:locale", "en_US"),
	}, tags)
}

func TestOpenGraphURLFallsBackToCanonical(t *testing.T) {
	t.Parallel()

	r, rec := newTestResolver(t, Config{})

	tags := r.Resolve(Config{Canonical: "https://a.com/page", OpenGraph: &OpenGraph{}}, RouteArgs{})
	assert.Equal(t, []string{"https://a.com/page"}, FindAll(tags, "og:url"))

	tags = r.Resolve(Config{Canonical: "https://a.com/page", OpenGraph: &OpenGraph{URL: "https://a.com/og"}}, RouteArgs{})
	assert.Equal(t, []string{"https://a.com/og"}, FindAll(tags, "og:url"))
	assert.Zero(t, rec.Len())
}

func TestRelativeCanonicalWarnsOnce(t *testing.T) {
	t.Parallel()

	r, rec := newTestResolver(t, Config{})
	tags := r.Resolve(Config{Canonical: "/page", OpenGraph: &OpenGraph{}}, RouteArgs{})

	assert.Equal(t, 1, rec.Len())
	assert.Equal(t, []string{"/page"}, FindAll(tags, "og:url"))
}

func TestRelativeOpenGraphURLWarns(t *testing.T) {
	t.Parallel()

	r, rec := newTestResolver(t, Config{})
	r.Resolve(Config{OpenGraph: &OpenGraph{URL: "page"}}, RouteArgs{})

	require.Equal(t, 1, rec.Len())
	assert.Contains(t, rec.Messages()[0], "openGraph.url")
}

func TestSiteNameNeedsOpenGraphBlock(t *testing.T) {
	t.Parallel()

	r, _ := newTestResolver(t, Config{})
	tags := r.Resolve(Config{OpenGraph: &OpenGraph{SiteName: "Site"}}, RouteArgs{})
	assert.Equal(t, Property("og:site_name", "Site"), tags[0])
}

func TestNoOpenGraphTagsWithoutBlock(t *testing.T) {
	t.Parallel()

	r, rec := newTestResolver(t, Config{})
	tags := r.Resolve(Config{
		Title:       "Home",
		Description: "Welcome",
		Canonical:   "https://a.com/",
	}, RouteArgs{})

	for _, tag := range tags {
		assert.False(t, strings.HasPrefix(tag.Key(), "og:"), tag.Key())
	}
	assert.Equal(t, []Tag{
		Title("Home"),
		Name("description", "Welcome"),
		Link("canonical", "https://a.com/"),
		Name("robots", "index,follow"),
		Name("googlebot", "index,follow"),
	}, tags)
	assert.Zero(t, rec.Len())
}
