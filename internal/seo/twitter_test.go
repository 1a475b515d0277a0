package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testImage  = "https://somewhere.com/fake-path.jpg"
	testPlayer = "https://somewhere.com/player"
)

func resolveTwitter(t *testing.T, tw Twitter) ([]Tag, *Recorder) {
	t.Helper()
	r, rec := newTestResolver(t, Config{})
	return r.Resolve(Config{Twitter: &tw}, RouteArgs{}), rec
}

func TestTwitterImageWarnings(t *testing.T) {
	t.Parallel()

	tags, rec := resolveTwitter(t, Twitter{Image: TwitterImage{URL: "fake-path.jpg", Alt: "fake!"}})
	assert.Equal(t, 1, rec.Len(), "relative image url")
	assert.Equal(t, []string{"fake-path.jpg"}, FindAll(tags, "twitter:image"))

	tags, rec = resolveTwitter(t, Twitter{Image: TwitterImage{URL: testImage}})
	assert.Equal(t, 1, rec.Len(), "missing alt")
	assert.Empty(t, FindAll(tags, "twitter:image:alt"))

	_, rec = resolveTwitter(t, Twitter{Image: TwitterImage{URL: testImage, Alt: "fake!"}})
	assert.Zero(t, rec.Len())
}

func TestTwitterInvalidCard(t *testing.T) {
	t.Parallel()

	tags, rec := resolveTwitter(t, Twitter{Card: "poop"})
	require.Equal(t, 1, rec.Len())
	assert.Contains(t, rec.Messages()[0], `"poop"`)
	assert.Empty(t, FindAll(tags, "twitter:card"))
}

func TestTwitterCardCompatibility(t *testing.T) {
	t.Parallel()

	player := TwitterPlayer{URL: testPlayer, Height: 360, Width: 640}
	app := TwitterApp{Name: AppValue{All: "Cool App"}}
	image := TwitterImage{URL: testImage, Alt: "fake!"}

	cases := []struct {
		name     string
		tw       Twitter
		warnings int
	}{
		{"player card with player", Twitter{Card: CardPlayer, Player: player}, 0},
		{"app card with player", Twitter{Card: CardApp, Player: player}, 1},
		{"summary card with player", Twitter{Card: CardSummary, Player: player}, 1},
		{"large image card with player", Twitter{Card: CardSummaryLargeImage, Player: player}, 1},
		{"app card with app", Twitter{Card: CardApp, App: app}, 0},
		{"player card with app", Twitter{Card: CardPlayer, App: app}, 1},
		{"summary card with app", Twitter{Card: CardSummary, App: app}, 1},
		{"large image card with app", Twitter{Card: CardSummaryLargeImage, App: app}, 1},
		{"app card with app and image", Twitter{Card: CardApp, App: app, Image: image}, 1},
		{"player card with image", Twitter{Card: CardPlayer, Player: player, Image: image}, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, rec := resolveTwitter(t, tc.tw)
			assert.Equal(t, tc.warnings, rec.Len(), rec.Messages())
		})
	}
}

func TestTwitterAppCardDropsImage(t *testing.T) {
	t.Parallel()

	tags, _ := resolveTwitter(t, Twitter{
		Card:  CardApp,
		App:   TwitterApp{Name: AppValue{All: "Cool App"}, ID: AppValue{IPhone: "1", GooglePlay: "com.cool"}},
		Image: TwitterImage{URL: testImage, Alt: "fake!"},
	})

	assert.Empty(t, FindAll(tags, "twitter:image"))
	assert.Equal(t, []string{CardApp}, FindAll(tags, "twitter:card"))
	assert.Equal(t, []string{"Cool App"}, FindAll(tags, "twitter:app:name:iphone"))
	assert.Equal(t, []string{"Cool App"}, FindAll(tags, "twitter:app:name:ipad"))
	assert.Equal(t, []string{"Cool App"}, FindAll(tags, "twitter:app:name:googleplay"))
	assert.Equal(t, []string{"1"}, FindAll(tags, "twitter:app:id:iphone"))
	assert.Empty(t, FindAll(tags, "twitter:app:id:ipad"))
	assert.Equal(t, []string{"com.cool"}, FindAll(tags, "twitter:app:id:googleplay"))
}

func TestTwitterPlayerTags(t *testing.T) {
	t.Parallel()

	tags, rec := resolveTwitter(t, Twitter{
		Player: TwitterPlayer{URL: testPlayer, Stream: "https://somewhere.com/stream.mp4", Height: 360, Width: 640},
	})
	require.Zero(t, rec.Len())
	require.Equal(t, []Tag{
		Name("twitter:card", CardPlayer),
		Name("twitter:player", testPlayer),
		Name("twitter:player:stream", "https://somewhere.com/stream.mp4"),
		Name("twitter:player:height", "360"),
		Name("twitter:player:width", "640"),
		Name("robots", "index,follow"),
		Name("googlebot", "index,follow"),
	}, tags)
}

func TestTwitterInferredCardHoldsOtherGroups(t *testing.T) {
	t.Parallel()

	// the image picks summary; the app group does not fit it
	tags, rec := resolveTwitter(t, Twitter{
		Image: TwitterImage{URL: testImage, Alt: "fake!"},
		App:   TwitterApp{Name: AppValue{All: "Cool App"}},
	})
	assert.Equal(t, []string{CardSummary}, FindAll(tags, "twitter:card"))
	assert.Equal(t, 1, rec.Len())
	assert.Empty(t, FindAll(tags, "twitter:app:name:iphone"))
}

func TestTwitterAccounts(t *testing.T) {
	t.Parallel()

	tags, _ := resolveTwitter(t, Twitter{
		Site:    Account{Username: "@site"},
		Creator: Account{Username: "@ignored", ID: "12345"},
	})
	assert.Equal(t, []string{"@site"}, FindAll(tags, "twitter:site"))
	assert.Equal(t, []string{"12345"}, FindAll(tags, "twitter:creator"))
}

func TestTwitterTitleAndDescriptionFallbacks(t *testing.T) {
	t.Parallel()

	r, _ := newTestResolver(t, Config{})
	tags := r.Resolve(Config{
		Title:       "Page",
		Description: "Page description",
		OpenGraph:   &OpenGraph{Title: "OG Page", Description: "OG description"},
		Twitter:     &Twitter{Site: Account{Username: "@site"}},
	}, RouteArgs{})

	assert.Equal(t, []string{"OG Page"}, FindAll(tags, "twitter:title"))
	assert.Equal(t, []string{"OG description"}, FindAll(tags, "twitter:description"))
}

func TestTwitterFallsBackToOpenGraphImage(t *testing.T) {
	t.Parallel()

	r, rec := newTestResolver(t, Config{})
	tags := r.Resolve(Config{
		Twitter: &Twitter{Site: Account{Username: "@site"}},
		OpenGraph: &OpenGraph{Images: []Media{
			{Alt: "no url"},
			{URL: testImage, Alt: "fake!"},
		}},
	}, RouteArgs{})

	assert.Equal(t, []string{CardSummaryLargeImage}, FindAll(tags, "twitter:card"))
	assert.Equal(t, []string{testImage}, FindAll(tags, "twitter:image"))
	assert.Equal(t, []string{"fake!"}, FindAll(tags, "twitter:image:alt"))
	assert.Equal(t, 1, rec.Len(), "image without url")

	// an empty block still enables the fallback
	tags = r.Resolve(Config{
		Twitter:   &Twitter{},
		OpenGraph: &OpenGraph{Images: []Media{{URL: testImage, Alt: "fake!"}}},
	}, RouteArgs{})
	assert.Equal(t, []string{CardSummaryLargeImage}, FindAll(tags, "twitter:card"))
}

func TestNoTwitterTagsWithoutBlock(t *testing.T) {
	t.Parallel()

	r, _ := newTestResolver(t, Config{})
	tags := r.Resolve(Config{
		Title:     "Page",
		OpenGraph: &OpenGraph{Images: []Media{{URL: testImage, Alt: "fake!"}}},
	}, RouteArgs{})

	for _, tag := range tags {
		assert.False(t, strings.HasPrefix(tag.Key(), "twitter:"), tag.Key())
	}
}

func TestTwitterExplicitCardSuppressesFallback(t *testing.T) {
	t.Parallel()

	r, _ := newTestResolver(t, Config{})
	tags := r.Resolve(Config{
		Twitter:   &Twitter{Card: CardSummary},
		OpenGraph: &OpenGraph{Images: []Media{{URL: testImage, Alt: "fake!"}}},
	}, RouteArgs{})

	assert.Equal(t, []string{CardSummary}, FindAll(tags, "twitter:card"))
	assert.Empty(t, FindAll(tags, "twitter:image"))
}
