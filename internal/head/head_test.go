package head

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"finitefield.org/hanko-seo/internal/seo"
	"finitefield.org/hanko-seo/internal/testutil"
)

func sampleTags() []seo.Tag {
	alt := seo.Link("alternate", "https://a.com/ja")
	alt.HrefLang = "ja"
	return []seo.Tag{
		seo.Title(`Tom & Jerry <3`),
		seo.Name("description", `He said "hi"`),
		seo.Link("canonical", "https://a.com/?a=1&b=2"),
		alt,
		seo.Property("og:title", "Tom & Jerry"),
		seo.Name("robots", "index,follow"),
	}
}

func TestStringRendersInOrder(t *testing.T) {
	t.Parallel()

	out := String([]seo.Tag{
		seo.CharSet("utf-8"),
		seo.Title("Home"),
		seo.Property("og:title", "Home"),
		seo.Link("canonical", "https://a.com"),
	})

	require.Equal(t, strings.Join([]string{
		`<meta charset="utf-8"/>`,
		`<title>Home</title>`,
		`<meta property="og:title" content="Home"/>`,
		`<link rel="canonical" href="https://a.com"/>`,
	}, "\n"), out)
}

func TestStringEscapes(t *testing.T) {
	t.Parallel()

	out := String(sampleTags(), WithSeparator(""))

	require.Contains(t, out, `<title>Tom &amp; Jerry &lt;3</title>`)
	require.Contains(t, out, `content="He said &#34;hi&#34;"`)
	require.Contains(t, out, `href="https://a.com/?a=1&amp;b=2"`)

	doc := testutil.ParseHTML(t, []byte("<html><head>"+out+"</head></html>"))
	require.Equal(t, `Tom & Jerry <3`, doc.Find("title").Text())
	got, ok := testutil.MetaContent(doc, "description")
	require.True(t, ok)
	require.Equal(t, `He said "hi"`, got)
	hreflang, _ := doc.Find(`link[rel="alternate"]`).Attr("hreflang")
	require.Equal(t, "ja", hreflang)
}

func TestNodesSkipsUnknownKinds(t *testing.T) {
	t.Parallel()

	nodes := Nodes([]seo.Tag{{}, seo.Title("x")})
	require.Len(t, nodes, 1)
	require.Equal(t, "title", nodes[0].Data)
}

func TestComponentWithJSONLD(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	schema := seo.Organization("A </script> B", "https://a.com", "")
	err := Component([]seo.Tag{seo.Title("Home")}, schema, nil).Render(context.Background(), &buf)
	require.NoError(t, err)

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, `<script type="application/ld+json">`))
	require.NotContains(t, out, "A </script>")

	doc := testutil.ParseHTML(t, buf.Bytes())
	require.Contains(t, doc.Find(`script[type="application/ld+json"]`).Text(), `"@type":"Organization"`)
}

func TestDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	page := Document("ja", sampleTags(), templ.Raw("<p>hello</p>"))
	require.NoError(t, page.Render(context.Background(), &buf))

	doc := testutil.ParseHTML(t, buf.Bytes())
	lang, _ := doc.Find("html").Attr("lang")
	require.Equal(t, "ja", lang)
	require.Equal(t, 1, doc.Find("head meta[charset]").Length())
	require.Equal(t, "hello", doc.Find("body p").Text())
	og, ok := testutil.MetaContent(doc, "og:title")
	require.True(t, ok)
	require.Equal(t, "Tom & Jerry", og)

	// an explicit charset is not duplicated
	buf.Reset()
	tags := append([]seo.Tag{seo.CharSet("utf-8")}, sampleTags()...)
	require.NoError(t, Document("", tags, nil).Render(context.Background(), &buf))
	require.Equal(t, 1, strings.Count(buf.String(), "charset"))
	require.Contains(t, buf.String(), `<html lang="en">`)
}
