package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/folio/internal/scan"
)

func TestGallery_ExactShape(t *testing.T) {
	got := Gallery([]scan.ImageEntry{
		{Path: "../art/banner.png", Label: "Banner"},
		{Path: "../art/landscapes/hill_1.jpg", Label: "Hill 1"},
	})

	want := `        <div class="gallery-grid-item">
            <img src="../art/banner.png" alt="Banner">
        </div>
        <div class="gallery-grid-item">
            <img src="../art/landscapes/hill_1.jpg" alt="Hill 1">
        </div>`
	assert.Equal(t, want, got)
}

func TestGallery_Empty(t *testing.T) {
	assert.Equal(t, "", Gallery(nil))
}

func TestCollections_ExactShape(t *testing.T) {
	got, err := Collections(scan.Collections{{
		Name:   "my_collection-1",
		Images: []scan.ImageEntry{{Path: "../art/my_collection-1/a.png", Label: "A"}},
	}})
	require.NoError(t, err)

	want := `        <!-- Collection: my_collection-1 -->
        <section class="collection-section" data-collection="my_collection-1">
            <div class="collection-header">
                <h2>My Collection 1</h2>
            </div>
            <div class="collection-carousel-container">
                <button class="carousel-btn prev" data-carousel="my_collection-1">‹</button>
                <div class="collection-carousel" id="carousel-my_collection-1">
                    <div class="carousel-track">
                        <div class="collection-card">
                            <div class="card-image">
                                <img src="../art/my_collection-1/a.png" alt="A">
                            </div>
                        </div>
                    </div>
                </div>
                <button class="carousel-btn next" data-carousel="my_collection-1">›</button>
            </div>
        </section>`
	assert.Equal(t, want, got)
}

func TestCollections_SkipsEmptyAndKeepsOrder(t *testing.T) {
	got, err := Collections(scan.Collections{
		{Name: "zeta", Images: []scan.ImageEntry{{Path: "z.png", Label: "Z"}}},
		{Name: "empty"},
		{Name: "alpha", Images: []scan.ImageEntry{{Path: "a.png", Label: "A"}, {Path: "b.png", Label: "B"}}},
	})
	require.NoError(t, err)

	assert.NotContains(t, got, `data-collection="empty"`)
	assert.Less(t, strings.Index(got, `data-collection="zeta"`), strings.Index(got, `data-collection="alpha"`))

	doc := parseFragment(t, got)
	sections := findAll(doc, "section")
	require.Len(t, sections, 2)
	assert.Len(t, findAll(sections[0], "img"), 1)
	assert.Len(t, findAll(sections[1], "img"), 2)

	buttons := findAll(sections[1], "button")
	require.Len(t, buttons, 2)
	for _, b := range buttons {
		assert.Equal(t, "alpha", attr(b, "data-carousel"))
	}
	carousels := findByClass(sections[1], "collection-carousel")
	require.Len(t, carousels, 1)
	assert.Equal(t, "carousel-alpha", attr(carousels[0], "id"))
}

func TestCollections_NoneRendersEmpty(t *testing.T) {
	got, err := Collections(nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestRendering_EscapesAttributeValues(t *testing.T) {
	got := Gallery([]scan.ImageEntry{{Path: `../art/a"b.png`, Label: `Tom & Jerry`}})
	assert.Contains(t, got, `src="../art/a&#34;b.png"`)
	assert.Contains(t, got, `alt="Tom &amp; Jerry"`)

	imgs := findAll(parseFragment(t, got), "img")
	require.Len(t, imgs, 1)
	assert.Equal(t, `../art/a"b.png`, attr(imgs[0], "src"))
	assert.Equal(t, "Tom & Jerry", attr(imgs[0], "alt"))
}

func TestCollections_TitleOverrideAndDescription(t *testing.T) {
	got, err := Collections(scan.Collections{{
		Name:        "night",
		Title:       "After Dark",
		Description: []byte("Ink on *paper*.\n\n<script>alert(1)</script>"),
		Images:      []scan.ImageEntry{{Path: "n.png", Label: "N"}},
	}})
	require.NoError(t, err)

	assert.Contains(t, got, "<h2>After Dark</h2>\n                <div class=\"collection-description\"><p>Ink on <em>paper</em>.</p>")
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, `data-collection="night"`)
}

func TestDescription(t *testing.T) {
	out, err := Description([]byte("# Hi\n"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>", out)
}

func parseFragment(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findByClass(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && attr(n, "class") == class {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
