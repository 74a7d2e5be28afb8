// Package markup renders scanned images into the HTML fragments spliced
// into the gallery and collections documents. Rendering is pure: no I/O.
//
// The fragment shapes are consumed by the site's carousel script and
// stylesheet, so class names, data attributes and ids must stay stable.
package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/folio/internal/scan"
)

const galleryItem = `        <div class="gallery-grid-item">
            <img src="%s" alt="%s">
        </div>`

const collectionCard = `                        <div class="collection-card">
                            <div class="card-image">
                                <img src="%s" alt="%s">
                            </div>
                        </div>`

const sectionOpen = `        <!-- Collection: %[1]s -->
        <section class="collection-section" data-collection="%[1]s">
            <div class="collection-header">
                <h2>%[2]s</h2>
`

const sectionDescription = `                <div class="collection-description">%s</div>
`

const sectionBody = `            </div>
            <div class="collection-carousel-container">
                <button class="carousel-btn prev" data-carousel="%[1]s">‹</button>
                <div class="collection-carousel" id="carousel-%[1]s">
                    <div class="carousel-track">
%[2]s
                    </div>
                </div>
                <button class="carousel-btn next" data-carousel="%[1]s">›</button>
            </div>
        </section>`

// Gallery renders one grid item per image, in order, joined by newlines.
// No wrapping container is emitted; the document supplies the grid.
func Gallery(images []scan.ImageEntry) string {
	items := make([]string, 0, len(images))
	for _, img := range images {
		items = append(items, fmt.Sprintf(galleryItem, html.EscapeString(img.Path), html.EscapeString(img.Label)))
	}
	return strings.Join(items, "\n")
}

// Collections renders one carousel section per collection, in order, joined
// by newlines. Collections without images are skipped. The raw collection
// name is the section's data-collection, both buttons' data-carousel and the
// carousel id suffix; the heading is the title-cased display name.
func Collections(cols scan.Collections) (string, error) {
	sections := make([]string, 0, len(cols))
	for _, c := range cols {
		if len(c.Images) == 0 {
			continue
		}
		section, err := renderSection(c)
		if err != nil {
			return "", err
		}
		sections = append(sections, section)
	}
	return strings.Join(sections, "\n"), nil
}

func renderSection(c scan.Collection) (string, error) {
	name := html.EscapeString(c.Name)

	cards := make([]string, 0, len(c.Images))
	for _, img := range c.Images {
		cards = append(cards, fmt.Sprintf(collectionCard, html.EscapeString(img.Path), html.EscapeString(img.Label)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, sectionOpen, name, html.EscapeString(c.DisplayName()))
	if len(c.Description) > 0 {
		desc, err := Description(c.Description)
		if err != nil {
			return "", fmt.Errorf("collection %s: %w", c.Name, err)
		}
		fmt.Fprintf(&b, sectionDescription, desc)
	}
	fmt.Fprintf(&b, sectionBody, name, strings.Join(cards, "\n"))
	return b.String(), nil
}

// Description renders a collection's Markdown description to HTML.
// Raw HTML in the source is not passed through.
func Description(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("render description: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
