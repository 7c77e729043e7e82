// Package catalog lists the tools the live iLovePDF site currently offers,
// by rendering the home page and parsing its tool tiles.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"lovepdf/internal/browser"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod/lib/proto"
)

const homeURL = "https://www.ilovepdf.com/"

// Entry is one tool tile on the home page.
type Entry struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`

	descHTML string
}

// Catalog holds the parsed tool tiles and implements formatter.Content.
type Catalog struct {
	source  string
	entries []Entry
}

// Entries returns the parsed tool tiles.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Fetch renders the home page in a browser and parses the tool tiles.
func Fetch(ctx context.Context, cfg browser.Config, timeout time.Duration) (*Catalog, error) {
	b, err := browser.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}
	defer b.Close()

	page, err := b.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Timeout(timeout).Navigate(homeURL); err != nil {
		return nil, fmt.Errorf("failed to navigate: %w", err)
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to wait for page load: %w", err)
	}

	// Wait for network idle so JS-rendered tiles are populated.
	wait := page.Timeout(timeout).WaitRequestIdle(
		500*time.Millisecond, nil, nil,
		[]proto.NetworkResourceType{proto.NetworkResourceTypeImage, proto.NetworkResourceTypeMedia},
	)
	wait()

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to get page HTML: %w", err)
	}

	return Parse(homeURL, html)
}

// Parse extracts the tool tiles from the rendered home page HTML.
func Parse(baseURL, html string) (*Catalog, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	var entries []Entry
	seen := map[string]bool{}

	doc.Find("a.tools__item").Each(func(i int, tile *goquery.Selection) {
		href, ok := tile.Attr("href")
		if !ok {
			return
		}
		title := strings.TrimSpace(tile.Find("h3").First().Text())
		if title == "" {
			title = strings.TrimSpace(tile.Find(".tools__item__title").First().Text())
		}
		if title == "" {
			return
		}

		ref, err := base.Parse(href)
		if err != nil {
			return
		}
		link := ref.String()
		if seen[link] {
			return
		}
		seen[link] = true

		desc := tile.Find(".tools__item__content").First()
		descHTML, _ := desc.Html()

		entries = append(entries, Entry{
			Title:       title,
			URL:         link,
			Description: strings.TrimSpace(desc.Text()),
			descHTML:    descHTML,
		})
	})

	if len(entries) == 0 {
		return nil, fmt.Errorf("no tool tiles found on %s", baseURL)
	}

	return &Catalog{source: baseURL, entries: entries}, nil
}

func (c *Catalog) ToText() (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tools on %s\n\n", c.source))
	for i, e := range c.entries {
		sb.WriteString(fmt.Sprintf("%d. %s\n   %s\n", i+1, e.Title, e.URL))
		if e.Description != "" {
			sb.WriteString("   " + e.Description + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (c *Catalog) ToMarkdown() (string, error) {
	converter := md.NewConverter("", true, nil)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Tools on %s\n\n", c.source))
	for _, e := range c.entries {
		sb.WriteString(fmt.Sprintf("## [%s](%s)\n\n", e.Title, e.URL))
		if e.descHTML != "" {
			blurb, err := converter.ConvertString(e.descHTML)
			if err != nil {
				return "", fmt.Errorf("failed to convert description: %w", err)
			}
			if blurb = strings.TrimSpace(blurb); blurb != "" {
				sb.WriteString(blurb + "\n\n")
			}
		} else if e.Description != "" {
			sb.WriteString(e.Description + "\n\n")
		}
	}
	return sb.String(), nil
}

func (c *Catalog) ToJSON() ([]byte, error) {
	type jsonCatalog struct {
		Source string  `json:"source"`
		Tools  []Entry `json:"tools"`
	}
	return json.Marshal(jsonCatalog{Source: c.source, Tools: c.entries})
}
