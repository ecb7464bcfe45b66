package scraper

import (
	"strings"

	"github.com/mmcdole/gofeed"
	jsonfeed "github.com/mmcdole/gofeed/json"

	"drupal-news/internal/domain/entity"
)

// ParseFeed normalizes a feed document into articles for src.
//
// Every channel > item element is read as RSS. When there is none, every
// entry element anywhere in the document is read as Atom. Ids carry the
// zero-based position of the item. A document whose root is neither, such as
// an HTML page served at the feed URL, yields an empty slice and no error so
// the caller can fall back to the listing page. Input without any element
// yields a *entity.ParseError. JSON Feed documents are read with gofeed.
func ParseFeed(raw string, src *entity.Source) ([]entity.Article, error) {
	if gofeed.DetectFeedType(strings.NewReader(raw)) == gofeed.FeedTypeJSON {
		return parseJSONFeed(raw, src)
	}

	root, err := parseXMLTree(raw)
	if err != nil {
		return nil, &entity.ParseError{Format: "feed", Err: err}
	}
	if items := rssItems(root); len(items) > 0 {
		return rssArticles(items, src), nil
	}
	return atomArticles(append(matchSelf(root, "entry"), root.FindAll("entry")...), src), nil
}

// rssItems selects channel > item. RSS 1.0 places items next to the channel
// under rdf:RDF, so those count as well.
func rssItems(root *xmlNode) []*xmlNode {
	var items []*xmlNode
	for _, n := range root.FindAll("item") {
		if n.parent == nil {
			continue
		}
		if n.parent.name == "channel" || (n.parent == root && root.name == "rdf:RDF") {
			items = append(items, n)
		}
	}
	return items
}

func matchSelf(n *xmlNode, name string) []*xmlNode {
	if n.name == name {
		return []*xmlNode{n}
	}
	return nil
}

func rssArticles(items []*xmlNode, src *entity.Source) []entity.Article {
	articles := make([]entity.Article, 0, len(items))
	for i, item := range items {
		link := CollapseWhitespace(item.FindText("link"))
		if link == "" {
			link = src.SiteURL
		}

		published := CollapseWhitespace(item.FindText("pubDate"))
		if published == "" {
			published = CollapseWhitespace(item.FindText("dc:date"))
		}

		summary := item.FindText("content:encoded")
		if summary == "" {
			summary = item.FindText("description")
		}

		articles = append(articles, entity.NewArticle(src, i,
			CollapseWhitespace(item.FindText("title")), link, published, StripMarkup(summary)))
	}
	return articles
}

func atomArticles(entries []*xmlNode, src *entity.Source) []entity.Article {
	articles := make([]entity.Article, 0, len(entries))
	for i, entry := range entries {
		link := strings.TrimSpace(entryLink(entry).Attr("href"))
		if link == "" {
			link = src.SiteURL
		}

		published := CollapseWhitespace(entry.FindText("published"))
		if published == "" {
			published = CollapseWhitespace(entry.FindText("updated"))
		}

		summary := entry.FindText("summary")
		if summary == "" {
			summary = entry.FindText("content")
		}

		articles = append(articles, entity.NewArticle(src, i,
			atomTitle(entry.Find("title")), link, published, StripMarkup(summary)))
	}
	return articles
}

// atomTitle is the text of the title element. Escaped HTML titles are
// stripped to their text as well.
func atomTitle(n *xmlNode) string {
	if n.Attr("type") == "html" {
		return StripMarkup(n.Text())
	}
	return CollapseWhitespace(n.Text())
}

// entryLink returns the first link with rel="alternate", else the first
// link. Only a literal rel attribute counts.
func entryLink(entry *xmlNode) *xmlNode {
	links := entry.FindAll("link")
	for _, l := range links {
		if l.Attr("rel") == "alternate" {
			return l
		}
	}
	if len(links) > 0 {
		return links[0]
	}
	return nil
}

func parseJSONFeed(raw string, src *entity.Source) ([]entity.Article, error) {
	feed, err := (&jsonfeed.Parser{}).Parse(strings.NewReader(raw))
	if err != nil {
		return nil, &entity.ParseError{Format: "json feed", Err: err}
	}

	articles := make([]entity.Article, 0, len(feed.Items))
	for i, item := range feed.Items {
		link := strings.TrimSpace(item.URL)
		if link == "" {
			link = strings.TrimSpace(item.ExternalURL)
		}
		if link == "" {
			link = src.SiteURL
		}

		published := CollapseWhitespace(item.DatePublished)
		if published == "" {
			published = CollapseWhitespace(item.DateModified)
		}

		summary := item.Summary
		if summary == "" {
			summary = item.ContentHTML
		}
		if summary == "" {
			summary = item.ContentText
		}

		articles = append(articles, entity.NewArticle(src, i,
			CollapseWhitespace(item.Title), link, published, StripMarkup(summary)))
	}
	return articles, nil
}
