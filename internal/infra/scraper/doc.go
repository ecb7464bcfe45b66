// Package scraper turns raw feed and page documents into articles.
//
// ParseFeed reads RSS 2.0, RSS 1.0 (RDF) and Atom documents through a lenient
// element tree built on gofeed's XML pull parser, and JSON Feed with gofeed.
// ExtractArticles walks an HTML listing page with goquery using ordered CSS
// selector cascades. Both are pure functions of their input; the network side
// lives in the fetcher package.
package scraper
