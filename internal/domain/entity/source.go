package entity

import (
	"fmt"
	"strings"
)

// Source is one external content origin in the registry.
// The selector lists are optional hints for the HTML extractor; each one
// falls back to its own default when empty.
type Source struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	SiteURL string `yaml:"site_url"`
	PageURL string `yaml:"page_url,omitempty"`
	FeedURL string `yaml:"feed_url,omitempty"`

	ListSelectors    []string `yaml:"list_selectors,omitempty"`
	TitleSelectors   []string `yaml:"title_selectors,omitempty"`
	DateSelectors    []string `yaml:"date_selectors,omitempty"`
	SummarySelectors []string `yaml:"summary_selectors,omitempty"`
}

// PublicSource is the part of a Source exposed to API clients.
// Feed URLs and extraction hints are withheld.
type PublicSource struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	SiteURL string `json:"siteUrl"`
	PageURL string `json:"pageUrl"`
}

// Public returns the client-facing projection of s.
func (s *Source) Public() PublicSource {
	return PublicSource{
		ID:      s.ID,
		Name:    s.Name,
		SiteURL: s.SiteURL,
		PageURL: s.PageURL,
	}
}

// HasFeed reports whether the source declares a feed URL.
func (s *Source) HasFeed() bool { return s.FeedURL != "" }

// HasPage reports whether the source declares a listing page URL.
func (s *Source) HasPage() bool { return s.PageURL != "" }

// Validate checks the fields a registry entry needs to be usable.
func (s *Source) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if err := ValidateURL(s.SiteURL); err != nil {
		return fmt.Errorf("source %s: site_url: %w", s.ID, err)
	}
	if !s.HasFeed() && !s.HasPage() {
		return &ValidationError{Field: "feed_url", Message: "feed_url or page_url must be set"}
	}
	if s.HasFeed() {
		if err := ValidateURL(s.FeedURL); err != nil {
			return fmt.Errorf("source %s: feed_url: %w", s.ID, err)
		}
	}
	if s.HasPage() {
		if err := ValidateURL(s.PageURL); err != nil {
			return fmt.Errorf("source %s: page_url: %w", s.ID, err)
		}
	}
	return nil
}
