// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds sitemap XML with per-locale alternate links.
package seo

import (
	"encoding/xml"
	"time"

	"github.com/vegaplay/vegaplay-go/internal/model"
)

// Sitemap XML namespaces.
const (
	XMLNamespace   = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"
)

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// AlternateLink is an xhtml:link alternate pointing at another locale.
type AlternateLink struct {
	XMLName  xml.Name `xml:"xhtml:link"`
	Rel      string   `xml:"rel,attr"`
	HrefLang string   `xml:"hreflang,attr"`
	Href     string   `xml:"href,attr"`
}

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string          `xml:"loc"`
	Alternates []AlternateLink `xml:"xhtml:link,omitempty"`
	LastMod    string          `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq      `xml:"changefreq,omitempty"`
	Priority   string          `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XMLNSXHTML string       `xml:"xmlns:xhtml,attr"`
	URLs       []SitemapURL `xml:"url"`
}

// sectionPath maps content types to public URL sections.
func sectionPath(contentType string) string {
	switch contentType {
	case model.TypeCasino:
		return "casinos"
	case model.TypeGame:
		return "juegos"
	case model.TypePost:
		return "blog"
	default:
		return contentType
	}
}

// SitemapBuilder builds sitemap XML from published content.
type SitemapBuilder struct {
	siteURL string
	locales []string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder. The first locale is
// treated as the x-default.
func NewSitemapBuilder(siteURL string, locales []string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: siteURL,
		locales: locales,
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the homepage in every locale.
func (b *SitemapBuilder) AddHomepage() {
	for _, loc := range b.locales {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + "/" + loc,
			Alternates: b.alternates(""),
			ChangeFreq: ChangeFreqDaily,
			Priority:   "1.0",
		})
	}
}

// AddItem adds one published content item under its own locale with
// alternate links for every supported locale.
func (b *SitemapBuilder) AddItem(item model.ContentItem) {
	path := sectionPath(item.Type) + "/" + item.Slug
	url := SitemapURL{
		Loc:        b.siteURL + "/" + item.Locale + "/" + path,
		Alternates: b.alternates(path),
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.8",
	}
	if item.Type == model.TypePost {
		url.Priority = "0.6"
	}
	if !item.LastModified.IsZero() {
		url.LastMod = item.LastModified.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddItems adds multiple content items.
func (b *SitemapBuilder) AddItems(items []model.ContentItem) {
	for _, it := range items {
		b.AddItem(it)
	}
}

// alternates builds the hreflang link set for a path, plus x-default.
func (b *SitemapBuilder) alternates(path string) []AlternateLink {
	suffix := ""
	if path != "" {
		suffix = "/" + path
	}
	links := make([]AlternateLink, 0, len(b.locales)+1)
	for _, loc := range b.locales {
		links = append(links, AlternateLink{
			Rel:      "alternate",
			HrefLang: loc,
			Href:     b.siteURL + "/" + loc + suffix,
		})
	}
	if len(b.locales) > 0 {
		links = append(links, AlternateLink{
			Rel:      "alternate",
			HrefLang: "x-default",
			Href:     b.siteURL + "/" + b.locales[0] + suffix,
		})
	}
	return links
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS:      XMLNamespace,
		XMLNSXHTML: XHTMLNamespace,
		URLs:       b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds a sitemap from published content items.
func GenerateSitemap(siteURL string, locales []string, items []model.ContentItem) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL, locales)
	builder.AddHomepage()
	builder.AddItems(items)
	return builder.Build()
}
