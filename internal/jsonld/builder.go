package jsonld

import (
	"fmt"
	"strings"
	"time"

	"github.com/saltaireguide/directory/internal/content"
	"github.com/saltaireguide/directory/internal/listing"
)

const schemaContext = "https://schema.org"

// Object is a single JSON-LD block.
type Object map[string]any

// Type returns the @type of the block.
func (o Object) Type() string {
	t, _ := o["@type"].(string)
	return t
}

// Builder produces the structured data blocks for a listing page.
type Builder struct {
	SiteName string
	SiteURL  string
	Country  string
}

func NewBuilder(siteName, siteURL string) *Builder {
	return &Builder{
		SiteName: siteName,
		SiteURL:  strings.TrimRight(strings.TrimSpace(siteURL), "/"),
		Country:  "GB",
	}
}

// Build returns WebPage, BreadcrumbList, the business block and, when there
// are questions, FAQPage, in that order. Each is emitted as its own block.
func (b *Builder) Build(record *content.Record, biz listing.NormalizedBusiness, canonicalURL, heroImageURL string, crumbs []Breadcrumb) []Object {
	if record == nil {
		record = &content.Record{}
	}
	objects := []Object{
		b.webPage(record, biz, canonicalURL, heroImageURL),
		b.breadcrumbList(crumbs),
		b.business(biz, canonicalURL, heroImageURL),
	}
	if faq := faqPage(biz); faq != nil {
		objects = append(objects, faq)
	}
	return objects
}

func (b *Builder) webPage(record *content.Record, biz listing.NormalizedBusiness, canonicalURL, heroImageURL string) Object {
	page := Object{
		"@context":    schemaContext,
		"@type":       "WebPage",
		"@id":         canonicalURL + "#webpage",
		"url":         canonicalURL,
		"name":        first(record.SEOTitle, record.Title, biz.Name),
		"description": first(record.SEODescription, biz.ShortDescription),
		"about":       Object{"@id": canonicalURL + "#business"},
	}
	if b.SiteURL != "" {
		page["isPartOf"] = Object{
			"@type": "WebSite",
			"name":  b.SiteName,
			"url":   b.SiteURL + "/",
		}
	}
	if heroImageURL != "" {
		page["primaryImageOfPage"] = Object{"@type": "ImageObject", "url": heroImageURL}
	}
	if record.PublishedAt != nil {
		page["datePublished"] = record.PublishedAt.UTC().Format(time.RFC3339)
	}
	if record.UpdatedAt != nil {
		page["dateModified"] = record.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return page
}

func (b *Builder) breadcrumbList(crumbs []Breadcrumb) Object {
	items := make([]Object, 0, len(crumbs))
	for i, crumb := range crumbs {
		items = append(items, Object{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     crumb.Name,
			"item":     b.SiteURL + crumb.Href,
		})
	}
	return Object{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

func (b *Builder) business(biz listing.NormalizedBusiness, canonicalURL, heroImageURL string) Object {
	obj := Object{
		"@context":    schemaContext,
		"@type":       first(biz.SchemaType, listing.TypeLocalBusiness),
		"@id":         canonicalURL + "#business",
		"name":        biz.Name,
		"description": biz.ShortDescription,
		"areaServed":  biz.Locality,
	}
	if heroImageURL != "" {
		obj["image"] = heroImageURL
	}
	if !listing.IsPlaceholder(biz.Address) {
		address := Object{
			"@type":           "PostalAddress",
			"streetAddress":   biz.Address,
			"addressLocality": biz.Locality,
			"addressCountry":  b.Country,
		}
		if !listing.IsPlaceholder(biz.Postcode) {
			address["postalCode"] = biz.Postcode
		}
		obj["address"] = address
	}
	setVerified(obj, "telephone", biz.Phone)
	setVerified(obj, "email", biz.Email)
	setVerified(obj, "url", biz.Website)
	setVerified(obj, "priceRange", biz.PriceRange)

	var sameAs []string
	for _, link := range []string{biz.Instagram, biz.Facebook, biz.Website} {
		if !listing.IsPlaceholder(link) {
			sameAs = append(sameAs, strings.TrimSpace(link))
		}
	}
	if len(sameAs) > 0 {
		obj["sameAs"] = sameAs
	}

	var hours []string
	for _, row := range biz.Hours {
		if listing.IsPlaceholder(row.Times) {
			continue
		}
		hours = append(hours, fmt.Sprintf("%s %s", row.Day, row.Times))
	}
	if len(hours) > 0 {
		obj["openingHours"] = hours
	}
	return obj
}

func faqPage(biz listing.NormalizedBusiness) Object {
	if len(biz.FAQs) == 0 {
		return nil
	}
	questions := make([]Object, 0, len(biz.FAQs))
	for _, faq := range biz.FAQs {
		questions = append(questions, Object{
			"@type": "Question",
			"name":  faq.Question,
			"acceptedAnswer": Object{
				"@type": "Answer",
				"text":  faq.Answer,
			},
		})
	}
	return Object{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": questions,
	}
}

func setVerified(obj Object, key, value string) {
	if !listing.IsPlaceholder(value) {
		obj[key] = strings.TrimSpace(value)
	}
}

func first(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
