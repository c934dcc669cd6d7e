package listing

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/saltaireguide/directory/internal/content"
	"github.com/saltaireguide/directory/internal/payload"
)

// Placeholder marks a field whose value has not been verified.
const Placeholder = "To be verified"

const (
	DefaultSlug     = "listing"
	DefaultTagline  = "Local business in Saltaire"
	DefaultLocality = "Saltaire"
)

// Schema.org types produced by path inference.
const (
	TypeBarOrPub         = "BarOrPub"
	TypeCafeOrCoffeeShop = "CafeOrCoffeeShop"
	TypeRestaurant       = "Restaurant"
	TypeBakery           = "Bakery"
	TypeLocalBusiness    = "LocalBusiness"
)

// Weekdays is the order of the default opening hours table.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// NormalizedBusiness is the render-ready view of a listing. Every field is
// populated; only LastVerified may be empty, meaning "unknown".
type NormalizedBusiness struct {
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	SchemaType       string            `json:"schemaType"`
	Categories       []string          `json:"categories"`
	PriceRange       string            `json:"priceRange"`
	Tagline          string            `json:"tagline"`
	ShortDescription string            `json:"shortDescription"`
	LongDescription  string            `json:"longDescription"`
	Address          string            `json:"address"`
	Postcode         string            `json:"postcode"`
	Locality         string            `json:"locality"`
	Phone            string            `json:"phone"`
	Email            string            `json:"email"`
	Website          string            `json:"website"`
	Instagram        string            `json:"instagram"`
	Facebook         string            `json:"facebook"`
	WhatsApp         string            `json:"whatsapp"`
	Hours            []payload.HourRow `json:"hours"`
	GoodToKnow       []string          `json:"goodToKnow"`
	FAQs             []payload.FAQ     `json:"faqs"`
	ClaimBenefits    []string          `json:"claimBenefits"`
	Claimed          bool              `json:"claimed"`
	LastVerified     string            `json:"lastVerified"`
}

// Normalize derives a NormalizedBusiness from record. It is total and
// deterministic: any input, including nil, yields a complete value.
func Normalize(record *content.Record) NormalizedBusiness {
	if record == nil {
		record = &content.Record{}
	}
	raw := payload.ResolveLegacyPayload(record).Raw
	biz := payload.DecodeBiz(payload.BizShape(raw))

	slug := biz.Slug
	if slug == "" {
		slug = lastSegment(record.Path)
	}
	if slug == "" {
		slug = DefaultSlug
	}

	name := or(biz.Name, strings.TrimSpace(record.Title), TitleCase(slug), TitleCase(DefaultSlug))

	schemaType := or(payload.String(raw["schemaType"]), biz.SchemaType, InferSchemaType(record.Path))

	return NormalizedBusiness{
		Slug:             slug,
		Name:             name,
		SchemaType:       schemaType,
		Categories:       orList(biz.Categories, []string{or(CamelToTitle(schemaType), CamelToTitle(TypeLocalBusiness))}),
		PriceRange:       or(biz.PriceRange, Placeholder),
		Tagline:          or(biz.Tagline, DefaultTagline),
		ShortDescription: or(biz.ShortDescription, defaultShortDescription(name)),
		LongDescription:  or(biz.LongDescription, defaultLongDescription(name)),
		Address:          or(biz.Address, Placeholder),
		Postcode:         or(biz.Postcode, Placeholder),
		Locality:         or(biz.Locality, DefaultLocality),
		Phone:            or(biz.Phone, Placeholder),
		Email:            or(biz.Email, Placeholder),
		Website:          or(biz.Website, Placeholder),
		Instagram:        or(biz.Instagram, Placeholder),
		Facebook:         or(biz.Facebook, Placeholder),
		WhatsApp:         or(biz.WhatsApp, Placeholder),
		Hours:            hoursOrDefault(biz.Hours),
		GoodToKnow:       orList(biz.GoodToKnow, defaultGoodToKnow()),
		FAQs:             faqsOrDefault(biz.FAQs, name, biz.Address, biz.Claimed),
		ClaimBenefits:    orList(biz.ClaimBenefits, defaultClaimBenefits()),
		Claimed:          biz.Claimed,
		LastVerified:     or(biz.LastVerified, timestamp(record.UpdatedAt), timestamp(record.PublishedAt)),
	}
}

// IsPlaceholder reports whether v carries no verified value.
func IsPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, Placeholder)
}

// InferSchemaType maps a path to a schema.org type. Rules are checked in
// order and the first match wins.
func InferSchemaType(path string) string {
	p := strings.ToLower(path)
	switch {
	case strings.Contains(p, "/pub"):
		return TypeBarOrPub
	case strings.Contains(p, "/cafe"), strings.Contains(p, "/coffee"):
		return TypeCafeOrCoffeeShop
	case strings.Contains(p, "/restaurant"), strings.Contains(p, "/food"):
		return TypeRestaurant
	case strings.Contains(p, "/bakery"):
		return TypeBakery
	default:
		return TypeLocalBusiness
	}
}

// TitleCase replaces runs of '-' and '_' with a single space and upper-cases
// the first letter of every word.
func TitleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// CamelToTitle splits a camel-case identifier into title-cased words, so
// "CafeOrCoffeeShop" becomes "Cafe Or Coffee Shop".
func CamelToTitle(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return TitleCase(b.String())
}

func lastSegment(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(segments[i]); s != "" {
			return s
		}
	}
	return ""
}

func or(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func orList(values, fallback []string) []string {
	if len(values) > 0 {
		return values
	}
	return fallback
}

func timestamp(ts *time.Time) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

func hoursOrDefault(rows []payload.HourRow) []payload.HourRow {
	if len(rows) > 0 {
		return rows
	}
	out := make([]payload.HourRow, len(Weekdays))
	for i, day := range Weekdays {
		out[i] = payload.HourRow{Day: day, Times: Placeholder}
	}
	return out
}

func defaultShortDescription(name string) string {
	return fmt.Sprintf("Details for %s are being verified. Check back soon or contact the business directly.", name)
}

func defaultLongDescription(name string) string {
	return fmt.Sprintf("We are still gathering verified information about %s. If you run this business, you can claim the listing to add accurate details.", name)
}

func defaultGoodToKnow() []string {
	return []string{
		"Opening hours and contact details have not been verified yet.",
		"Please check with the business before travelling.",
	}
}

func defaultClaimBenefits() []string {
	return []string{
		"Correct your opening hours and contact details",
		"Add photos and a description of what you offer",
		"Show visitors the listing is run by the business",
	}
}

func faqsOrDefault(faqs []payload.FAQ, name, address string, claimed bool) []payload.FAQ {
	if len(faqs) > 0 {
		return faqs
	}
	where := fmt.Sprintf("%s is in %s. The exact address is still being verified.", name, DefaultLocality)
	if !IsPlaceholder(address) {
		where = fmt.Sprintf("%s is at %s, %s.", name, address, DefaultLocality)
	}
	official := "This listing has not been claimed yet. If you run this business, you can claim it to keep the details accurate."
	if claimed {
		official = "Yes. This listing has been claimed and is maintained by the business."
	}
	return []payload.FAQ{
		{
			Question: fmt.Sprintf("Where is %s?", name),
			Answer:   where,
		},
		{
			Question: fmt.Sprintf("What are the opening hours for %s?", name),
			Answer:   "Opening hours have not been verified yet. Please contact the business before visiting.",
		},
		{
			Question: fmt.Sprintf("Is this the official listing for %s?", name),
			Answer:   official,
		},
	}
}
