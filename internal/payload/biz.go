package payload

// HourRow is one opening hours entry.
type HourRow struct {
	Day   string `json:"day"`
	Times string `json:"times"`
}

// FAQ is a question and its answer.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Biz is the typed view of a business payload. Fields are empty when the raw
// value was missing or could not be coerced; callers apply their own defaults.
type Biz struct {
	Name             string
	Slug             string
	SchemaType       string
	Categories       []string
	PriceRange       string
	Tagline          string
	ShortDescription string
	LongDescription  string
	Address          string
	Postcode         string
	Locality         string
	Phone            string
	Email            string
	Website          string
	Instagram        string
	Facebook         string
	WhatsApp         string
	Hours            []HourRow
	GoodToKnow       []string
	FAQs             []FAQ
	ClaimBenefits    []string
	Claimed          bool
	LastVerified     string
}

// DecodeBiz coerces a loosely typed biz map into Biz. It never fails.
func DecodeBiz(biz map[string]any) Biz {
	if biz == nil {
		return Biz{}
	}
	return Biz{
		Name:             String(biz["name"]),
		Slug:             String(biz["slug"]),
		SchemaType:       String(biz["schemaType"]),
		Categories:       Strings(Lookup(biz, "categories", "category")),
		PriceRange:       String(biz["priceRange"]),
		Tagline:          String(biz["tagline"]),
		ShortDescription: String(biz["shortDescription"]),
		LongDescription:  String(firstNonEmpty(biz, "longDescription", "description")),
		Address:          String(biz["address"]),
		Postcode:         String(biz["postcode"]),
		Locality:         String(biz["locality"]),
		Phone:            String(Lookup(biz, "phone", "telephone")),
		Email:            String(biz["email"]),
		Website:          String(Lookup(biz, "website", "url")),
		Instagram:        String(biz["instagram"]),
		Facebook:         String(biz["facebook"]),
		WhatsApp:         String(Lookup(biz, "whatsapp", "whatsApp")),
		Hours:            decodeHours(biz["hours"]),
		GoodToKnow:       Strings(biz["goodToKnow"]),
		FAQs:             decodeFAQs(biz["faqs"]),
		ClaimBenefits:    Strings(biz["claimBenefits"]),
		Claimed:          Bool(biz["claimed"]),
		LastVerified:     String(biz["lastVerified"]),
	}
}

func firstNonEmpty(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if String(m[key]) != "" {
			return m[key]
		}
	}
	return nil
}

// decodeHours keeps rows where both day and times are non-empty strings.
func decodeHours(value any) []HourRow {
	items, ok := asSlice(value)
	if !ok {
		return nil
	}
	var rows []HourRow
	for _, item := range items {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		row := HourRow{Day: String(m["day"]), Times: String(m["times"])}
		if row.Day == "" || row.Times == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func decodeFAQs(value any) []FAQ {
	items, ok := asSlice(value)
	if !ok {
		return nil
	}
	var faqs []FAQ
	for _, item := range items {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		faq := FAQ{Question: String(m["question"]), Answer: String(m["answer"])}
		if faq.Question == "" || faq.Answer == "" {
			continue
		}
		faqs = append(faqs, faq)
	}
	return faqs
}
