package payload

import (
	"github.com/saltaireguide/directory/internal/content"
)

// Source names the record field a payload was read from.
type Source string

const (
	SourceData     Source = "data"
	SourceJSONData Source = "jsonData"
	SourcePayload  Source = "payload"
	SourceMeta     Source = "meta"
	SourceNone     Source = ""
)

// Priority is the fixed lookup order for legacy payload fields.
var Priority = []Source{SourceData, SourceJSONData, SourcePayload, SourceMeta}

// Resolution is the outcome of ResolveLegacyPayload.
type Resolution struct {
	Source Source
	Raw    map[string]any
	// Shadowed lists lower priority fields that were also populated. A non-empty
	// list usually means an upstream migration left stale data behind.
	Shadowed []Source
}

// ResolveLegacyPayload returns the first non-nil payload field of record in
// Priority order. Raw is never nil; a record without any payload resolves to
// an empty map with SourceNone. Fields are never merged.
func ResolveLegacyPayload(record *content.Record) Resolution {
	res := Resolution{Source: SourceNone, Raw: map[string]any{}}
	if record == nil {
		return res
	}
	for _, source := range Priority {
		value := field(record, source)
		if value == nil {
			continue
		}
		if res.Source == SourceNone {
			res.Source = source
			res.Raw = value
			continue
		}
		res.Shadowed = append(res.Shadowed, source)
	}
	return res
}

func field(record *content.Record, source Source) map[string]any {
	switch source {
	case SourceData:
		return record.Data
	case SourceJSONData:
		return record.JSONData
	case SourcePayload:
		return record.Payload
	case SourceMeta:
		return record.Meta
	}
	return nil
}

// BizShape returns raw["biz"] when it is an object, otherwise raw itself.
func BizShape(raw map[string]any) map[string]any {
	if raw == nil {
		return map[string]any{}
	}
	if biz, ok := asMap(raw["biz"]); ok {
		return biz
	}
	return raw
}
