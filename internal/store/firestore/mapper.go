package firestore

import (
	"time"

	"github.com/atlasvoyages/catalog/internal/domain"
)

// mapTour normalizes a raw tour document. Recognized fields land on the
// struct; everything else is display-only content that passes through
// in Extra untouched.
func mapTour(id string, data map[string]any) domain.Tour {
	t := domain.Tour{ID: id, Extra: make(map[string]any)}
	for key, raw := range data {
		switch key {
		case "slug":
			t.Slug = asString(raw)
		case "title":
			t.Title = asString(raw)
		case "shortDescription":
			t.ShortDescription = asString(raw)
		case "description":
			t.Description = asString(raw)
		case "categoryId":
			t.CategoryID = asString(raw)
		case "status":
			t.Status = domain.Status(asString(raw))
		case "isFeatured":
			t.Featured, _ = raw.(bool)
		case "featureImageUrl":
			t.FeatureImageURL = asString(raw)
		case "imageUrls":
			t.ImageURLs = asStringSlice(raw)
		case "createdAt":
			t.CreatedAt = asTime(raw)
		default:
			t.Extra[key] = raw
		}
	}
	t.Image = domain.ResolveDisplayImage(t.FeatureImageURL, t.ImageURLs)
	return t
}

// mapCategory normalizes a raw category document. A missing isActive
// flag counts as active; a missing or non-numeric order stays nil.
func mapCategory(id string, data map[string]any) domain.Category {
	c := domain.Category{ID: id, Active: true}
	for key, raw := range data {
		switch key {
		case "name":
			c.Name = asString(raw)
		case "slug":
			c.Slug = asString(raw)
		case "type":
			c.Type = asString(raw)
		case "description":
			c.Description = asString(raw)
		case "isActive":
			if b, ok := raw.(bool); ok {
				c.Active = b
			}
		case "order":
			if n, ok := asInt(raw); ok {
				c.Order = &n
			}
		}
	}
	return c
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asTime(v any) time.Time {
	t, _ := v.(time.Time)
	return t
}

func asStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// asInt accepts the numeric types Firestore hands back for number
// fields.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
