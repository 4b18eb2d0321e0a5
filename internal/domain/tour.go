package domain

import (
	"encoding/json"
	"time"
)

// Status is the publication lifecycle state of a tour.
// Only published tours are visible to the public site.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Tour is one catalog entry as served to the public site.
type Tour struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is the store-assigned document identifier.
	ID string

	// Slug is the human-readable URL identifier.
	// Intended unique, but uniqueness is not enforced by this layer.
	Slug string

	// ─────────────────────────────
	// Display
	// ─────────────────────────────

	Title            string
	ShortDescription string
	Description      string

	// FeatureImageURL is the explicitly chosen hero image, may be empty.
	FeatureImageURL string

	// ImageURLs is the gallery, in upload order.
	ImageURLs []string

	// Image is the resolved display image, see ResolveDisplayImage.
	// Downstream consumers read this one field regardless of which raw
	// field was populated upstream.
	Image string

	// Extra holds display-only fields the catalog passes through
	// untouched (duration, season, highlights, itinerary, ...).
	Extra map[string]any

	// ─────────────────────────────
	// Catalog placement
	// ─────────────────────────────

	// CategoryID references a Category, may be empty.
	CategoryID string

	Status   Status
	Featured bool

	// CreatedAt is store-native and drives the newest-first ordering.
	CreatedAt time.Time
}

// Published reports whether the tour is externally visible.
func (t *Tour) Published() bool { return t.Status == StatusPublished }

// ResolveDisplayImage picks the single image the UI should show: the
// explicit feature image first, then the first gallery image, then none.
func ResolveDisplayImage(featureImageURL string, imageURLs []string) string {
	if featureImageURL != "" {
		return featureImageURL
	}
	if len(imageURLs) > 0 {
		return imageURLs[0]
	}
	return ""
}

// MarshalJSON flattens Extra next to the known fields so API consumers
// receive one flat object per tour. Known fields win on name collision.
func (t Tour) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Extra)+12)
	for k, v := range t.Extra {
		out[k] = v
	}
	out["id"] = t.ID
	out["slug"] = t.Slug
	out["title"] = t.Title
	out["shortDescription"] = t.ShortDescription
	out["description"] = t.Description
	out["categoryId"] = t.CategoryID
	out["status"] = t.Status
	out["isFeatured"] = t.Featured
	out["featureImageUrl"] = t.FeatureImageURL
	out["imageUrls"] = t.ImageURLs
	out["image"] = t.Image
	if !t.CreatedAt.IsZero() {
		out["createdAt"] = t.CreatedAt
	}
	return json.Marshal(out)
}

// TourPage is one page of a cursor-paginated tour listing.
type TourPage struct {
	Items []Tour

	// NextCursor resumes the listing after the last item of this page.
	// Nil when the page came back empty.
	NextCursor *PageCursor

	// HasMore is a heuristic: true when the page came back full. A
	// collection whose size is an exact multiple of the page size will
	// report one extra, empty page before exhaustion.
	HasMore bool
}
