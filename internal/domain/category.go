package domain

import "sort"

// CategoryTypeTour marks the category documents that participate in the
// tour catalog. Other types share the same collection and are filtered
// out by the query constraint.
const CategoryTypeTour = "tour"

// Category groups tours for the listing pages and the site navigation.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`

	// Active is soft-delete by flag, default-on: a document without the
	// flag counts as active.
	Active bool `json:"isActive"`

	// Order is the optional display position. Categories without one
	// sort after those that have it.
	Order *int `json:"order,omitempty"`
}

// SortCategories orders by explicit Order ascending, entries without an
// Order last, ties broken alphabetically by name.
func SortCategories(cats []Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		oi, oj := displayOrder(cats[i].Order), displayOrder(cats[j].Order)
		if oi != oj {
			return oi < oj
		}
		return cats[i].Name < cats[j].Name
	})
}

const unordered = int(^uint(0) >> 1) // max int

func displayOrder(o *int) int {
	if o == nil {
		return unordered
	}
	return *o
}

// CategoryPage is one page of the offset-paginated category listing.
// The full list is cached in memory, so unlike tour pages both Total
// and HasMore are exact.
type CategoryPage struct {
	Items    []Category `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	HasMore  bool       `json:"hasMore"`
}
