package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/atlasvoyages/catalog/internal/domain"
)

// Default collection names, overridable through Options.
const (
	DefaultToursCollection      = "tours"
	DefaultCategoriesCollection = "categories"
)

// DefaultQueryTimeout bounds every query toward Firestore. Expiry
// surfaces as an ordinary error, which the catalog layer treats as a
// transient failure.
const DefaultQueryTimeout = 5 * time.Second

// Store issues the read-only catalog queries against Firestore. All
// queries use equality filters plus at most a single-field order, so no
// composite indexes have to be provisioned.
type Store struct {
	client       *firestore.Client
	tours        string
	categories   string
	queryTimeout time.Duration
}

// Options tunes collection names and the per-query deadline.
type Options struct {
	ToursCollection      string
	CategoriesCollection string
	QueryTimeout         time.Duration
}

// NewStore creates a Firestore-backed catalog store.
func NewStore(client *firestore.Client, opts Options) *Store {
	if opts.ToursCollection == "" {
		opts.ToursCollection = DefaultToursCollection
	}
	if opts.CategoriesCollection == "" {
		opts.CategoriesCollection = DefaultCategoriesCollection
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultQueryTimeout
	}
	return &Store{
		client:       client,
		tours:        opts.ToursCollection,
		categories:   opts.CategoriesCollection,
		queryTimeout: opts.QueryTimeout,
	}
}

func (s *Store) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// ListPublishedTours returns one page of published tours, newest first.
// The document ID is a tiebreak on equal creation timestamps so cursor
// resumption is stable.
func (s *Store) ListPublishedTours(ctx context.Context, pageSize int, after *domain.PageCursor) (domain.TourPage, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	q := s.client.Collection(s.tours).
		Where("status", "==", string(domain.StatusPublished)).
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)
	if after != nil {
		q = q.StartAfter(after.CreatedAt, after.ID)
	}

	docs, err := q.Limit(pageSize).Documents(ctx).GetAll()
	if err != nil {
		return domain.TourPage{}, fmt.Errorf("failed to list published tours: %w", err)
	}

	page := domain.TourPage{
		Items: make([]domain.Tour, 0, len(docs)),
		// Heuristic: a full page may have more behind it. A collection
		// sized at an exact multiple of pageSize costs one extra empty
		// page before exhaustion is reported.
		HasMore: len(docs) == pageSize,
	}
	for _, doc := range docs {
		page.Items = append(page.Items, mapTour(doc.Ref.ID, doc.Data()))
	}
	if n := len(page.Items); n > 0 {
		last := page.Items[n-1]
		page.NextCursor = &domain.PageCursor{
			Shape:     domain.ShapePublishedByCreatedAtDesc,
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		}
	}
	return page, nil
}

// FindTourBySlug returns the first tour whose slug matches, or nil when
// none does. Publication status is the caller's concern.
func (s *Store) FindTourBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	iter := s.client.Collection(s.tours).
		Where("slug", "==", slug).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tour by slug: %w", err)
	}

	tour := mapTour(doc.Ref.ID, doc.Data())
	return &tour, nil
}

// GetTourByID looks a tour up by its document ID, nil when absent.
func (s *Store) GetTourByID(ctx context.Context, id string) (*domain.Tour, error) {
	// The id comes from a URL segment and may be any string; a slash
	// would form an invalid document path.
	if id == "" || strings.Contains(id, "/") {
		return nil, nil
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	doc, err := s.client.Collection(s.tours).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tour %s: %w", id, err)
	}

	tour := mapTour(doc.Ref.ID, doc.Data())
	return &tour, nil
}

// ListCategoriesByType returns every category document of the given
// type. Active filtering and sorting happen in the caller; keeping the
// query to one equality filter avoids a composite index.
func (s *Store) ListCategoriesByType(ctx context.Context, categoryType string) ([]domain.Category, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	docs, err := s.client.Collection(s.categories).
		Where("type", "==", categoryType).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	items := make([]domain.Category, 0, len(docs))
	for _, doc := range docs {
		items = append(items, mapCategory(doc.Ref.ID, doc.Data()))
	}
	return items, nil
}

// ListFeaturedTours returns every tour flagged as featured, regardless
// of status. The caller filters to published and sorts by recency, for
// the same single-filter reason as above.
func (s *Store) ListFeaturedTours(ctx context.Context) ([]domain.Tour, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	docs, err := s.client.Collection(s.tours).
		Where("isFeatured", "==", true).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list featured tours: %w", err)
	}

	items := make([]domain.Tour, 0, len(docs))
	for _, doc := range docs {
		items = append(items, mapTour(doc.Ref.ID, doc.Data()))
	}
	return items, nil
}
