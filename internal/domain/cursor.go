package domain

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// QueryShape identifies the filter and ordering combination that
// produced a cursor. A cursor is only valid for the query shape it came
// from; reusing it against a different shape would silently corrupt
// pagination, so decoding rejects the mismatch instead.
type QueryShape string

// ShapePublishedByCreatedAtDesc is the single listing shape the catalog
// issues: status equality, newest first. The plain pager and the
// category pager share it, which is what makes their cursors
// interchangeable.
const ShapePublishedByCreatedAtDesc QueryShape = "published/createdAt-desc"

var (
	ErrCursorInvalid       = errors.New("invalid cursor token")
	ErrCursorShapeMismatch = errors.New("cursor was issued by a different query shape")
)

// PageCursor marks the last row of a previously returned page. The
// store resumes the listing strictly after (CreatedAt, ID) under the
// shape's ordering.
type PageCursor struct {
	Shape     QueryShape `json:"shape"`
	CreatedAt time.Time  `json:"createdAt"`
	ID        string     `json:"id"`
}

// Token encodes the cursor as an opaque URL-safe string.
func (c PageCursor) Token() string {
	raw, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a token and verifies it was produced by a query
// of the given shape.
func DecodeCursor(token string, shape QueryShape) (*PageCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrCursorInvalid
	}
	var c PageCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, ErrCursorInvalid
	}
	if c.ID == "" {
		return nil, ErrCursorInvalid
	}
	if c.Shape != shape {
		return nil, ErrCursorShapeMismatch
	}
	return &c, nil
}
