package models

import (
	"time"
)

// PostingStatus represents the listing status of a posting
type PostingStatus string

const (
	PostingStatusListed   PostingStatus = "LISTED"
	PostingStatusDelisted PostingStatus = "DELISTED"
)

// Scope is the publisher-declared visibility tier of a posting.
type Scope string

const (
	ScopeRoom     Scope = "ROOM"
	ScopeFloor    Scope = "FLOOR"
	ScopeBuilding Scope = "BUILDING"
	ScopeCampus   Scope = "CAMPUS"
)

// Valid reports whether s is a known scope value.
func (s Scope) Valid() bool {
	switch s {
	case ScopeRoom, ScopeFloor, ScopeBuilding, ScopeCampus:
		return true
	}
	return false
}

// ScopeAllows evaluates the publisher-declared visibility rule: whether a
// posting published with the given scope by a poster at posterLoc is visible
// to a viewer at viewerLoc. A poster with no resolvable location can never
// satisfy location-based scopes; a viewer with no resolvable location sees
// only nothing (the caller short-circuits that case before querying).
func ScopeAllows(scope Scope, posterLoc, viewerLoc *Location) bool {
	if scope == ScopeCampus {
		return true
	}
	if posterLoc == nil || viewerLoc == nil {
		return false
	}
	switch scope {
	case ScopeBuilding:
		return posterLoc.Building == viewerLoc.Building
	case ScopeFloor:
		return posterLoc.Building == viewerLoc.Building && posterLoc.Floor == viewerLoc.Floor
	case ScopeRoom:
		return posterLoc.RoomID == viewerLoc.RoomID
	}
	return false
}

// RangeFilter is the viewer-selected narrowing of search results by the
// viewer's own location. It is independent of a posting's scope and is ANDed
// onto the base visibility rule, so it can only shrink the result set.
type RangeFilter string

const (
	RangeAll      RangeFilter = ""
	RangeBuilding RangeFilter = "BUILDING"
	RangeFloor    RangeFilter = "FLOOR"
	RangeRoom     RangeFilter = "ROOM"
)

// RangeAllows evaluates the viewer-selected range filter against a poster's
// location. Unknown filter values apply no extra narrowing.
func RangeAllows(filter RangeFilter, posterLoc, viewerLoc *Location) bool {
	switch filter {
	case RangeBuilding:
		return posterLoc != nil && viewerLoc != nil && posterLoc.Building == viewerLoc.Building
	case RangeFloor:
		return posterLoc != nil && viewerLoc != nil &&
			posterLoc.Building == viewerLoc.Building && posterLoc.Floor == viewerLoc.Floor
	case RangeRoom:
		return posterLoc != nil && viewerLoc != nil && posterLoc.RoomID == viewerLoc.RoomID
	}
	return true
}

// Posting defines an item listing based on the 'postings' table
type Posting struct {
	ID            int64         `json:"id" db:"id"`
	OwnerID       int64         `json:"ownerId" db:"owner_id"`
	Title         string        `json:"title" db:"title"`
	Content       string        `json:"content" db:"content"`
	Price         float64       `json:"price" db:"price"`
	Quantity      int           `json:"quantity" db:"quantity"`
	Brand         *string       `json:"brand,omitempty" db:"brand"`
	Condition     *string       `json:"condition,omitempty" db:"condition"`
	CoverImageURL *string       `json:"coverImageUrl,omitempty" db:"cover_image_url"`
	TagID         *int64        `json:"tagId,omitempty" db:"tag_id"`
	Status        PostingStatus `json:"status" db:"status"`
	Scope         Scope         `json:"scope" db:"scope"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`

	// Joined fields, no db tag
	OwnerName string    `json:"ownerName,omitempty"`
	TagName   *string   `json:"tagName,omitempty"`
	OwnerLoc  *Location `json:"-"`
}

// Image is an additional photo attached to a posting.
type Image struct {
	ID         int64     `json:"id" db:"id"`
	PostingID  int64     `json:"postingId" db:"posting_id"`
	UploaderID int64     `json:"uploaderId" db:"uploader_id"`
	Path       string    `json:"path" db:"path"`
	Category   string    `json:"category" db:"category"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Favorite is a (user, posting) bookmark pairing, unique per pair.
type Favorite struct {
	UserID    int64     `json:"userId" db:"user_id"`
	PostingID int64     `json:"postingId" db:"posting_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Tag is a labeled item category with a reference counter used for
// popularity ranking.
type Tag struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	RefCount int64  `json:"refCount" db:"ref_count"`
}
