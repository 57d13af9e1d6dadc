package dto

// SearchRequest holds the query parameters of a visibility-scoped search.
// Keyword matches title, content, brand and tag name. Range narrows results
// to the viewer's own building, floor or room on top of the base visibility
// rule. Price bounds are optional.
type SearchRequest struct {
	Keyword  string   `form:"keyword"`
	TagName  string   `form:"tag"`
	Range    string   `form:"range" binding:"omitempty,oneof=BUILDING FLOOR ROOM"`
	PriceMin *float64 `form:"priceMin" binding:"omitempty,min=0"`
	PriceMax *float64 `form:"priceMax" binding:"omitempty,min=0"`
	Page     int      `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int      `form:"pageSize,default=10" binding:"omitempty,min=1,max=100"`
}

// TagResponse represents a category tag with its popularity counter
type TagResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	RefCount int64  `json:"refCount"`
}
