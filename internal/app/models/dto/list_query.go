package dto

// ListQuery carries the shared pagination/search parameters of every
// listing endpoint. A zero Limit means no page size cap. SortOrder follows
// the 1/-1 convention; anything non-positive sorts descending.
type ListQuery struct {
	Search    string `form:"search"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	SortBy    string `form:"sortBy"`
	SortOrder int    `form:"sortOrder"`
}

// FileUpload is an uploaded document already read off the wire. Workflow
// services only ever see this shape, not transport types.
type FileUpload struct {
	Filename string
	Data     []byte
}
