package models

// Collection groups products under a common title.
type Collection struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
