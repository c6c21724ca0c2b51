package domain

// Book is a catalog entry. Books are immutable from the reading-list
// perspective; only the seed tool writes them.
type Book struct {
	Model
	Title         string `json:"title"`
	Author        string `json:"author"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`
	PageCount     int    `json:"pageCount,omitempty"`
	Publisher     string `json:"publisher,omitempty"`
	Synopsis      string `json:"synopsis,omitempty"`
}
