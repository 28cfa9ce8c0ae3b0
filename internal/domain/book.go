package domain

// Book is a bibliographic title record, distinct from the physical
// copies stored in the depository. A book cannot be deleted while any
// copy of it exists without the copies being removed in the same
// transaction.
type Book struct {
	Entity
	Title              string   `json:"title"`
	Publisher          string   `json:"publisher"`
	PlaceOfPublication string   `json:"place_of_publication"`
	PublishedYear      int      `json:"published_year"`
	ISBN               string   `json:"isbn"`
	Pages              int      `json:"pages"`
	Price              *float64 `json:"price,omitempty"`
	Language           string   `json:"language,omitempty"`

	// Hydrated relations, nil unless the read asked for them.
	Authors []*Author   `json:"authors,omitempty"`
	Copies  []*BookCopy `json:"copies,omitempty"`
}
