package domain

// Author is a bibliographic author record. Authors and books form a
// many-to-many relation; an author cannot be deleted while any linked
// book exists.
type Author struct {
	Entity
	FullName

	// Books linked to this author. Populated by hydrating reads,
	// nil otherwise.
	Books []*Book `json:"books,omitempty"`
}
