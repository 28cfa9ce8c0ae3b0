// Package domain defines the core entities of the book depository:
// authors, books, physical book copies, customers, and storage placements.
package domain

import "time"

// Entity holds the fields shared by every persisted row.
// IDs are assigned by the database on insert.
type Entity struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName identifies a person. The triple (first, last, middle) is unique
// per table; middle may be empty.
type FullName struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name,omitempty"`
}

// String renders the name in catalog order: "DOE John Paul".
func (n FullName) String() string {
	s := n.LastName + " " + n.FirstName
	if n.MiddleName != "" {
		s += " " + n.MiddleName
	}
	return s
}
