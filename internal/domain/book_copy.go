package domain

import "fmt"

// CopyStatus is the lending state of a physical copy.
type CopyStatus string

// Copy statuses. A copy holds a placement iff it is available and a
// customer iff it is borrowed; lost and unknown copies hold neither.
const (
	CopyAvailable CopyStatus = "available"
	CopyBorrowed  CopyStatus = "borrowed"
	CopyLost      CopyStatus = "lost"
	CopyUnknown   CopyStatus = "unknown"
)

// ParseCopyStatus validates a wire value.
func ParseCopyStatus(s string) (CopyStatus, error) {
	switch CopyStatus(s) {
	case CopyAvailable, CopyBorrowed, CopyLost, CopyUnknown:
		return CopyStatus(s), nil
	}
	return "", fmt.Errorf("unknown copy status %q", s)
}

// CopyStatement is the physical condition grade of a copy, independent
// of its lending status.
type CopyStatement string

// Condition grades, roughly ordered from best to worst.
const (
	StatementNew      CopyStatement = "new"
	StatementGood     CopyStatement = "good"
	StatementDamaged  CopyStatement = "damaged"
	StatementRepair   CopyStatement = "repair"
	StatementUnusable CopyStatement = "unusable"
)

// ParseCopyStatement validates a wire value.
func ParseCopyStatement(s string) (CopyStatement, error) {
	switch CopyStatement(s) {
	case StatementNew, StatementGood, StatementDamaged, StatementRepair, StatementUnusable:
		return CopyStatement(s), nil
	}
	return "", fmt.Errorf("unknown copy statement %q", s)
}

// CanTransitionTo reports whether a condition change from s to target is
// legal. New copies may be graded freely; a graded copy never goes back
// to new; damaged and unusable copies may be sent to repair; damaged
// copies may be written down to unusable. Repair has no outgoing
// transitions.
func (s CopyStatement) CanTransitionTo(target CopyStatement) bool {
	switch {
	case s == StatementNew:
		return true
	case s == StatementGood:
		return target != StatementNew
	case (s == StatementDamaged || s == StatementUnusable) && target == StatementRepair:
		return true
	case s == StatementDamaged && target == StatementUnusable:
		return true
	}
	return false
}

// BookCopy is one physical instance of a book. Exactly one of
// PlacementID and CustomerID is set, or neither.
type BookCopy struct {
	Entity
	BookID      int64         `json:"book_id"`
	Status      CopyStatus    `json:"status"`
	Statement   CopyStatement `json:"statement"`
	PlacementID *int64        `json:"placement_id,omitempty"`
	CustomerID  *int64        `json:"customer_id,omitempty"`

	// Hydrated relations, nil unless the read asked for them.
	Book      *Book      `json:"book,omitempty"`
	Placement *Placement `json:"placement,omitempty"`
	Customer  *Customer  `json:"customer,omitempty"`
}
