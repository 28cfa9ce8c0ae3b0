package domain

import "fmt"

// PlacementStatus is the occupancy state of one storage slot.
type PlacementStatus string

// Placement statuses.
const (
	PlacementFree     PlacementStatus = "free"
	PlacementOccupied PlacementStatus = "occupied"
	PlacementReserved PlacementStatus = "reserved"
)

// ParsePlacementStatus validates a wire value.
func ParsePlacementStatus(s string) (PlacementStatus, error) {
	switch PlacementStatus(s) {
	case PlacementFree, PlacementOccupied, PlacementReserved:
		return PlacementStatus(s), nil
	}
	return "", fmt.Errorf("unknown placement status %q", s)
}

// Placement is one physical storage slot in the depository, identified
// by its (line, column, shelf, position) coordinate. At most one book
// copy references a placement at a time.
type Placement struct {
	Entity
	Line     string          `json:"line"`
	Column   int             `json:"column"`
	Shelf    string          `json:"shelf"`
	Position int             `json:"position"`
	Status   PlacementStatus `json:"status"`
}

// Coordinate renders the slot address, e.g. "B-3-F-12".
func (p *Placement) Coordinate() string {
	return fmt.Sprintf("%s-%d-%s-%d", p.Line, p.Column, p.Shelf, p.Position)
}
