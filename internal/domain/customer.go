package domain

import "strings"

// countryCode is prepended to national numbers that start with a
// trunk "0".
const countryCode = "38"

// Customer is a registered borrower. Email and phone are unique;
// phone is stored in the canonical form produced by CanonicalPhone.
type Customer struct {
	Entity
	FullName
	Email string `json:"email"`
	Phone string `json:"phone"`

	// Copies currently borrowed by this customer. Populated by
	// hydrating reads, nil otherwise.
	BorrowedCopies []*BookCopy `json:"borrowed_copies,omitempty"`
}

// CanonicalPhone normalizes a phone number: all non-digit characters
// are stripped, a leading trunk "0" is replaced by the country code,
// and the digits are grouped with a single space after digit positions
// 2, 4, 7 and 9, e.g. "0441234567" -> "+380 44 123 45 67".
// The function is idempotent.
func CanonicalPhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	s := digits.String()
	if strings.HasPrefix(s, "0") {
		s = countryCode + s
	}

	var out strings.Builder
	out.Grow(len(s) + 5)
	out.WriteByte('+')
	for i := 0; i < len(s); i++ {
		out.WriteByte(s[i])
		if i < len(s)-1 && (i == 2 || i == 4 || i == 7 || i == 9) {
			out.WriteByte(' ')
		}
	}
	return out.String()
}
