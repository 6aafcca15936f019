// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// User is the core entity in the system, representing one person on campus.
// Its ID is the opaque subject identifier issued by the external identity
// provider; exactly one User exists per identity ID.
type User struct {
	ID        string    // Identity-provider UID. Never generated locally.
	Name      string    // Display name.
	Email     string    // Primary contact email, asserted by the identity provider.
	Phone     string    // Optional contact phone.
	College   string    // Optional campus / college affiliation.
	Role      Role      // The persisted role; authorization reads this, never client claims.
	Verified  bool      // True iff Email ends with the configured institution suffix.
	CreatedAt time.Time // Timestamp of when this user account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}

// EmailMatchesCampus reports whether the given email belongs to the campus
// domain identified by suffix (e.g. ".edu").
func EmailMatchesCampus(email, suffix string) bool {
	if email == "" || suffix == "" {
		return false
	}

	return strings.HasSuffix(strings.ToLower(email), strings.ToLower(suffix))
}
