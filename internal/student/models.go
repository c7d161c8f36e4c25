package student

import "time"

// Roles known to the platform.
const (
	RoleStudent  = "student"
	RoleEducator = "educator"
	RoleAdmin    = "admin"
)

// Student is a platform user. GenreInterests maps genre id to a 1-4 interest
// level; InitialLexileMeasure seeds the progress calculator until enough
// review history accumulates.
type Student struct {
	ID                   string         `json:"id"`
	Username             string         `json:"username"`
	PasswordHash         string         `json:"-"`
	Role                 string         `json:"role"`
	DisplayName          string         `json:"display_name,omitempty"`
	InitialLexileMeasure int            `json:"initial_lexile_measure"`
	GenreInterests       map[string]int `json:"genre_interests"`
	PrizePoints          int            `json:"prize_points"`
	CreatedAt            time.Time      `json:"created_at"`
}
