// internal/model/blacklist.go
package model

import "time"

// BlacklistEntry keeps a dismissed entity from resurfacing in later
// sourcing passes. Matching uses phone and website as well as the
// normalized name, so minor name variations still hit.
type BlacklistEntry struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Website   string    `db:"website" json:"website"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
