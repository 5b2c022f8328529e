package catalog

import "time"

// Category classifies works by discipline/field. Categories form a tree
// via ParentID. A category referenced by any work is never physically
// deleted; it is marked inactive instead so historical records stay valid.
type Category struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	ParentID    *string   `json:"parent_id,omitempty" db:"parent_id"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
