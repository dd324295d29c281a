package models

import "time"

// Student represents an enrolled student. Roll numbers are unique within a
// class scope. Students are hard-deleted; payment and distribution rows keep
// their own name/roll snapshots.
type Student struct {
	ID        string    `json:"id"`
	Scope     string    `json:"scope"`
	RollNo    string    `json:"roll_no"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Class     string    `json:"class"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
