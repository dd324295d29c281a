package models

import "time"

// PrintDistribution records that a student received physical print material
// for a print-category event. Name and roll are snapshots from the time of
// distribution.
type PrintDistribution struct {
	ID            string    `json:"id"`
	Scope         string    `json:"scope"`
	StudentID     string    `json:"student_id"`
	StudentName   string    `json:"student_name"`
	StudentRoll   string    `json:"student_roll"`
	EventID       string    `json:"event_id"`
	EventName     string    `json:"event_name"`
	DistributedAt time.Time `json:"distributed_at"`
}
