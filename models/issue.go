package models

import "time"

// Issue lifecycle: issued -> returned, issued -> overdue -> returned.
// Nothing leaves "returned".
const (
	IssueIssued   = "issued"
	IssueReturned = "returned"
	IssueOverdue  = "overdue"
)

// Issue is one loan record: a single book unit out with a reader for a
// bounded period. BookID/ReaderID are immutable after creation.
type Issue struct {
	ID                string     `gorm:"type:uuid;primaryKey" json:"id"`
	BookID            string     `gorm:"type:uuid;index;not null" json:"bookId"`
	ReaderID          string     `gorm:"type:uuid;index;not null" json:"readerId"`
	IssueDate         time.Time  `gorm:"type:date;not null" json:"issueDate"`
	PlannedReturnDate time.Time  `gorm:"type:date;not null" json:"plannedReturnDate"`
	ActualReturnDate  *time.Time `gorm:"type:date;index" json:"actualReturnDate,omitempty"`
	Status            string     `gorm:"size:20;not null;default:'issued';index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Issue) TableName() string { return IssueTable }
