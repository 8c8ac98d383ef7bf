package models

import "time"

const (
	BookTable   = "lib_books"
	ReaderTable = "lib_readers"
	IssueTable  = "lib_issues"
)

// Shelf status, derived from Count: issued iff no units remain.
const (
	BookAvailable = "available"
	BookIssued    = "issued"
)

type Book struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string `gorm:"size:200;not null" json:"name"`
	Author string `gorm:"size:100;not null" json:"author"`
	Genre  string `gorm:"size:50" json:"genre,omitempty"`
	Count  int    `gorm:"not null;default:1" json:"count"`                    // units currently on the shelf
	Status string `gorm:"size:20;not null;default:'available'" json:"status"` // never set directly, recomputed from Count

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Book) TableName() string { return BookTable }

// BookStatusFor returns the shelf status implied by an available count.
func BookStatusFor(count int) string {
	if count == 0 {
		return BookIssued
	}
	return BookAvailable
}
