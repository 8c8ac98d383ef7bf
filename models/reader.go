package models

import "time"

const (
	ReaderActive    = "active"
	ReaderSuspended = "suspended"
)

type Reader struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	FullName         string    `gorm:"size:100;not null" json:"fullName"`
	Phone            string    `gorm:"size:20" json:"phone,omitempty"`
	Email            string    `gorm:"size:100" json:"email,omitempty"`
	Address          string    `gorm:"type:text" json:"address,omitempty"`
	RegistrationDate time.Time `gorm:"type:date;not null" json:"registrationDate"`
	Status           string    `gorm:"size:20;not null;default:'active'" json:"status"`

	// Open issues held right now; computed on read, never stored.
	BooksCount int64 `gorm:"-" json:"booksCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Reader) TableName() string { return ReaderTable }
