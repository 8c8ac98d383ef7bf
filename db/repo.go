package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(conn *gorm.DB) *Repo { return &Repo{DB: conn} }

var (
	// ErrNotFound: the id does not name a stored record.
	ErrNotFound = errors.New("record not found")
	// ErrBookUnavailable: decrement requested on a missing or zero-count book.
	ErrBookUnavailable = errors.New("book unavailable")
	// ErrReaderNotEligible: reader unknown or not active.
	ErrReaderNotEligible = errors.New("reader not eligible")
	// ErrHasOpenIssues: deletion refused while open issues reference the record.
	ErrHasOpenIssues = errors.New("record has open issues")
	// ErrInvalidInput: empty required fields or a negative count.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidReturnDate: planned return date not after the issue date.
	ErrInvalidReturnDate = errors.New("planned return date must be after issue date")
	// ErrConsistencyFault: a rollback failed after inventory was mutated.
	// Inventory may have drifted; never masked as a generic failure.
	ErrConsistencyFault = errors.New("consistency fault")
)

// DateOnly truncates t to its calendar date in UTC. All loan dates are
// calendar dates.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today is the current UTC calendar date.
func Today() time.Time { return DateOnly(time.Now()) }

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
