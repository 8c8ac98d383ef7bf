package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"libtool/models"
)

// IssueRow is an issue projected with display names joined in at read time.
// The names are never stored on the issue itself.
type IssueRow struct {
	ID                string     `json:"id"`
	BookID            string     `json:"bookId"`
	ReaderID          string     `json:"readerId"`
	IssueDate         time.Time  `json:"issueDate"`
	PlannedReturnDate time.Time  `json:"plannedReturnDate"`
	ActualReturnDate  *time.Time `json:"actualReturnDate,omitempty"`
	Status            string     `json:"status"`
	BookName          string     `json:"bookName"`
	ReaderName        string     `json:"readerName"`
}

const issueRowSelect = `
	i.id, i.book_id, i.reader_id, i.issue_date, i.planned_return_date,
	i.actual_return_date, i.status,
	COALESCE(b.name || ' - ' || b.author, 'Unknown') AS book_name,
	COALESCE(rd.full_name, 'Unknown') AS reader_name`

func (r *Repo) issueRows(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table(models.IssueTable+" i").
		Select(issueRowSelect).
		Joins("LEFT JOIN " + models.BookTable + " b ON b.id = i.book_id").
		Joins("LEFT JOIN " + models.ReaderTable + " rd ON rd.id = i.reader_id")
}

func (r *Repo) ListIssues(ctx context.Context) ([]IssueRow, error) {
	var rows []IssueRow
	err := r.issueRows(ctx).Order("i.issue_date DESC, i.id").Scan(&rows).Error
	return rows, err
}

func (r *Repo) FindIssueByID(ctx context.Context, id string) (*IssueRow, error) {
	var row IssueRow
	res := r.issueRows(ctx).Where("i.id = ?", id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &row, nil
}

type IssueBookInput struct {
	BookID            string
	ReaderID          string
	IssueDate         time.Time // zero means today
	PlannedReturnDate time.Time
}

// IssueBook validates the reader, takes a unit off the shelf and creates the
// loan record as one atomic unit. Nothing is decremented when any step
// refuses, and a decrement that cannot be rolled back is reported as
// ErrConsistencyFault rather than the original cause.
func (r *Repo) IssueBook(ctx context.Context, in IssueBookInput) (*IssueRow, error) {
	issueDate := Today()
	if !in.IssueDate.IsZero() {
		issueDate = DateOnly(in.IssueDate)
	}
	planned := DateOnly(in.PlannedReturnDate)
	if !planned.After(issueDate) {
		return nil, ErrInvalidReturnDate
	}

	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	// 1) reader must exist and be active before the shelf is touched
	var rd models.Reader
	if err := tx.First(&rd, "id = ?", in.ReaderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrReaderNotEligible
		}
		return nil, rollback(tx, err)
	}
	if rd.Status != models.ReaderActive {
		return nil, rollback(tx, ErrReaderNotEligible)
	}

	// 2) compare-and-decrement; refuses when no unit remains
	if err := decrementBook(tx, in.BookID); err != nil {
		return nil, rollback(tx, err)
	}

	// 3) the loan record itself
	issue := models.Issue{
		ID:                uuid.NewString(),
		BookID:            in.BookID,
		ReaderID:          in.ReaderID,
		IssueDate:         issueDate,
		PlannedReturnDate: planned,
		Status:            models.IssueIssued,
	}
	if err := tx.Create(&issue).Error; err != nil {
		return nil, rollback(tx, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit issue: %w", err)
	}
	return r.FindIssueByID(ctx, issue.ID)
}

// rollback undoes tx and reports cause. A failed rollback after the shelf
// count was already mutated leaves inventory drifted, which is surfaced
// distinctly.
func rollback(tx *gorm.DB, cause error) error {
	if err := tx.Rollback().Error; err != nil {
		return fmt.Errorf("%w: rollback failed (%v) after: %v", ErrConsistencyFault, err, cause)
	}
	return cause
}

// ReturnBook closes the issue and puts the unit back on the shelf, both in
// one transaction. Unknown or already-returned issues are a false no-op, so
// a second return never double-increments the shelf.
func (r *Repo) ReturnBook(ctx context.Context, issueID string, returnedAt time.Time) (bool, error) {
	day := Today()
	if !returnedAt.IsZero() {
		day = DateOnly(returnedAt)
	}

	returned := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var issue models.Issue
		if err := tx.First(&issue, "id = ?", issueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if issue.Status == models.IssueReturned {
			return nil
		}

		res := tx.Model(&models.Issue{}).
			Where("id = ? AND status <> ?", issueID, models.IssueReturned).
			Updates(map[string]any{
				"status":             models.IssueReturned,
				"actual_return_date": day,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// raced with another return
			return nil
		}
		if err := incrementBook(tx, issue.BookID); err != nil {
			return err
		}
		returned = true
		return nil
	})
	return returned, err
}

// SweepOverdue flips every issued loan whose planned return date has passed
// to overdue. One status-setting UPDATE: idempotent, no counter side
// effects, safe to run concurrently with issue/return.
func (r *Repo) SweepOverdue(ctx context.Context, today time.Time) (int64, error) {
	day := Today()
	if !today.IsZero() {
		day = DateOnly(today)
	}
	res := r.DB.WithContext(ctx).Model(&models.Issue{}).
		Where("status = ? AND planned_return_date < ?", models.IssueIssued, day).
		Update("status", models.IssueOverdue)
	return res.RowsAffected, res.Error
}

// MarkOverdue forces a single issued -> overdue transition. False when the
// issue is missing, returned or already overdue.
func (r *Repo) MarkOverdue(ctx context.Context, issueID string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Issue{}).
		Where("id = ? AND status = ?", issueID, models.IssueIssued).
		Update("status", models.IssueOverdue)
	return res.RowsAffected > 0, res.Error
}

func hasOpenIssues(tx *gorm.DB, column, id string) (bool, error) {
	var n int64
	err := tx.Model(&models.Issue{}).
		Where(column+" = ? AND actual_return_date IS NULL", id).
		Count(&n).Error
	return n > 0, err
}
