package db

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"libtool/models"
)

type CreateReaderInput struct {
	FullName string
	Phone    string
	Email    string
	Address  string
}

func (r *Repo) CreateReader(ctx context.Context, in CreateReaderInput) (*models.Reader, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, ErrInvalidInput
	}
	rd := &models.Reader{
		ID:               uuid.NewString(),
		FullName:         in.FullName,
		Phone:            in.Phone,
		Email:            in.Email,
		Address:          in.Address,
		RegistrationDate: Today(),
		Status:           models.ReaderActive,
	}
	if err := r.DB.WithContext(ctx).Create(rd).Error; err != nil {
		return nil, err
	}
	return rd, nil
}

func (r *Repo) FindReaderByID(ctx context.Context, id string) (*models.Reader, error) {
	var rd models.Reader
	if err := r.DB.WithContext(ctx).First(&rd, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	n, err := r.CountOpenIssuesByReader(ctx, id)
	if err != nil {
		return nil, err
	}
	rd.BooksCount = n
	return &rd, nil
}

// ListReaders attaches books_count (open issues held right now, overdue
// included) to every reader. One grouped query instead of one per row.
func (r *Repo) ListReaders(ctx context.Context) ([]models.Reader, error) {
	var readers []models.Reader
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&readers).Error; err != nil {
		return nil, err
	}

	var counts []struct {
		ReaderID string
		N        int64
	}
	if err := r.DB.WithContext(ctx).Model(&models.Issue{}).
		Select("reader_id, COUNT(*) AS n").
		Where("actual_return_date IS NULL").
		Group("reader_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byReader := make(map[string]int64, len(counts))
	for _, c := range counts {
		byReader[c.ReaderID] = c.N
	}
	for i := range readers {
		readers[i].BooksCount = byReader[readers[i].ID]
	}
	return readers, nil
}

func (r *Repo) CountOpenIssuesByReader(ctx context.Context, readerID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Issue{}).
		Where("reader_id = ? AND actual_return_date IS NULL", readerID).
		Count(&n).Error
	return n, err
}

// UpdateReaderInput is the full set of mutable reader fields.
type UpdateReaderInput struct {
	FullName string
	Phone    string
	Email    string
	Address  string
	Status   string
}

func (r *Repo) UpdateReader(ctx context.Context, id string, in UpdateReaderInput) (*models.Reader, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = models.ReaderActive
	}
	res := r.DB.WithContext(ctx).Model(&models.Reader{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"full_name": in.FullName,
			"phone":     in.Phone,
			"email":     in.Email,
			"address":   in.Address,
			"status":    status,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindReaderByID(ctx, id)
}

// DeleteReader follows the same policy as DeleteBook: no removal while the
// reader still holds open issues.
func (r *Repo) DeleteReader(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		open, err := hasOpenIssues(tx, "reader_id", id)
		if err != nil {
			return err
		}
		if open {
			return ErrHasOpenIssues
		}
		res := tx.Delete(&models.Reader{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
