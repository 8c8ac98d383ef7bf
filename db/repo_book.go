package db

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"libtool/models"
)

type CreateBookInput struct {
	Name   string
	Author string
	Genre  string
	Count  int
}

func (r *Repo) CreateBook(ctx context.Context, in CreateBookInput) (*models.Book, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Author) == "" || in.Count < 0 {
		return nil, ErrInvalidInput
	}
	b := &models.Book{
		ID:     uuid.NewString(),
		Name:   in.Name,
		Author: in.Author,
		Genre:  in.Genre,
		Count:  in.Count,
		Status: models.BookStatusFor(in.Count),
	}
	if err := r.DB.WithContext(ctx).Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Repo) FindBookByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *Repo) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&books).Error
	return books, err
}

func (r *Repo) CountBooks(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Book{}).Count(&n).Error
	return n, err
}

// UpdateBookInput is the full set of mutable book fields. Status is not
// here: it is recomputed from Count on every write.
type UpdateBookInput struct {
	Name   string
	Author string
	Genre  string
	Count  int
}

func (r *Repo) UpdateBook(ctx context.Context, id string, in UpdateBookInput) (*models.Book, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Author) == "" || in.Count < 0 {
		return nil, ErrInvalidInput
	}
	res := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":   in.Name,
			"author": in.Author,
			"genre":  in.Genre,
			"count":  in.Count,
			"status": models.BookStatusFor(in.Count),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindBookByID(ctx, id)
}

// DeleteBook refuses to remove a book that still has open issues; the loan
// records would otherwise dangle. Missing book reports false, not an error.
func (r *Repo) DeleteBook(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		open, err := hasOpenIssues(tx, "book_id", id)
		if err != nil {
			return err
		}
		if open {
			return ErrHasOpenIssues
		}
		res := tx.Delete(&models.Book{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// DecrementBook takes one unit off the shelf and recomputes the status.
func (r *Repo) DecrementBook(ctx context.Context, id string) (*models.Book, error) {
	if err := decrementBook(r.DB.WithContext(ctx), id); err != nil {
		return nil, err
	}
	return r.FindBookByID(ctx, id)
}

// IncrementBook puts one unit back on the shelf.
func (r *Repo) IncrementBook(ctx context.Context, id string) (*models.Book, error) {
	if err := incrementBook(r.DB.WithContext(ctx), id); err != nil {
		return nil, err
	}
	return r.FindBookByID(ctx, id)
}

// decrementBook is the serialization point for concurrent issues: a single
// guarded UPDATE, so two callers cannot both take the last unit. Zero rows
// means the book is missing or the shelf is empty.
func decrementBook(tx *gorm.DB, bookID string) error {
	res := tx.Model(&models.Book{}).
		Where("id = ? AND count > 0", bookID).
		Updates(map[string]any{
			"count":  gorm.Expr("count - 1"),
			"status": gorm.Expr("CASE WHEN count - 1 = 0 THEN ? ELSE ? END", models.BookIssued, models.BookAvailable),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookUnavailable
	}
	return nil
}

func incrementBook(tx *gorm.DB, bookID string) error {
	res := tx.Model(&models.Book{}).
		Where("id = ?", bookID).
		Updates(map[string]any{
			"count":  gorm.Expr("count + 1"),
			"status": models.BookAvailable,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
