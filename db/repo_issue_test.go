package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libtool/models"
)

func TestIssueBook_DecrementsInventoryAndCreatesIssue(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	book := seedBook(t, r, 1)
	reader := seedReader(t, r)
	today := Today()

	issue, err := r.IssueBook(ctx, IssueBookInput{
		BookID:            book.ID,
		ReaderID:          reader.ID,
		PlannedReturnDate: plusDays(today, 14),
	})
	require.NoError(t, err)

	assert.Equal(t, models.IssueIssued, issue.Status)
	assert.True(t, issue.IssueDate.Equal(today), "issue date: %v", issue.IssueDate)
	assert.True(t, issue.PlannedReturnDate.Equal(plusDays(today, 14)), "planned return: %v", issue.PlannedReturnDate)
	assert.Nil(t, issue.ActualReturnDate)
	assert.Equal(t, "The Master and Margarita - Bulgakov", issue.BookName)
	assert.Equal(t, "Anna Petrova", issue.ReaderName)

	got, err := r.FindBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count)
	assert.Equal(t, models.BookIssued, got.Status)
}

func TestIssueBook_UnavailableWhenNoCopies(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	book := seedBook(t, r, 0)
	reader := seedReader(t, r)

	_, err := r.IssueBook(ctx, IssueBookInput{
		BookID:            book.ID,
		ReaderID:          reader.ID,
		PlannedReturnDate: plusDays(Today(), 7),
	})
	require.ErrorIs(t, err, ErrBookUnavailable)

	got, err := r.FindBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count)

	issues, err := r.ListIssues(ctx)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestIssueBook_UnavailableWhenBookMissing(t *testing.T) {
	r := newTestRepo(t)
	reader := seedReader(t, r)

	_, err := r.IssueBook(context.Background(), IssueBookInput{
		BookID:            "00000000-0000-0000-0000-000000000000",
		ReaderID:          reader.ID,
		PlannedReturnDate: plusDays(Today(), 7),
	})
	require.ErrorIs(t, err, ErrBookUnavailable)
}

func TestIssueBook_ReaderNotEligible(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	book := seedBook(t, r, 1)

	t.Run("unknown reader", func(t *testing.T) {
		_, err := r.IssueBook(ctx, IssueBookInput{
			BookID:            book.ID,
			ReaderID:          "00000000-0000-0000-0000-000000000000",
			PlannedReturnDate: plusDays(Today(), 7),
		})
		require.ErrorIs(t, err, ErrReaderNotEligible)
	})

	t.Run("suspended reader", func(t *testing.T) {
		reader := seedReader(t, r)
		_, err := r.UpdateReader(ctx, reader.ID, UpdateReaderInput{
			FullName: reader.FullName,
			Status:   models.ReaderSuspended,
		})
		require.NoError(t, err)

		_, err = r.IssueBook(ctx, IssueBookInput{
			BookID:            book.ID,
			ReaderID:          reader.ID,
			PlannedReturnDate: plusDays(Today(), 7),
		})
		require.ErrorIs(t, err, ErrReaderNotEligible)
	})

	// no step leaked an inventory decrement
	got, err := r.FindBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, models.BookAvailable, got.Status)
}

func TestIssueBook_RejectsNonFutureReturnDate(t *testing.T) {
	r := newTestRepo(t)
	book := seedBook(t, r, 1)
	reader := seedReader(t, r)
	today := Today()

	tests := []struct {
		name string
		days int
	}{
		{"same day", 0},
		{"past", -3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.IssueBook(context.Background(), IssueBookInput{
				BookID:            book.ID,
				ReaderID:          reader.ID,
				PlannedReturnDate: plusDays(today, tc.days),
			})
			require.ErrorIs(t, err, ErrInvalidReturnDate)
		})
	}
}

func TestReturnBook_RoundTripRestoresInventory(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	book := seedBook(t, r, 1)
	reader := seedReader(t, r)
	today := Today()

	issue, err := r.IssueBook(ctx, IssueBookInput{
		BookID:            book.ID,
		ReaderID:          reader.ID,
		PlannedReturnDate: plusDays(today, 14),
	})
	require.NoError(t, err)

	ok, err := r.ReturnBook(ctx, issue.ID, today)
	require.NoError(t, err)
	require.True(t, ok)

	row, err := r.FindIssueByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IssueReturned, row.Status)
	require.NotNil(t, row.ActualReturnDate)
	assert.True(t, row.ActualReturnDate.Equal(today), "actual return: %v", row.ActualReturnDate)

	got, err := r.FindBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, models.BookAvailable, got.Status)
}

func TestReturnBook_SecondReturnIsNoOp(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	book := seedBook(t, r, 1)
	reader := seedReader(t, r)

	issue, err := r.IssueBook(ctx, IssueBookInput{
		BookID:            book.ID,
		ReaderID:          reader.ID,
		PlannedReturnDate: plusDays(Today(), 14),
	})
	require.NoError(t, err)

	ok, err := r.ReturnBook(ctx, issue.ID, Today())
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.ReturnBook(ctx, issue.ID, Today())
	require.NoError(t, err)
	assert.False(t, ok)

	// no double increment
	got, err := r.FindBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
}

func TestReturnBook_UnknownIssue(t *testing.T) {
	r := newTestRepo(t)
	ok, err := r.ReturnBook(context.Background(), "00000000-0000-0000-0000-000000000000", Today())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSweepOverdue_FlagsAndStaysIdempotent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	book := seedBook(t, r, 1)
	reader := seedReader(t, r)
	today := Today()

	issue, err := r.IssueBook(ctx, IssueBookInput{
		BookID:            book.ID,
		ReaderID:          reader.ID,
		PlannedReturnDate: plusDays(today, 14),
	})
	require.NoError(t, err)

	// nothing overdue yet
	n, err := r.SweepOverdue(ctx, plusDays(today, 14))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = r.SweepOverdue(ctx, plusDays(today, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	row, err := r.FindIssueByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IssueOverdue, row.Status)
	assert.Nil(t, row.ActualReturnDate)

	// book state untouched by the sweep
	got, err := r.FindBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count)
	assert.Equal(t, models.BookIssued, got.Status)

	// second run on the same day finds nothing
	n, err = r.SweepOverdue(ctx, plusDays(today, 20))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReturnBook_OverdueIssueStillReturnable(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	book := seedBook(t, r, 1)
	reader := seedReader(t, r)
	today := Today()

	issue, err := r.IssueBook(ctx, IssueBookInput{
		BookID:            book.ID,
		ReaderID:          reader.ID,
		PlannedReturnDate: plusDays(today, 14),
	})
	require.NoError(t, err)

	_, err = r.SweepOverdue(ctx, plusDays(today, 20))
	require.NoError(t, err)

	ok, err := r.ReturnBook(ctx, issue.ID, plusDays(today, 20))
	require.NoError(t, err)
	require.True(t, ok)

	row, err := r.FindIssueByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IssueReturned, row.Status)
	require.NotNil(t, row.ActualReturnDate)
	assert.True(t, row.ActualReturnDate.Equal(plusDays(today, 20)), "actual return: %v", row.ActualReturnDate)

	got, err := r.FindBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, models.BookAvailable, got.Status)
}

func TestMarkOverdue_OnlyFromIssued(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	book := seedBook(t, r, 2)
	reader := seedReader(t, r)

	issue, err := r.IssueBook(ctx, IssueBookInput{
		BookID:            book.ID,
		ReaderID:          reader.ID,
		PlannedReturnDate: plusDays(Today(), 14),
	})
	require.NoError(t, err)

	ok, err := r.MarkOverdue(ctx, issue.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// already overdue
	ok, err = r.MarkOverdue(ctx, issue.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// returned issues cannot be forced overdue
	_, err = r.ReturnBook(ctx, issue.ID, Today())
	require.NoError(t, err)
	ok, err = r.MarkOverdue(ctx, issue.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// unknown id
	ok, err = r.MarkOverdue(ctx, "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIssueBook_CountNeverGoesNegative(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	book := seedBook(t, r, 2)
	reader := seedReader(t, r)
	today := Today()

	for i := 0; i < 2; i++ {
		_, err := r.IssueBook(ctx, IssueBookInput{
			BookID:            book.ID,
			ReaderID:          reader.ID,
			PlannedReturnDate: plusDays(today, 7),
		})
		require.NoError(t, err)
	}

	// third take on an empty shelf refuses
	_, err := r.IssueBook(ctx, IssueBookInput{
		BookID:            book.ID,
		ReaderID:          reader.ID,
		PlannedReturnDate: plusDays(today, 7),
	})
	require.ErrorIs(t, err, ErrBookUnavailable)

	got, err := r.FindBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count)

	issues, err := r.ListIssues(ctx)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestListIssues_ProjectsDisplayNames(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	book := seedBook(t, r, 1)
	reader := seedReader(t, r)

	_, err := r.IssueBook(ctx, IssueBookInput{
		BookID:            book.ID,
		ReaderID:          reader.ID,
		PlannedReturnDate: plusDays(Today(), 7),
	})
	require.NoError(t, err)

	rows, err := r.ListIssues(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "The Master and Margarita - Bulgakov", rows[0].BookName)
	assert.Equal(t, "Anna Petrova", rows[0].ReaderName)
}
