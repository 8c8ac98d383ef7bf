package db

import (
	"context"

	"gorm.io/gorm"

	"libtool/models"
)

type StatsReport struct {
	Books struct {
		Total     int64 `json:"total"`
		Available int64 `json:"available"`
	} `json:"books"`
	Readers struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
	} `json:"readers"`
	Issues struct {
		Total    int64 `json:"total"`
		Current  int64 `json:"current"`
		Overdue  int64 `json:"overdue"`
		Returned int64 `json:"returned"`
	} `json:"issues"`
	Genres map[string]int64 `json:"genres"`
}

// GenreUnknown buckets books without a genre in the histogram.
const GenreUnknown = "uncategorized"

// Stats aggregates current counts by entity and status plus a genre
// histogram. Pure read, no stored state of its own.
func (r *Repo) Stats(ctx context.Context) (*StatsReport, error) {
	conn := r.DB.WithContext(ctx)
	report := &StatsReport{Genres: map[string]int64{}}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&report.Books.Total, conn.Model(&models.Book{})},
		{&report.Books.Available, conn.Model(&models.Book{}).Where("status = ?", models.BookAvailable)},
		{&report.Readers.Total, conn.Model(&models.Reader{})},
		{&report.Readers.Active, conn.Model(&models.Reader{}).Where("status = ?", models.ReaderActive)},
		{&report.Issues.Total, conn.Model(&models.Issue{})},
		{&report.Issues.Current, conn.Model(&models.Issue{}).Where("status = ?", models.IssueIssued)},
		{&report.Issues.Overdue, conn.Model(&models.Issue{}).Where("status = ?", models.IssueOverdue)},
		{&report.Issues.Returned, conn.Model(&models.Issue{}).Where("status = ?", models.IssueReturned)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var genres []struct {
		Genre string
		N     int64
	}
	if err := conn.Model(&models.Book{}).
		Select("genre, COUNT(*) AS n").
		Group("genre").
		Scan(&genres).Error; err != nil {
		return nil, err
	}
	for _, g := range genres {
		name := g.Genre
		if name == "" {
			name = GenreUnknown
		}
		report.Genres[name] += g.N
	}

	return report, nil
}
