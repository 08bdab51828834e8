package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/inspektor-hq/inspektor/internal/models"
)

// PostgresHomeRepository serves the read-only aggregation queries behind the
// logged home view. It only reads tables populated by the case repository.
type PostgresHomeRepository struct {
	DB *sql.DB
}

// NewPostgresHomeRepository creates a new PostgresHomeRepository with the
// given database connection.
func NewPostgresHomeRepository(db *sql.DB) *PostgresHomeRepository {
	return &PostgresHomeRepository{DB: db}
}

// GetHomeOverview collects the sections and summary stats for the user's
// home view. Each section is capped at six rows.
func (r *PostgresHomeRepository) GetHomeOverview(ctx context.Context, userID int64) (*models.HomeOverview, error) {
	overview := &models.HomeOverview{
		ActiveCases:   []models.HomeActiveCase{},
		ResolvedCases: []models.HomeResolvedCase{},
		TopRatedCases: []models.HomeTopRatedCase{},
		CreatedCases:  []models.HomeCreatedCase{},
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.title, c.description, p.progress_percent
		FROM case_user_progress p
		INNER JOIN cases c ON c.id = p.case_id
		WHERE p.user_id = $1 AND p.progress_status = 'in_progress'
		ORDER BY p.updated_at DESC, c.id DESC
		LIMIT 6
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("active cases: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c models.HomeActiveCase
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.ProgressPercent); err != nil {
			return nil, fmt.Errorf("scan active case: %w", err)
		}
		overview.ActiveCases = append(overview.ActiveCases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("active cases: %w", err)
	}

	rows, err = r.DB.QueryContext(ctx, `
		SELECT
			c.id,
			c.title,
			ROUND(COALESCE(p.user_rating, c.average_rating)::numeric, 1),
			c.rating_count
		FROM case_user_progress p
		INNER JOIN cases c ON c.id = p.case_id
		WHERE p.user_id = $1 AND p.progress_status = 'resolved'
		ORDER BY p.updated_at DESC, c.id DESC
		LIMIT 6
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("resolved cases: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c models.HomeResolvedCase
		if err := rows.Scan(&c.ID, &c.Title, &c.Rating, &c.Reviews); err != nil {
			return nil, fmt.Errorf("scan resolved case: %w", err)
		}
		overview.ResolvedCases = append(overview.ResolvedCases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolved cases: %w", err)
	}

	rows, err = r.DB.QueryContext(ctx, `
		SELECT
			c.id,
			c.title,
			ROUND(c.average_rating::numeric, 1),
			c.rating_count,
			u.first_name,
			u.last_name
		FROM cases c
		INNER JOIN users u ON u.id = c.author_user_id
		WHERE c.publication_status = 'published'
		ORDER BY c.average_rating DESC, c.rating_count DESC, c.id DESC
		LIMIT 6
	`)
	if err != nil {
		return nil, fmt.Errorf("top rated cases: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c models.HomeTopRatedCase
		var firstName, lastName string
		if err := rows.Scan(&c.ID, &c.Title, &c.Rating, &c.Reviews, &firstName, &lastName); err != nil {
			return nil, fmt.Errorf("scan top rated case: %w", err)
		}
		c.Author = firstName + " " + lastName
		overview.TopRatedCases = append(overview.TopRatedCases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top rated cases: %w", err)
	}

	rows, err = r.DB.QueryContext(ctx, `
		SELECT
			c.id,
			c.title,
			c.publication_status,
			ROUND(c.average_rating::numeric, 1),
			c.rating_count
		FROM cases c
		WHERE c.author_user_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT 6
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("created cases: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c models.HomeCreatedCase
		if err := rows.Scan(&c.ID, &c.Title, &c.Status, &c.Rating, &c.Reviews); err != nil {
			return nil, fmt.Errorf("scan created case: %w", err)
		}
		overview.CreatedCases = append(overview.CreatedCases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("created cases: %w", err)
	}

	var avgResolved sql.NullFloat64
	err = r.DB.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN progress_status = 'in_progress' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN progress_status = 'resolved' THEN 1 ELSE 0 END), 0),
			ROUND(AVG(CASE WHEN progress_status = 'resolved' THEN user_rating END)::numeric, 1)
		FROM case_user_progress
		WHERE user_id = $1
	`, userID).Scan(&overview.Stats.ActiveCount, &overview.Stats.ResolvedCount, &avgResolved)
	if err != nil {
		return nil, fmt.Errorf("progress stats: %w", err)
	}
	if avgResolved.Valid {
		overview.Stats.AverageResolvedRating = &avgResolved.Float64
	}

	err = r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM cases WHERE author_user_id = $1
	`, userID).Scan(&overview.Stats.CreatedCount)
	if err != nil {
		return nil, fmt.Errorf("created stats: %w", err)
	}

	return overview, nil
}
