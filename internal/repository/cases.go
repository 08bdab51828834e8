// Package repository provides PostgreSQL persistence for cases, users and
// the home overview.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inspektor-hq/inspektor/internal/models"
)

// ErrCaseNotFound is returned when no case matches the requested id, or when
// the case exists but belongs to a different author. The two situations are
// deliberately indistinguishable.
var ErrCaseNotFound = errors.New("case not found")

// PostgresCaseRepository implements case persistence against a PostgreSQL
// database.
type PostgresCaseRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresCaseRepository creates a new PostgresCaseRepository with the
// given database connection.
func NewPostgresCaseRepository(db *sql.DB) *PostgresCaseRepository {
	return &PostgresCaseRepository{DB: db}
}

const caseProjection = `
	SELECT
		c.id,
		c.author_user_id,
		u.first_name,
		u.last_name,
		c.title,
		c.description,
		c.publication_status,
		c.average_rating,
		c.rating_count,
		c.created_at,
		c.updated_at
	FROM cases c
	INNER JOIN users u ON u.id = c.author_user_id
`

func scanCase(row *sql.Row) (*models.Case, error) {
	var c models.Case
	err := row.Scan(
		&c.ID,
		&c.AuthorUserID,
		&c.AuthorFirstName,
		&c.AuthorLastName,
		&c.Title,
		&c.Description,
		&c.Status,
		&c.AverageRating,
		&c.RatingCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan case: %w", err)
	}
	return &c, nil
}

// FindCaseByID loads the case with the given id joined with its author's
// name. Returns ErrCaseNotFound if no such case exists.
func (r *PostgresCaseRepository) FindCaseByID(ctx context.Context, caseID int64) (*models.Case, error) {
	row := r.DB.QueryRowContext(ctx, caseProjection+`	WHERE c.id = $1`, caseID)
	return scanCase(row)
}

// FindCaseByIDForAuthor loads a case only when it belongs to the given
// author. A case owned by someone else yields ErrCaseNotFound, never a
// forbidden-style answer.
func (r *PostgresCaseRepository) FindCaseByIDForAuthor(ctx context.Context, caseID, authorUserID int64) (*models.Case, error) {
	row := r.DB.QueryRowContext(ctx, caseProjection+`	WHERE c.id = $1 AND c.author_user_id = $2`, caseID, authorUserID)
	return scanCase(row)
}

// CreateCaseWithDetails persists a validated case draft in a single
// transaction: the case row first, then people and documents in submission
// order collecting their generated ids, then timeline items with positional
// references translated into those ids, then the progress upserts. Any
// failure rolls the whole submission back; on success the committed case is
// reloaded and returned as the canonical projection.
func (r *PostgresCaseRepository) CreateCaseWithDetails(ctx context.Context, authorUserID int64, draft models.CaseDraft) (*models.Case, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var caseID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO cases (author_user_id, title, description, publication_status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, authorUserID, draft.Title, draft.Description, draft.Status).Scan(&caseID)
	if err != nil {
		return nil, fmt.Errorf("insert case: %w", err)
	}

	personIDs := make([]int64, 0, len(draft.People))
	for _, person := range draft.People {
		var personID int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO case_people (case_id, full_name, apparent_role, biography)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, caseID, person.FullName, person.Role, person.Biography).Scan(&personID)
		if err != nil {
			return nil, fmt.Errorf("insert person: %w", err)
		}
		personIDs = append(personIDs, personID)
	}

	documentIDs := make([]int64, 0, len(draft.Documents))
	for _, document := range draft.Documents {
		var documentID int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO case_documents (case_id, document_type, title, content, sequence_order, is_unlocked_by_default)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, caseID, document.Type, document.Title, document.Content, document.SequenceOrder, document.UnlockedByDefault).Scan(&documentID)
		if err != nil {
			return nil, fmt.Errorf("insert document: %w", err)
		}
		documentIDs = append(documentIDs, documentID)
	}

	for _, item := range draft.Timeline {
		// Positional references are valid here: the resolver checked them
		// against the submission before any write started.
		var target models.TimelineTarget
		switch item.ItemType {
		case models.TimelinePerson:
			target = models.PersonTarget(personIDs[item.SourceIndex])
		default:
			target = models.DocumentTarget(documentIDs[item.SourceIndex])
		}

		var documentID, personID sql.NullInt64
		if id, ok := target.DocumentID(); ok {
			documentID = sql.NullInt64{Int64: id, Valid: true}
		}
		if id, ok := target.PersonID(); ok {
			personID = sql.NullInt64{Int64: id, Valid: true}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO case_timeline_items (case_id, item_type, document_id, person_id, unlock_order, unlock_note)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, caseID, item.ItemType, documentID, personID, item.UnlockOrder, item.UnlockNote)
		if err != nil {
			return nil, fmt.Errorf("insert timeline item: %w", err)
		}
	}

	for _, entry := range draft.Progress {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO case_user_progress (case_id, user_id, progress_status, progress_percent, user_rating)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (case_id, user_id) DO UPDATE SET
				progress_status = EXCLUDED.progress_status,
				progress_percent = EXCLUDED.progress_percent,
				user_rating = EXCLUDED.user_rating,
				updated_at = now()
		`, caseID, entry.UserID, entry.Status, entry.Percent, entry.Rating)
		if err != nil {
			return nil, fmt.Errorf("upsert progress: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return r.FindCaseByID(ctx, caseID)
}
