// Package db handles the PostgreSQL connection and schema bootstrap.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at);

CREATE TABLE IF NOT EXISTS cases (
    id BIGSERIAL PRIMARY KEY,
    author_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    publication_status TEXT NOT NULL DEFAULT 'draft'
        CHECK (publication_status IN ('draft', 'published')),
    average_rating DOUBLE PRECISION NOT NULL DEFAULT 0
        CHECK (average_rating >= 0 AND average_rating <= 5),
    rating_count BIGINT NOT NULL DEFAULT 0
        CHECK (rating_count >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_cases_author_user_id ON cases(author_user_id);
CREATE INDEX IF NOT EXISTS idx_cases_publication_status ON cases(publication_status);

CREATE TABLE IF NOT EXISTS case_people (
    id BIGSERIAL PRIMARY KEY,
    case_id BIGINT NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
    full_name TEXT NOT NULL,
    apparent_role TEXT NOT NULL DEFAULT 'unknown'
        CHECK (apparent_role IN ('unknown', 'suspect', 'victim', 'witness')),
    biography TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_case_people_case_id ON case_people(case_id);

CREATE TABLE IF NOT EXISTS case_documents (
    id BIGSERIAL PRIMARY KEY,
    case_id BIGINT NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
    document_type TEXT NOT NULL
        CHECK (
            document_type IN (
                'police_report',
                'forensic_report',
                'dossier',
                'witness_statement',
                'suspect_statement',
                'victim_statement'
            )
        ),
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    sequence_order INTEGER NOT NULL DEFAULT 1
        CHECK (sequence_order > 0),
    is_unlocked_by_default BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_case_documents_case_id ON case_documents(case_id);
CREATE INDEX IF NOT EXISTS idx_case_documents_case_order ON case_documents(case_id, sequence_order);

CREATE TABLE IF NOT EXISTS case_timeline_items (
    id BIGSERIAL PRIMARY KEY,
    case_id BIGINT NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
    item_type TEXT NOT NULL
        CHECK (item_type IN ('document', 'person')),
    document_id BIGINT REFERENCES case_documents(id) ON DELETE CASCADE,
    person_id BIGINT REFERENCES case_people(id) ON DELETE CASCADE,
    unlock_order INTEGER NOT NULL
        CHECK (unlock_order > 0),
    unlock_note TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    CHECK (
        (item_type = 'document' AND document_id IS NOT NULL AND person_id IS NULL)
        OR
        (item_type = 'person' AND person_id IS NOT NULL AND document_id IS NULL)
    ),
    UNIQUE (case_id, unlock_order)
);

CREATE INDEX IF NOT EXISTS idx_case_timeline_case_id ON case_timeline_items(case_id);

CREATE TABLE IF NOT EXISTS case_user_progress (
    id BIGSERIAL PRIMARY KEY,
    case_id BIGINT NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    progress_status TEXT NOT NULL
        CHECK (progress_status IN ('in_progress', 'resolved')),
    progress_percent INTEGER NOT NULL DEFAULT 0
        CHECK (progress_percent >= 0 AND progress_percent <= 100),
    user_rating DOUBLE PRECISION
        CHECK (user_rating >= 0 AND user_rating <= 5),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (case_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_case_user_progress_user_status
    ON case_user_progress(user_id, progress_status);
`

// InitPostgres opens a PostgreSQL connection, verifies it and applies the
// schema. Referential integrity (cascading deletes, unique unlock orders,
// one progress row per case and user) lives here, not in application code.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
