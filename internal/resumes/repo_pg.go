package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. File and resume data are stored
// as jsonb so the record can evolve without schema churn.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the resume record for a user.
func (r *PGRepo) Get(ctx context.Context, userId string) (Record, error) {
	const query = `
SELECT user_id, file, file_content, resume_data, stage, status, created_at, updated_at
FROM resume_records
WHERE user_id = $1`

	var rec Record
	var fileJSON []byte
	var fileContent sql.NullString
	var dataJSON []byte
	err := r.DB.QueryRowContext(ctx, query, userId).Scan(
		&rec.UserID,
		&fileJSON,
		&fileContent,
		&dataJSON,
		&rec.Stage,
		&rec.Status,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	if len(fileJSON) > 0 {
		var ref FileRef
		if err := json.Unmarshal(fileJSON, &ref); err != nil {
			return Record{}, fmt.Errorf("decode file ref: %w", err)
		}
		rec.File = &ref
	}
	if fileContent.Valid {
		content := fileContent.String
		rec.FileContent = &content
	}
	if len(dataJSON) > 0 {
		var data ResumeData
		if err := json.Unmarshal(dataJSON, &data); err != nil {
			return Record{}, fmt.Errorf("decode resume data: %w", err)
		}
		rec.ResumeData = &data
	}
	return rec, nil
}

// Put upserts the full record for a user.
func (r *PGRepo) Put(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO resume_records (user_id, file, file_content, resume_data, stage, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id) DO UPDATE SET
    file = EXCLUDED.file,
    file_content = EXCLUDED.file_content,
    resume_data = EXCLUDED.resume_data,
    stage = EXCLUDED.stage,
    status = EXCLUDED.status,
    updated_at = EXCLUDED.updated_at`

	var fileJSON any
	if rec.File != nil {
		encoded, err := json.Marshal(rec.File)
		if err != nil {
			return fmt.Errorf("encode file ref: %w", err)
		}
		fileJSON = encoded
	}

	var fileContent sql.NullString
	if rec.FileContent != nil {
		fileContent = sql.NullString{String: *rec.FileContent, Valid: true}
	}

	var dataJSON any
	if rec.ResumeData != nil {
		encoded, err := json.Marshal(rec.ResumeData)
		if err != nil {
			return fmt.Errorf("encode resume data: %w", err)
		}
		dataJSON = encoded
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.UserID,
		fileJSON,
		fileContent,
		dataJSON,
		rec.Stage,
		rec.Status,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

var _ Repo = (*PGRepo)(nil)
