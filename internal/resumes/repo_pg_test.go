package resumes

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoPutUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	content := "extracted"
	rec := Record{
		UserID:      "user-1",
		File:        &FileRef{Name: "resume.pdf", URL: "/api/v1/resume/file", Size: 1234, StorageKey: "user-1/abc"},
		FileContent: &content,
		ResumeData:  &ResumeData{Header: Header{Name: "Jane"}, Theme: DefaultTheme},
		Stage:       StageStructured,
		Status:      StatusDraft,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO resume_records").
		WithArgs(
			rec.UserID,
			sqlmock.AnyArg(), // file jsonb
			sqlmock.AnyArg(), // file_content
			sqlmock.AnyArg(), // resume_data jsonb
			rec.Stage,
			rec.Status,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Put(context.Background(), rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetDecodesJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"user_id", "file", "file_content", "resume_data", "stage", "status", "created_at", "updated_at",
	}).AddRow(
		"user-1",
		[]byte(`{"name":"resume.pdf","url":"/api/v1/resume/file","size":42,"storageKey":"user-1/abc"}`),
		"some text",
		[]byte(`{"header":{"name":"Jane","shortAbout":"","contacts":{},"skills":[]},"summary":"","workExperience":[],"education":[],"sectionVisibility":{"summary":true,"workExperience":true,"education":true,"skills":true,"projects":false,"certifications":false,"languages":false},"projects":[],"certifications":[],"languages":[],"theme":"default"}`),
		StageStructured,
		StatusLive,
		now,
		now,
	)

	mock.ExpectQuery("SELECT user_id, file, file_content, resume_data, stage, status, created_at, updated_at").
		WithArgs("user-1").
		WillReturnRows(rows)

	rec, err := repo.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.File == nil || rec.File.StorageKey != "user-1/abc" {
		t.Fatalf("expected file ref decoded, got %+v", rec.File)
	}
	if rec.FileContent == nil || *rec.FileContent != "some text" {
		t.Fatalf("expected file content decoded")
	}
	if rec.ResumeData == nil || rec.ResumeData.Header.Name != "Jane" {
		t.Fatalf("expected resume data decoded, got %+v", rec.ResumeData)
	}
	if rec.Status != StatusLive {
		t.Fatalf("expected status live, got %q", rec.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
