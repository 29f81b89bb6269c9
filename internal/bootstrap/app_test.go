package bootstrap

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	sharedauth "folio-backend/internal/shared/auth"
	"folio-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		LLMProvider:     "gemini",
		LLMModel:        "gemini-2.0-flash-lite",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		UIRedirectURL:   "http://localhost:5173/auth/callback",
		PublicBaseURL:   "http://localhost:8080",
	}

	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func signTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := sharedauth.Claims{
		Email: "jane.doe@example.com",
		Name:  "Jane Doe",
	}
	claims.Subject = userID
	token, err := sharedauth.SignJWT(claims)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestHealthEndpoint(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestResumeRoutesRequireAuth(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resume", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestUploadThenFetchResume(t *testing.T) {
	app := buildTestApp(t)
	token := signTestToken(t, "google:upload-user")

	getResp := doAuthed(t, app, http.MethodGet, "/api/v1/resume", nil, "", token)
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200 on empty fetch, got %d", getResp.Code)
	}
	var empty map[string]any
	if err := json.NewDecoder(getResp.Body).Decode(&empty); err != nil {
		t.Fatalf("decode empty fetch: %v", err)
	}
	if empty["resume"] != nil {
		t.Fatalf("expected resume=null before upload, got %v", empty["resume"])
	}

	body, contentType := pdfUploadBody(t, "resume.pdf", []byte("%PDF-1.4\nfake body"))
	upResp := doAuthed(t, app, http.MethodPost, "/api/v1/resume/file", body, contentType, token)
	if upResp.Code != http.StatusCreated {
		t.Fatalf("expected 201 on upload, got %d: %s", upResp.Code, upResp.Body.String())
	}

	getResp = doAuthed(t, app, http.MethodGet, "/api/v1/resume", nil, "", token)
	var fetched struct {
		Resume struct {
			Stage string `json:"stage"`
			File  *struct {
				Name string `json:"name"`
			} `json:"file"`
		} `json:"resume"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode fetch: %v", err)
	}
	if fetched.Resume.Stage != "uploaded" {
		t.Fatalf("expected stage uploaded, got %q", fetched.Resume.Stage)
	}
	if fetched.Resume.File == nil || fetched.Resume.File.Name != "resume.pdf" {
		t.Fatalf("expected stored file name resume.pdf, got %+v", fetched.Resume.File)
	}
}

func TestProcessResumeRejectsUnreadablePDF(t *testing.T) {
	app := buildTestApp(t)
	token := signTestToken(t, "google:process-user")

	body, contentType := pdfUploadBody(t, "resume.pdf", []byte("%PDF-1.4\nnot a real pdf"))
	upResp := doAuthed(t, app, http.MethodPost, "/api/v1/resume/file", body, contentType, token)
	if upResp.Code != http.StatusCreated {
		t.Fatalf("expected 201 on upload, got %d", upResp.Code)
	}

	procResp := doAuthed(t, app, http.MethodPost, "/api/v1/process-resume", nil, "", token)
	if procResp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", procResp.Code, procResp.Body.String())
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(procResp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Error.Code != "extraction_failed" {
		t.Fatalf("expected extraction_failed, got %q", payload.Error.Code)
	}
}

func TestProcessResumeWithoutUpload(t *testing.T) {
	app := buildTestApp(t)
	token := signTestToken(t, "google:no-upload")

	resp := doAuthed(t, app, http.MethodPost, "/api/v1/process-resume", nil, "", token)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Error.Code != "missing_upload" {
		t.Fatalf("expected missing_upload, got %q", payload.Error.Code)
	}
}

func doAuthed(t *testing.T, app *App, method, path string, body *bytes.Buffer, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func pdfUploadBody(t *testing.T, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}
