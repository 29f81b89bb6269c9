package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"folio-backend/internal/llm"
	"folio-backend/internal/resumes"
)

// Client implements llm.Client using the Gemini API with a JSON response
// schema so the model output decodes directly into resume data.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini-backed client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// GenerateResume asks Gemini to structure raw resume text.
func (c *Client) GenerateResume(ctx context.Context, resumeText string) (resumes.ResumeData, error) {
	prompt := llm.BuildResumePrompt(resumeText)

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.2),
		ResponseMIMEType: "application/json",
		ResponseSchema:   resumeSchema,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return resumes.ResumeData{}, fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil {
		return resumes.ResumeData{}, llm.ErrEmptyResult
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return resumes.ResumeData{}, llm.ErrEmptyResult
	}

	var data resumes.ResumeData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return resumes.ResumeData{}, fmt.Errorf("decode gemini response: %w", err)
	}
	if data.Header.Name == "" && data.Summary == "" && len(data.WorkExperience) == 0 {
		return resumes.ResumeData{}, llm.ErrEmptyResult
	}

	data.Normalize()
	return data, nil
}

var _ llm.Client = (*Client)(nil)
