package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/resume_v1.txt
	resumePromptV1 string
)

// BuildResumePrompt returns the full prompt for structuring raw resume text.
func BuildResumePrompt(resumeText string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(resumePromptV1))
	b.WriteString("\n\nResume text:\n")
	b.WriteString(resumeText)
	return b.String()
}
