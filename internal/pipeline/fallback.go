package pipeline

import (
	"strings"

	"folio-backend/internal/resumes"
)

// FallbackResume builds a deterministic placeholder resume used when the
// LLM cannot produce structured data. The user still gets a renderable
// page they can edit by hand.
func FallbackResume(id Identity) resumes.ResumeData {
	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = emailLocalPart(id.Email)
	}
	if name == "" {
		name = "user"
	}

	data := resumes.ResumeData{
		Header: resumes.Header{
			Name:       name,
			ShortAbout: "This is a short description of your profile",
			Location:   "",
			Contacts:   resumes.Contacts{},
			Skills:     []string{"Add your skills here"},
		},
		Summary:           "You should add a summary here",
		WorkExperience:    []resumes.WorkExperience{},
		Education:         []resumes.Education{},
		SectionVisibility: resumes.DefaultSectionVisibility(),
		Projects:          []resumes.Project{},
		Certifications:    []resumes.Certification{},
		Languages:         []resumes.Language{},
		Theme:             resumes.DefaultTheme,
	}
	return data
}

func emailLocalPart(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return ""
}
