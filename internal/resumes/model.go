package resumes

import (
	"net/url"
	"strings"
	"time"
)

// Pipeline stages for a resume record. The stage tracks how far the
// conversion pipeline has progressed; Status tracks public visibility.
const (
	StageEmpty      = "empty"
	StageUploaded   = "uploaded"
	StageExtracted  = "extracted"
	StageStructured = "structured"
)

// Publish status values. Anything other than StatusLive is invisible publicly.
const (
	StatusDraft = "draft"
	StatusLive  = "live"
)

// DefaultTheme is applied when no theme has been chosen.
const DefaultTheme = "default"

var validThemes = map[string]struct{}{
	"default":    {},
	"minimal":    {},
	"zinc":       {},
	"slate":      {},
	"stone":      {},
	"gray":       {},
	"orange":     {},
	"zen-garden": {},
	"blue":       {},
}

// IsValidTheme reports whether the given theme identifier is known.
func IsValidTheme(theme string) bool {
	_, ok := validThemes[theme]
	return ok
}

// FileRef points at the uploaded PDF in object storage.
type FileRef struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
	StorageKey string `json:"storageKey,omitempty"`
}

// Record is the per-user resume record mutated by every pipeline stage.
type Record struct {
	UserID      string      `json:"userId"`
	File        *FileRef    `json:"file,omitempty"`
	FileContent *string     `json:"fileContent,omitempty"`
	ResumeData  *ResumeData `json:"resumeData,omitempty"`
	Stage       string      `json:"stage"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Contacts holds optional social and contact handles for the resume header.
type Contacts struct {
	Website   string `json:"website,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// Header is the top section of the portfolio page.
type Header struct {
	Name       string   `json:"name"`
	ShortAbout string   `json:"shortAbout"`
	Location   string   `json:"location,omitempty"`
	Contacts   Contacts `json:"contacts"`
	Skills     []string `json:"skills"`
}

// WorkExperience is a single job entry.
type WorkExperience struct {
	Company     string  `json:"company"`
	Link        string  `json:"link"`
	Location    string  `json:"location"`
	Contract    string  `json:"contract"`
	Title       string  `json:"title"`
	Start       string  `json:"start"`
	End         *string `json:"end,omitempty"`
	Description string  `json:"description"`
}

// Education is a single school entry.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// Project is an optional portfolio project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
	GitHub       string   `json:"github,omitempty"`
	Start        string   `json:"start"`
	End          string   `json:"end,omitempty"`
}

// Certification is an optional certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	Link   string `json:"link,omitempty"`
}

// Language proficiency levels accepted in resume data.
var validProficiencies = map[string]struct{}{
	"Beginner":     {},
	"Intermediate": {},
	"Advanced":     {},
	"Native":       {},
}

// Language is an optional spoken-language entry.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// SectionVisibility toggles which sections the public page renders.
type SectionVisibility struct {
	Summary        bool `json:"summary"`
	WorkExperience bool `json:"workExperience"`
	Education      bool `json:"education"`
	Skills         bool `json:"skills"`
	Projects       bool `json:"projects"`
	Certifications bool `json:"certifications"`
	Languages      bool `json:"languages"`
}

// DefaultSectionVisibility returns the visibility applied to new resume data.
func DefaultSectionVisibility() SectionVisibility {
	return SectionVisibility{
		Summary:        true,
		WorkExperience: true,
		Education:      true,
		Skills:         true,
		Projects:       false,
		Certifications: false,
		Languages:      false,
	}
}

// ResumeData is the structured resume object rendered on the public page.
type ResumeData struct {
	Header            Header            `json:"header"`
	Summary           string            `json:"summary"`
	WorkExperience    []WorkExperience  `json:"workExperience"`
	Education         []Education       `json:"education"`
	ProfilePicture    string            `json:"profilePicture,omitempty"`
	SectionVisibility SectionVisibility `json:"sectionVisibility"`
	Projects          []Project         `json:"projects"`
	Certifications    []Certification   `json:"certifications"`
	Languages         []Language        `json:"languages"`
	Theme             string            `json:"theme"`
}

// Validate checks enum-valued fields and required header data.
func (d *ResumeData) Validate() error {
	if d == nil {
		return ErrInvalidInput
	}
	if d.Theme != "" && !IsValidTheme(d.Theme) {
		return ErrInvalidTheme
	}
	if d.ProfilePicture != "" && !validPictureURL(d.ProfilePicture) {
		return ErrInvalidInput
	}
	for _, lang := range d.Languages {
		if _, ok := validProficiencies[lang.Proficiency]; !ok {
			return ErrInvalidInput
		}
	}
	return nil
}

// validPictureURL accepts http(s) URLs and site-relative paths. The value
// ends up in an img src on the public page, so schemes like javascript:
// must never be stored.
func validPictureURL(raw string) bool {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Normalize fills defaults for zero-valued fields so stored data is always renderable.
func (d *ResumeData) Normalize() {
	if d == nil {
		return
	}
	if d.Theme == "" {
		d.Theme = DefaultTheme
	}
	if d.ProfilePicture != "" && !validPictureURL(d.ProfilePicture) {
		d.ProfilePicture = ""
	}
	if d.Header.Skills == nil {
		d.Header.Skills = []string{}
	}
	if d.WorkExperience == nil {
		d.WorkExperience = []WorkExperience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.Languages == nil {
		d.Languages = []Language{}
	}
}
