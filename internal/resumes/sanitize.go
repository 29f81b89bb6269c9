package resumes

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

func sanitizeString(s string) string {
	return htmlEscaper.Replace(strings.TrimSpace(s))
}

func sanitizeSlice(ss []string) []string {
	for i, s := range ss {
		ss[i] = sanitizeString(s)
	}
	return ss
}

// Sanitize escapes HTML-sensitive characters in every free-text field so
// stored data is safe to render verbatim on the public page.
func (d *ResumeData) Sanitize() {
	if d == nil {
		return
	}

	d.Header.Name = sanitizeString(d.Header.Name)
	d.Header.ShortAbout = sanitizeString(d.Header.ShortAbout)
	d.Header.Location = sanitizeString(d.Header.Location)
	d.Header.Skills = sanitizeSlice(d.Header.Skills)

	c := &d.Header.Contacts
	c.Website = sanitizeString(c.Website)
	c.Email = sanitizeString(c.Email)
	c.Phone = sanitizeString(c.Phone)
	c.Twitter = sanitizeString(c.Twitter)
	c.LinkedIn = sanitizeString(c.LinkedIn)
	c.GitHub = sanitizeString(c.GitHub)
	c.Instagram = sanitizeString(c.Instagram)
	c.YouTube = sanitizeString(c.YouTube)

	d.Summary = sanitizeString(d.Summary)

	// ProfilePicture is deliberately not escaped: escaping would mangle
	// query strings. Validate and Normalize restrict it to http(s) URLs
	// and site-relative paths instead.
	d.ProfilePicture = strings.TrimSpace(d.ProfilePicture)

	for i := range d.WorkExperience {
		w := &d.WorkExperience[i]
		w.Company = sanitizeString(w.Company)
		w.Link = sanitizeString(w.Link)
		w.Location = sanitizeString(w.Location)
		w.Contract = sanitizeString(w.Contract)
		w.Title = sanitizeString(w.Title)
		w.Start = sanitizeString(w.Start)
		if w.End != nil {
			end := sanitizeString(*w.End)
			w.End = &end
		}
		w.Description = sanitizeString(w.Description)
	}

	for i := range d.Education {
		e := &d.Education[i]
		e.School = sanitizeString(e.School)
		e.Degree = sanitizeString(e.Degree)
		e.Start = sanitizeString(e.Start)
		e.End = sanitizeString(e.End)
	}

	for i := range d.Projects {
		p := &d.Projects[i]
		p.Name = sanitizeString(p.Name)
		p.Description = sanitizeString(p.Description)
		p.Technologies = sanitizeSlice(p.Technologies)
		p.Link = sanitizeString(p.Link)
		p.GitHub = sanitizeString(p.GitHub)
		p.Start = sanitizeString(p.Start)
		p.End = sanitizeString(p.End)
	}

	for i := range d.Certifications {
		cert := &d.Certifications[i]
		cert.Name = sanitizeString(cert.Name)
		cert.Issuer = sanitizeString(cert.Issuer)
		cert.Date = sanitizeString(cert.Date)
		cert.Link = sanitizeString(cert.Link)
	}

	for i := range d.Languages {
		d.Languages[i].Language = sanitizeString(d.Languages[i].Language)
	}
}
