package gemini

import "google.golang.org/genai"

func stringProp() *genai.Schema {
	return &genai.Schema{Type: genai.TypeString}
}

func stringArray() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: stringProp()}
}

// resumeSchema constrains Gemini output to the resume data shape.
var resumeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"header": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":       stringProp(),
				"shortAbout": stringProp(),
				"location":   stringProp(),
				"contacts": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"website":   stringProp(),
						"email":     stringProp(),
						"phone":     stringProp(),
						"twitter":   stringProp(),
						"linkedin":  stringProp(),
						"github":    stringProp(),
						"instagram": stringProp(),
						"youtube":   stringProp(),
					},
				},
				"skills": stringArray(),
			},
			Required: []string{"name", "shortAbout", "skills"},
		},
		"summary": stringProp(),
		"workExperience": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"company":     stringProp(),
					"link":        stringProp(),
					"location":    stringProp(),
					"contract":    stringProp(),
					"title":       stringProp(),
					"start":       stringProp(),
					"end":         stringProp(),
					"description": stringProp(),
				},
				Required: []string{"company", "title", "start", "description"},
			},
		},
		"education": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"school": stringProp(),
					"degree": stringProp(),
					"start":  stringProp(),
					"end":    stringProp(),
				},
				Required: []string{"school", "degree"},
			},
		},
		"projects": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":         stringProp(),
					"description":  stringProp(),
					"technologies": stringArray(),
					"link":         stringProp(),
					"github":       stringProp(),
					"start":        stringProp(),
					"end":          stringProp(),
				},
				Required: []string{"name", "description"},
			},
		},
		"certifications": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":   stringProp(),
					"issuer": stringProp(),
					"date":   stringProp(),
					"link":   stringProp(),
				},
				Required: []string{"name", "issuer"},
			},
		},
		"languages": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"language": stringProp(),
					"proficiency": {
						Type: genai.TypeString,
						Enum: []string{"Beginner", "Intermediate", "Advanced", "Native"},
					},
				},
				Required: []string{"language", "proficiency"},
			},
		},
	},
	Required: []string{"header", "summary", "workExperience", "education"},
}
