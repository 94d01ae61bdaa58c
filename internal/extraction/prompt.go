package extraction

import "resume-forge/internal/llm"

const systemPrompt = `You are a resume parser. Extract structured resume content from the user's text and respond with a single JSON object, nothing else.

The object must have this shape:
{
  "personalInfo": {"name": "", "email": "", "phone": "", "location": "", "linkedin": "", "github": "", "website": ""},
  "experience": [{"company": "", "role": "", "location": "", "start": "", "end": "", "highlights": [""]}],
  "education": [{"institution": "", "degree": "", "field": "", "location": "", "start": "", "end": "", "highlights": [""]}],
  "skills": [""],
  "certifications": [""],
  "projects": [{"name": "", "description": "", "start": "", "end": "", "highlights": [""], "tech": [""]}],
  "languages": [""],
  "volunteerWork": [{"organization": "", "role": "", "start": "", "end": "", "description": ""}]
}

Rules:
- Copy facts verbatim from the input; never invent employers, dates or contact details.
- Dates use "YYYY-MM" when a month is known, otherwise "YYYY"; use "Present" for ongoing roles.
- Omit optional arrays that have no content rather than emitting empty placeholder entries.
- Rewrite highlight bullets as concise single sentences, preserving metrics exactly.`

func buildMessages(resumeText string) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: resumeText},
	}
}
