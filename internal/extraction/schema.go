package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// resumeSchema is the structural contract for model output. A response that
// passes HTTP success but misses required shape is a failure, not an empty
// success.
const resumeSchema = `{
  "type": "object",
  "required": ["personalInfo", "experience", "education", "skills"],
  "properties": {
    "personalInfo": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string"},
        "email": {"type": "string"},
        "phone": {"type": "string"},
        "location": {"type": "string"},
        "linkedin": {"type": "string"},
        "github": {"type": "string"},
        "website": {"type": "string"}
      }
    },
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["company", "role"],
        "properties": {
          "company": {"type": "string"},
          "role": {"type": "string"},
          "location": {"type": "string"},
          "start": {"type": "string"},
          "end": {"type": "string"},
          "highlights": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["institution"],
        "properties": {
          "institution": {"type": "string"},
          "degree": {"type": "string"},
          "field": {"type": "string"},
          "location": {"type": "string"},
          "start": {"type": "string"},
          "end": {"type": "string"},
          "highlights": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "skills": {"type": "array", "items": {"type": "string"}},
    "certifications": {"type": "array", "items": {"type": "string"}},
    "projects": {"type": "array"},
    "languages": {"type": "array", "items": {"type": "string"}},
    "volunteerWork": {"type": "array"}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(resumeSchema)

// validateShape checks raw model output against the resume schema.
func validateShape(raw json.RawMessage) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &PermanentError{Reason: "model output is not valid JSON", Err: err}
	}
	if result.Valid() {
		return nil
	}
	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		reasons = append(reasons, desc.String())
	}
	return &PermanentError{Reason: fmt.Sprintf("model output failed schema validation: %s", strings.Join(reasons, "; "))}
}
