package ir

import (
	"fmt"
	"strings"
	"time"
)

// SectionKind enumerates the closed set of section variants. Consumers must
// handle all five kinds exhaustively; an unrecognized kind is a programming
// error surfaced via ErrUnknownKind, never a silently skipped case.
type SectionKind string

const (
	KindEducation  SectionKind = "education"
	KindExperience SectionKind = "experience"
	KindProjects   SectionKind = "projects"
	KindSkills     SectionKind = "skills"
	KindAdditional SectionKind = "additional"
)

// Kinds lists every valid section kind in canonical order.
func Kinds() []SectionKind {
	return []SectionKind{KindEducation, KindExperience, KindProjects, KindSkills, KindAdditional}
}

// Valid reports whether k is one of the enumerated kinds.
func (k SectionKind) Valid() bool {
	switch k {
	case KindEducation, KindExperience, KindProjects, KindSkills, KindAdditional:
		return true
	}
	return false
}

// ErrUnknownKind is returned when a section carries a kind outside the closed set.
type ErrUnknownKind struct {
	Kind SectionKind
}

func (e ErrUnknownKind) Error() string {
	return fmt.Sprintf("unknown section kind %q", string(e.Kind))
}

// Document is the canonical, renderer-agnostic representation of a resume.
// Sections order is rendering order; renderers must not reorder.
type Document struct {
	Personal Personal  `json:"personal"`
	Sections []Section `json:"sections"`
	Meta     Meta      `json:"meta"`
}

// Personal holds name parts, contact fields and optional social links.
type Personal struct {
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Location  string       `json:"location"`
	Links     []SocialLink `json:"links,omitempty"`
}

// FullName joins the name parts, tolerating a missing half.
func (p Personal) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// LinkLabel is the fixed set of social link labels.
type LinkLabel string

const (
	LinkLinkedIn LinkLabel = "linkedin"
	LinkGitHub   LinkLabel = "github"
	LinkWebsite  LinkLabel = "website"
)

// SocialLink pairs a label from the fixed set with a URL.
type SocialLink struct {
	Label LinkLabel `json:"label"`
	URL   string    `json:"url"`
}

// Meta carries template selection and edit bookkeeping.
type Meta struct {
	TemplateID string    `json:"templateId"`
	LastEdited time.Time `json:"lastEdited"`
}

// Section is a closed tagged union. Exactly the field matching Kind is set;
// the rest are nil.
type Section struct {
	Kind       SectionKind        `json:"kind"`
	Education  *EducationSection  `json:"education,omitempty"`
	Experience *ExperienceSection `json:"experience,omitempty"`
	Projects   *ProjectsSection   `json:"projects,omitempty"`
	Skills     *SkillsSection     `json:"skills,omitempty"`
	Additional *AdditionalSection `json:"additional,omitempty"`
}

// Validate checks that the kind is known and the matching payload is present.
func (s Section) Validate() error {
	switch s.Kind {
	case KindEducation:
		if s.Education == nil {
			return fmt.Errorf("section kind %q missing payload", s.Kind)
		}
	case KindExperience:
		if s.Experience == nil {
			return fmt.Errorf("section kind %q missing payload", s.Kind)
		}
	case KindProjects:
		if s.Projects == nil {
			return fmt.Errorf("section kind %q missing payload", s.Kind)
		}
	case KindSkills:
		if s.Skills == nil {
			return fmt.Errorf("section kind %q missing payload", s.Kind)
		}
	case KindAdditional:
		if s.Additional == nil {
			return fmt.Errorf("section kind %q missing payload", s.Kind)
		}
	default:
		return ErrUnknownKind{Kind: s.Kind}
	}
	return nil
}

// EducationSection lists education entries.
type EducationSection struct {
	Title string          `json:"title"`
	Items []EducationItem `json:"items"`
}

// EducationItem is one school entry with optional free-text bullets.
type EducationItem struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	Location    string   `json:"location"`
	Dates       Dates    `json:"dates"`
	Bullets     []Bullet `json:"bullets,omitempty"`
}

// ExperienceSection lists work-history entries.
type ExperienceSection struct {
	Title string           `json:"title"`
	Items []ExperienceItem `json:"items"`
}

// ExperienceItem is one employer entry.
type ExperienceItem struct {
	Company  string   `json:"company"`
	Role     string   `json:"role"`
	Location string   `json:"location"`
	Dates    Dates    `json:"dates"`
	Bullets  []Bullet `json:"bullets"`
}

// ProjectsSection lists project entries.
type ProjectsSection struct {
	Title string        `json:"title"`
	Items []ProjectItem `json:"items"`
}

// ProjectItem is one project entry.
type ProjectItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tech        []string `json:"tech,omitempty"`
	Dates       Dates    `json:"dates"`
	Bullets     []Bullet `json:"bullets,omitempty"`
}

// SkillsSection carries a primary tech list plus an optional other list.
type SkillsSection struct {
	Title string   `json:"title"`
	Tech  []string `json:"tech"`
	Other []string `json:"other,omitempty"`
}

// AdditionalSection is a catch-all for certifications, languages and similar
// one-line facts that don't fit the structured kinds.
type AdditionalSection struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Dates is a start/end pair. End may be the literal "Present" sentinel for
// ongoing entries; either side may be empty.
type Dates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Present is the sentinel end value for ongoing date ranges.
const Present = "Present"

// Bullet is a single free-text line owned by an education, experience or
// project item. The ID is assigned once and must remain stable across edits
// so point-patches by ID stay valid.
type Bullet struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	Impact int      `json:"impact,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// Validate checks structural invariants for the whole document.
func (d Document) Validate() error {
	for i, s := range d.Sections {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("sections[%d]: %w", i, err)
		}
	}
	return nil
}
