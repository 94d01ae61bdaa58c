package ir

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-forge/resume/content"
)

// ConvertVersion identifies the flat-content adapter revision. Bump when the
// mapping between content.Resume and Document changes shape.
const ConvertVersion = "v1"

// FromResumeContent converts the flat extraction shape into the canonical IR.
// Section order follows the conventional resume layout: education, experience,
// projects, skills, additional. Empty source lists still yield a section so
// downstream consumers see a complete document skeleton.
func FromResumeContent(res content.Resume, templateID string, now time.Time) Document {
	doc := Document{
		Personal: personalFrom(res.PersonalInfo),
		Meta: Meta{
			TemplateID: templateID,
			LastEdited: now.UTC(),
		},
	}

	edu := &EducationSection{Title: "Education"}
	for _, e := range res.Education {
		edu.Items = append(edu.Items, EducationItem{
			Institution: e.Institution,
			Degree:      e.Degree,
			Field:       e.Field,
			Location:    e.Location,
			Dates:       Dates{Start: e.Start, End: e.End},
			Bullets:     bulletsFrom(e.Highlights),
		})
	}

	exp := &ExperienceSection{Title: "Experience"}
	for _, e := range res.Experience {
		exp.Items = append(exp.Items, ExperienceItem{
			Company:  e.Company,
			Role:     e.Role,
			Location: e.Location,
			Dates:    Dates{Start: e.Start, End: e.End},
			Bullets:  bulletsFrom(e.Highlights),
		})
	}

	proj := &ProjectsSection{Title: "Projects"}
	for _, p := range res.Projects {
		proj.Items = append(proj.Items, ProjectItem{
			Name:        p.Name,
			Description: p.Description,
			Tech:        p.Tech,
			Dates:       Dates{Start: p.Start, End: p.End},
			Bullets:     bulletsFrom(p.Highlights),
		})
	}

	skills := &SkillsSection{Title: "Skills", Tech: res.Skills, Other: res.Languages}

	doc.Sections = []Section{
		{Kind: KindEducation, Education: edu},
		{Kind: KindExperience, Experience: exp},
		{Kind: KindProjects, Projects: proj},
		{Kind: KindSkills, Skills: skills},
	}

	if lines := additionalLines(res); len(lines) > 0 {
		doc.Sections = append(doc.Sections, Section{
			Kind:       KindAdditional,
			Additional: &AdditionalSection{Title: "Additional", Lines: lines},
		})
	}

	return doc
}

func personalFrom(info content.PersonalInfo) Personal {
	first, last := splitName(info.Name)
	p := Personal{
		FirstName: first,
		LastName:  last,
		Email:     strings.TrimSpace(info.Email),
		Phone:     strings.TrimSpace(info.Phone),
		Location:  strings.TrimSpace(info.Location),
	}
	if url := strings.TrimSpace(info.LinkedIn); url != "" {
		p.Links = append(p.Links, SocialLink{Label: LinkLinkedIn, URL: url})
	}
	if url := strings.TrimSpace(info.GitHub); url != "" {
		p.Links = append(p.Links, SocialLink{Label: LinkGitHub, URL: url})
	}
	if url := strings.TrimSpace(info.Website); url != "" {
		p.Links = append(p.Links, SocialLink{Label: LinkWebsite, URL: url})
	}
	return p
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}

func bulletsFrom(lines []string) []Bullet {
	out := make([]Bullet, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, Bullet{ID: uuid.NewString(), Text: trimmed})
	}
	return out
}

func additionalLines(res content.Resume) []string {
	var lines []string
	for _, cert := range res.Certifications {
		if trimmed := strings.TrimSpace(cert); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	for _, v := range res.VolunteerWork {
		parts := make([]string, 0, 3)
		if strings.TrimSpace(v.Role) != "" {
			parts = append(parts, strings.TrimSpace(v.Role))
		}
		if strings.TrimSpace(v.Organization) != "" {
			parts = append(parts, strings.TrimSpace(v.Organization))
		}
		if strings.TrimSpace(v.Description) != "" {
			parts = append(parts, strings.TrimSpace(v.Description))
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, ", "))
		}
	}
	return lines
}
