package render

import (
	"strings"

	"resume-forge/resume/ir"
)

// htmlRenderer renders a document into a self-contained HTML page. It only
// special-cases the experience, education and skills kinds; every other
// valid kind goes through the generic section path so no section disappears
// silently.
type htmlRenderer struct{}

func (r htmlRenderer) Render(doc ir.Document) (string, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + EscapeHTML(doc.Personal.FullName()) + "</title>\n")
	b.WriteString("<style>body{font-family:Georgia,serif;max-width:48rem;margin:2rem auto}h2{border-bottom:1px solid #333}.dates{float:right;font-style:italic}</style>\n")
	b.WriteString("</head>\n<body>\n")

	r.writeHeader(&b, doc.Personal)
	for _, section := range doc.Sections {
		if err := r.writeSection(&b, section); err != nil {
			return "", err
		}
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func (r htmlRenderer) writeHeader(b *strings.Builder, p ir.Personal) {
	b.WriteString("<header>\n<h1>" + EscapeHTML(p.FullName()) + "</h1>\n<p>")
	parts := make([]string, 0, 6)
	for _, field := range []string{p.Email, p.Phone, p.Location} {
		if strings.TrimSpace(field) != "" {
			parts = append(parts, EscapeHTML(field))
		}
	}
	for _, link := range p.Links {
		if strings.TrimSpace(link.URL) == "" {
			continue
		}
		parts = append(parts, "<a href=\""+EscapeHTML(link.URL)+"\">"+EscapeHTML(link.URL)+"</a>")
	}
	b.WriteString(strings.Join(parts, " &middot; "))
	b.WriteString("</p>\n</header>\n")
}

func (r htmlRenderer) writeSection(b *strings.Builder, s ir.Section) error {
	switch s.Kind {
	case ir.KindExperience:
		b.WriteString("<section>\n<h2>" + sectionTitleHTML(s.Experience.Title, "Experience") + "</h2>\n")
		for _, item := range s.Experience.Items {
			b.WriteString("<article>\n<h3><span class=\"dates\">" + EscapeHTML(dateRange(item.Dates, " – ")) + "</span>" +
				EscapeHTML(item.Role) + "</h3>\n")
			b.WriteString("<p>" + EscapeHTML(item.Company) + " — " + EscapeHTML(item.Location) + "</p>\n")
			r.writeBullets(b, item.Bullets)
			b.WriteString("</article>\n")
		}
		if len(s.Experience.Items) == 0 {
			b.WriteString(emptySectionHTML)
		}
		b.WriteString("</section>\n")
	case ir.KindEducation:
		b.WriteString("<section>\n<h2>" + sectionTitleHTML(s.Education.Title, "Education") + "</h2>\n")
		for _, item := range s.Education.Items {
			degree := strings.TrimSpace(strings.TrimSpace(item.Degree) + " " + strings.TrimSpace(item.Field))
			b.WriteString("<article>\n<h3><span class=\"dates\">" + EscapeHTML(dateRange(item.Dates, " – ")) + "</span>" +
				EscapeHTML(item.Institution) + "</h3>\n")
			b.WriteString("<p>" + EscapeHTML(degree) + "</p>\n")
			r.writeBullets(b, item.Bullets)
			b.WriteString("</article>\n")
		}
		if len(s.Education.Items) == 0 {
			b.WriteString(emptySectionHTML)
		}
		b.WriteString("</section>\n")
	case ir.KindSkills:
		b.WriteString("<section>\n<h2>" + sectionTitleHTML(s.Skills.Title, "Skills") + "</h2>\n")
		if len(s.Skills.Tech) == 0 && len(s.Skills.Other) == 0 {
			b.WriteString(emptySectionHTML)
		}
		if len(s.Skills.Tech) > 0 {
			b.WriteString("<p>" + EscapeHTML(strings.Join(s.Skills.Tech, ", ")) + "</p>\n")
		}
		if len(s.Skills.Other) > 0 {
			b.WriteString("<p>" + EscapeHTML(strings.Join(s.Skills.Other, ", ")) + "</p>\n")
		}
		b.WriteString("</section>\n")
	case ir.KindProjects, ir.KindAdditional:
		r.writeGeneric(b, s)
	default:
		return ir.ErrUnknownKind{Kind: s.Kind}
	}
	return nil
}

// writeGeneric renders any valid section as a titled list of its text
// content. Used for kinds this template has no bespoke layout for.
func (r htmlRenderer) writeGeneric(b *strings.Builder, s ir.Section) {
	title, lines := genericLines(s)
	b.WriteString("<section>\n<h2>" + EscapeHTML(title) + "</h2>\n")
	if len(lines) == 0 {
		b.WriteString(emptySectionHTML)
	} else {
		b.WriteString("<ul>\n")
		for _, line := range lines {
			b.WriteString("<li>" + EscapeHTML(line) + "</li>\n")
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</section>\n")
}

func (r htmlRenderer) writeBullets(b *strings.Builder, bullets []ir.Bullet) {
	if len(bullets) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, bullet := range bullets {
		b.WriteString("<li>" + EscapeHTML(bullet.Text) + "</li>\n")
	}
	b.WriteString("</ul>\n")
}

const emptySectionHTML = "<p class=\"empty\">&nbsp;</p>\n"

func sectionTitleHTML(title, fallback string) string {
	if strings.TrimSpace(title) == "" {
		return fallback
	}
	return EscapeHTML(title)
}

// genericLines flattens a section into display lines without assuming its
// kind has a dedicated layout.
func genericLines(s ir.Section) (string, []string) {
	switch s.Kind {
	case ir.KindProjects:
		var lines []string
		for _, item := range s.Projects.Items {
			line := item.Name
			if strings.TrimSpace(item.Description) != "" {
				line += " — " + item.Description
			}
			if dates := dateRange(item.Dates, " – "); dates != "" {
				line += " (" + dates + ")"
			}
			lines = append(lines, line)
			for _, bullet := range item.Bullets {
				lines = append(lines, bullet.Text)
			}
		}
		return textOr(s.Projects.Title, "Projects"), lines
	case ir.KindAdditional:
		return textOr(s.Additional.Title, "Additional"), s.Additional.Lines
	default:
		return string(s.Kind), nil
	}
}

func textOr(title, fallback string) string {
	if strings.TrimSpace(title) == "" {
		return fallback
	}
	return title
}
