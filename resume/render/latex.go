package render

import (
	"strings"

	"resume-forge/resume/ir"
)

type latexStyle int

const (
	styleJake latexStyle = iota
	styleClassic
)

// latexRenderer renders a document into a self-contained LaTeX source.
// Both styles share the section walk; they differ in preamble and in how
// headings are typeset.
type latexRenderer struct {
	style latexStyle
}

func (r latexRenderer) Render(doc ir.Document) (string, error) {
	var b strings.Builder
	r.writePreamble(&b)
	b.WriteString("\\begin{document}\n\n")
	r.writeHeader(&b, doc.Personal)

	for _, section := range doc.Sections {
		if err := r.writeSection(&b, section); err != nil {
			return "", err
		}
	}

	b.WriteString("\\end{document}\n")
	return b.String(), nil
}

func (r latexRenderer) writePreamble(b *strings.Builder) {
	b.WriteString("\\documentclass[letterpaper,11pt]{article}\n")
	b.WriteString("\\usepackage[empty]{fullpage}\n")
	b.WriteString("\\usepackage{titlesec}\n")
	b.WriteString("\\usepackage{enumitem}\n")
	b.WriteString("\\usepackage[hidelinks]{hyperref}\n")
	b.WriteString("\\usepackage[margin=1.9cm]{geometry}\n")
	b.WriteString("\\pagestyle{empty}\n")
	b.WriteString("\\raggedbottom\n\\raggedright\n")
	if r.style == styleJake {
		b.WriteString("\\titleformat{\\section}{\\scshape\\large}{}{0em}{}[\\titlerule]\n")
	} else {
		b.WriteString("\\titleformat{\\section}{\\bfseries\\large\\uppercase}{}{0em}{}\n")
	}
	b.WriteString("\\newcommand{\\entry}[4]{\\noindent\\textbf{#1} \\hfill #2\\\\\\textit{#3} \\hfill \\textit{#4}}\n")
	b.WriteString("\n")
}

func (r latexRenderer) writeHeader(b *strings.Builder, p ir.Personal) {
	b.WriteString("\\begin{center}\n")
	b.WriteString("  {\\Huge " + EscapeLaTeX(p.FullName()) + "}\\\\[4pt]\n")

	contact := make([]string, 0, 6)
	for _, field := range []string{p.Phone, p.Email, p.Location} {
		if strings.TrimSpace(field) != "" {
			contact = append(contact, EscapeLaTeX(field))
		}
	}
	for _, link := range p.Links {
		if strings.TrimSpace(link.URL) == "" {
			continue
		}
		contact = append(contact, "\\href{"+escapeLaTeXURL(link.URL)+"}{"+EscapeLaTeX(link.URL)+"}")
	}
	b.WriteString("  " + strings.Join(contact, " $|$ ") + "\n")
	b.WriteString("\\end{center}\n\n")
}

// writeSection dispatches on the closed kind set. Every kind must be handled
// here; hitting the default branch means the union grew without the renderer
// keeping up, which is a programming error.
func (r latexRenderer) writeSection(b *strings.Builder, s ir.Section) error {
	switch s.Kind {
	case ir.KindEducation:
		r.writeEducation(b, s.Education)
	case ir.KindExperience:
		r.writeExperience(b, s.Experience)
	case ir.KindProjects:
		r.writeProjects(b, s.Projects)
	case ir.KindSkills:
		r.writeSkills(b, s.Skills)
	case ir.KindAdditional:
		r.writeAdditional(b, s.Additional)
	default:
		return ir.ErrUnknownKind{Kind: s.Kind}
	}
	return nil
}

func (r latexRenderer) writeEducation(b *strings.Builder, sec *ir.EducationSection) {
	b.WriteString("\\section{" + sectionTitle(sec.Title, "Education") + "}\n")
	if len(sec.Items) == 0 {
		writeEmptySection(b)
		return
	}
	for _, item := range sec.Items {
		degree := strings.TrimSpace(strings.TrimSpace(item.Degree) + " " + strings.TrimSpace(item.Field))
		b.WriteString("\\entry{" + EscapeLaTeX(item.Institution) + "}{" + EscapeLaTeX(item.Location) + "}{" +
			EscapeLaTeX(degree) + "}{" + EscapeLaTeX(dateRange(item.Dates, " -- ")) + "}\n")
		r.writeBullets(b, item.Bullets)
		b.WriteString("\\medskip\n\n")
	}
}

func (r latexRenderer) writeExperience(b *strings.Builder, sec *ir.ExperienceSection) {
	b.WriteString("\\section{" + sectionTitle(sec.Title, "Experience") + "}\n")
	if len(sec.Items) == 0 {
		writeEmptySection(b)
		return
	}
	for _, item := range sec.Items {
		b.WriteString("\\entry{" + EscapeLaTeX(item.Role) + "}{" + EscapeLaTeX(dateRange(item.Dates, " -- ")) + "}{" +
			EscapeLaTeX(item.Company) + "}{" + EscapeLaTeX(item.Location) + "}\n")
		r.writeBullets(b, item.Bullets)
		b.WriteString("\\medskip\n\n")
	}
}

func (r latexRenderer) writeProjects(b *strings.Builder, sec *ir.ProjectsSection) {
	b.WriteString("\\section{" + sectionTitle(sec.Title, "Projects") + "}\n")
	if len(sec.Items) == 0 {
		writeEmptySection(b)
		return
	}
	for _, item := range sec.Items {
		heading := EscapeLaTeX(item.Name)
		if len(item.Tech) > 0 {
			heading += " $|$ \\textit{" + EscapeLaTeX(strings.Join(item.Tech, ", ")) + "}"
		}
		b.WriteString("\\noindent\\textbf{" + heading + "} \\hfill " + EscapeLaTeX(dateRange(item.Dates, " -- ")) + "\\\\\n")
		if strings.TrimSpace(item.Description) != "" {
			b.WriteString(EscapeLaTeX(item.Description) + "\n")
		}
		r.writeBullets(b, item.Bullets)
		b.WriteString("\\medskip\n\n")
	}
}

func (r latexRenderer) writeSkills(b *strings.Builder, sec *ir.SkillsSection) {
	b.WriteString("\\section{" + sectionTitle(sec.Title, "Skills") + "}\n")
	if len(sec.Tech) == 0 && len(sec.Other) == 0 {
		writeEmptySection(b)
		return
	}
	if len(sec.Tech) > 0 {
		b.WriteString("\\textbf{Technologies:} " + EscapeLaTeX(strings.Join(sec.Tech, ", ")) + "\\\\\n")
	}
	if len(sec.Other) > 0 {
		b.WriteString("\\textbf{Other:} " + EscapeLaTeX(strings.Join(sec.Other, ", ")) + "\\\\\n")
	}
	b.WriteString("\n")
}

func (r latexRenderer) writeAdditional(b *strings.Builder, sec *ir.AdditionalSection) {
	b.WriteString("\\section{" + sectionTitle(sec.Title, "Additional") + "}\n")
	if len(sec.Lines) == 0 {
		writeEmptySection(b)
		return
	}
	b.WriteString("\\begin{itemize}[leftmargin=*]\n")
	for _, line := range sec.Lines {
		b.WriteString("  \\item " + EscapeLaTeX(line) + "\n")
	}
	b.WriteString("\\end{itemize}\n\n")
}

func (r latexRenderer) writeBullets(b *strings.Builder, bullets []ir.Bullet) {
	if len(bullets) == 0 {
		return
	}
	b.WriteString("\\begin{itemize}[leftmargin=*]\n")
	for _, bullet := range bullets {
		b.WriteString("  \\item " + EscapeLaTeX(bullet.Text) + "\n")
	}
	b.WriteString("\\end{itemize}\n")
}

// writeEmptySection keeps an explicit placeholder so the section heading and
// vertical rhythm survive documents that have nothing to say for a kind.
func writeEmptySection(b *strings.Builder) {
	b.WriteString("\\vspace{2pt}\n\n")
}

func sectionTitle(title, fallback string) string {
	if strings.TrimSpace(title) == "" {
		return fallback
	}
	return EscapeLaTeX(title)
}

// escapeLaTeXURL escapes only the characters hyperref treats specially
// inside the \href target argument. Full text escaping would break the URL.
var latexURLEscaper = strings.NewReplacer(
	"%", `\%`,
	"#", `\#`,
	"&", `\&`,
	"{", `\{`,
	"}", `\}`,
	"\\", "",
)

func escapeLaTeXURL(url string) string {
	return latexURLEscaper.Replace(url)
}
