package render

import (
	"strings"
	"testing"
	"time"

	"resume-forge/resume/ir"
)

func sampleDocument() ir.Document {
	return ir.Document{
		Personal: ir.Personal{
			FirstName: "Jordan",
			LastName:  "Lee",
			Email:     "jordan.lee@example.com",
			Phone:     "555-0100",
			Location:  "Austin, TX",
			Links: []ir.SocialLink{
				{Label: ir.LinkGitHub, URL: "https://github.com/jordanlee"},
			},
		},
		Sections: []ir.Section{
			{Kind: ir.KindEducation, Education: &ir.EducationSection{
				Title: "Education",
				Items: []ir.EducationItem{{
					Institution: "UT Austin",
					Degree:      "BSc",
					Field:       "Computer Science",
					Location:    "Austin, TX",
					Dates:       ir.Dates{Start: "2016", End: "2020"},
				}},
			}},
			{Kind: ir.KindExperience, Experience: &ir.ExperienceSection{
				Title: "Experience",
				Items: []ir.ExperienceItem{{
					Company:  "Acme & Sons",
					Role:     "Backend Engineer",
					Location: "Remote",
					Dates:    ir.Dates{Start: "2020-06", End: ir.Present},
					Bullets: []ir.Bullet{
						{ID: "b1", Text: "Cut p99 latency 40% on the billing API"},
					},
				}},
			}},
			{Kind: ir.KindProjects, Projects: &ir.ProjectsSection{
				Title: "Projects",
				Items: []ir.ProjectItem{{
					Name:        "latencymap",
					Description: "Heatmaps for request latency",
					Tech:        []string{"Go", "Postgres"},
				}},
			}},
			{Kind: ir.KindSkills, Skills: &ir.SkillsSection{
				Title: "Skills",
				Tech:  []string{"Go", "SQL"},
				Other: []string{"Spanish"},
			}},
			{Kind: ir.KindAdditional, Additional: &ir.AdditionalSection{
				Title: "Additional",
				Lines: []string{"AWS Certified Developer"},
			}},
		},
		Meta: ir.Meta{TemplateID: "jake", LastEdited: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestTemplatesCatalog(t *testing.T) {
	all := Templates()
	if len(all) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(all))
	}
	freeCount := 0
	for _, tpl := range all {
		if !Known(tpl.ID) {
			t.Fatalf("catalog template %q not known", tpl.ID)
		}
		if tpl.Free {
			freeCount++
		}
	}
	if freeCount != 2 {
		t.Fatalf("expected 2 free templates, got %d", freeCount)
	}
	if Free("web") {
		t.Fatalf("web template must not be free")
	}
	if Known("fancy") {
		t.Fatalf("unexpected template registered: fancy")
	}
}

func TestRenderDeterministic(t *testing.T) {
	doc := sampleDocument()
	for _, id := range []string{"jake", "classic", "web"} {
		first, err := Render(doc, id)
		if err != nil {
			t.Fatalf("render %s: %v", id, err)
		}
		second, err := Render(doc, id)
		if err != nil {
			t.Fatalf("render %s again: %v", id, err)
		}
		if first != second {
			t.Fatalf("template %s is not deterministic", id)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Render(sampleDocument(), "fancy"); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestRenderRejectsUnknownSectionKind(t *testing.T) {
	doc := sampleDocument()
	doc.Sections = append(doc.Sections, ir.Section{Kind: ir.SectionKind("references")})

	for _, id := range []string{"jake", "web"} {
		_, err := Render(doc, id)
		if err == nil {
			t.Fatalf("template %s accepted unknown section kind", id)
		}
		if !strings.Contains(err.Error(), "references") {
			t.Fatalf("template %s error should name the kind, got %v", id, err)
		}
	}
}

func TestRenderLaTeXEscapesContent(t *testing.T) {
	doc := sampleDocument()
	out, err := Render(doc, "jake")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `Acme \& Sons`) {
		t.Fatalf("company ampersand not escaped:\n%s", out)
	}
	if !strings.Contains(out, `Cut p99 latency 40\% on the billing API`) {
		t.Fatalf("bullet percent not escaped:\n%s", out)
	}
	if !strings.Contains(out, "\\begin{document}") || !strings.Contains(out, "\\end{document}") {
		t.Fatalf("output is not a complete LaTeX document")
	}
	if !strings.Contains(out, "2020-06 -- Present") {
		t.Fatalf("ongoing date range missing:\n%s", out)
	}
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	doc := sampleDocument()
	doc.Sections[1].Experience.Items[0].Company = `<b>Acme</b> & Sons`
	out, err := Render(doc, "web")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<b>Acme</b>") {
		t.Fatalf("raw markup leaked into HTML output")
	}
	if !strings.Contains(out, "&lt;b&gt;Acme&lt;/b&gt; &amp; Sons") {
		t.Fatalf("company not escaped:\n%s", out)
	}
	// Projects and additional kinds have no bespoke web layout but must still
	// appear.
	if !strings.Contains(out, "latencymap") {
		t.Fatalf("projects section missing from generic rendering")
	}
	if !strings.Contains(out, "AWS Certified Developer") {
		t.Fatalf("additional section missing from generic rendering")
	}
}

func TestRenderEmptySectionsKeepHeadings(t *testing.T) {
	doc := ir.Document{
		Personal: ir.Personal{FirstName: "Sam"},
		Sections: []ir.Section{
			{Kind: ir.KindEducation, Education: &ir.EducationSection{}},
			{Kind: ir.KindExperience, Experience: &ir.ExperienceSection{}},
			{Kind: ir.KindSkills, Skills: &ir.SkillsSection{}},
		},
	}
	out, err := Render(doc, "classic")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, heading := range []string{"\\section{Education}", "\\section{Experience}", "\\section{Skills}"} {
		if !strings.Contains(out, heading) {
			t.Fatalf("missing heading %q for empty section:\n%s", heading, out)
		}
	}
}

func TestDateRange(t *testing.T) {
	cases := []struct {
		dates ir.Dates
		want  string
	}{
		{ir.Dates{Start: "2020", End: "2022"}, "2020 -- 2022"},
		{ir.Dates{Start: "2020"}, "2020"},
		{ir.Dates{End: ir.Present}, ir.Present},
		{ir.Dates{}, ""},
	}
	for _, tc := range cases {
		if got := dateRange(tc.dates, " -- "); got != tc.want {
			t.Fatalf("dateRange(%+v) = %q, want %q", tc.dates, got, tc.want)
		}
	}
}
