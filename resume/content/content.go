package content

// Resume is the flat, denormalized shape the extraction model produces.
// It exists only at the extraction boundary; the canonical representation
// used by renderers is ir.Document (see resume/ir).
type Resume struct {
	PersonalInfo   PersonalInfo `json:"personalInfo"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications,omitempty"`
	Projects       []Project    `json:"projects,omitempty"`
	Languages      []string     `json:"languages,omitempty"`
	VolunteerWork  []Volunteer  `json:"volunteerWork,omitempty"`
}

// PersonalInfo holds contact details extracted from the input.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Experience is one work-history entry.
type Experience struct {
	Company    string   `json:"company"`
	Role       string   `json:"role"`
	Location   string   `json:"location"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Highlights []string `json:"highlights"`
}

// Education is one education entry.
type Education struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	Location    string   `json:"location"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Highlights  []string `json:"highlights,omitempty"`
}

// Project is one project entry.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Highlights  []string `json:"highlights,omitempty"`
	Tech        []string `json:"tech,omitempty"`
}

// Volunteer is one volunteer-work entry.
type Volunteer struct {
	Organization string `json:"organization"`
	Role         string `json:"role"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Description  string `json:"description,omitempty"`
}
