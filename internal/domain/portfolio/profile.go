// Package portfolio holds the structured profile data the site and the chat assistant are built from.
package portfolio

type Profile struct {
	Name     string `toml:"name" json:"name"`
	Title    string `toml:"title" json:"title"`
	Location string `toml:"location" json:"location"`
	Summary  string `toml:"summary" json:"summary"`
	Email    string `toml:"email" json:"email"`
	Website  string `toml:"website" json:"website"`
	GitHub   string `toml:"github" json:"github"`
	LinkedIn string `toml:"linkedin" json:"linkedin"`

	Education  *Education      `toml:"education" json:"education,omitempty"`
	Skills     []SkillCategory `toml:"skills" json:"skills"`
	Projects   []Project       `toml:"projects" json:"projects"`
	Experience []Experience    `toml:"experience" json:"experience"`
}

type Education struct {
	School  string `toml:"school" json:"school"`
	Degree  string `toml:"degree" json:"degree"`
	Period  string `toml:"period" json:"period"`
	Details string `toml:"details" json:"details"`
}

type SkillCategory struct {
	ID       string   `toml:"id" json:"id"`
	Category string   `toml:"category" json:"category"`
	Items    []string `toml:"items" json:"items"`
}

type Metric struct {
	Label string `toml:"label" json:"label"`
	Value string `toml:"value" json:"value"`
}

type Project struct {
	ID       string   `toml:"id" json:"id"`
	Title    string   `toml:"title" json:"title"`
	Summary  string   `toml:"summary" json:"summary"`
	Problem  string   `toml:"problem" json:"problem"`
	Solution string   `toml:"solution" json:"solution"`
	Stack    []string `toml:"stack" json:"stack"`
	Metrics  []Metric `toml:"metrics" json:"metrics"`
	URL      string   `toml:"url" json:"url"`
	Repo     string   `toml:"repo" json:"repo"`
	Featured bool     `toml:"featured" json:"featured"`
}

type Experience struct {
	ID       string   `toml:"id" json:"id"`
	Role     string   `toml:"role" json:"role"`
	Company  string   `toml:"company" json:"company"`
	Period   string   `toml:"period" json:"period"`
	Summary  string   `toml:"summary" json:"summary"`
	Problem  string   `toml:"problem" json:"problem"`
	Solution string   `toml:"solution" json:"solution"`
	Stack    []string `toml:"stack" json:"stack"`
	Metrics  []Metric `toml:"metrics" json:"metrics"`
}

// Repo is the normalized view of a public source repository.
type Repo struct {
	Name        string   `json:"name"`
	FullName    string   `json:"fullName"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stars"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

func (p *Profile) FeaturedProjects() []Project {
	var out []Project
	for _, project := range p.Projects {
		if project.Featured {
			out = append(out, project)
		}
	}
	return out
}

// RepoResult is the outcome of a best-effort repository listing. Repos is empty, never nil, when Err is set.
type RepoResult struct {
	Repos []Repo
	Err   error
}
