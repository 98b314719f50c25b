package commonModels

// Document is one retrievable unit of portfolio content.
// Ids carry a stable category prefix: profile, education, skills-, project-, experience-, repo-, resume.
type Document struct {
	Id     string `json:"id"`
	Source string `json:"source"`
	URL    string `json:"url"`
	Text   string `json:"text"`
}

type ScoredDocument struct {
	Doc   Document `json:"document"`
	Score int      `json:"score"`
}

type Citation struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

// Answer is the payload handed back to the caller and stored in the response cache.
type Answer struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"

const (
	ProfilePrefix    = "profile"
	EducationPrefix  = "education"
	SkillsPrefix     = "skills-"
	ProjectPrefix    = "project-"
	ExperiencePrefix = "experience-"
	RepoPrefix       = "repo-"
	ResumeId         = "resume"
)
