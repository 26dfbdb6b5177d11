package portfolio

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Project struct {
	Title   string `yaml:"title" json:"title"`
	Summary string `yaml:"summary" json:"summary"`
	// Categories is a space separated list, matched by substring.
	Categories string   `yaml:"categories" json:"categories"`
	Tags       []string `yaml:"tags" json:"tags"`
	Link       string   `yaml:"link" json:"link,omitempty"`
	Featured   bool     `yaml:"featured" json:"featured"`
}

type Stat struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type SkillCategory struct {
	Name string   `yaml:"name" json:"name"`
	Tags []string `yaml:"tags" json:"tags"`
}

type Profile struct {
	Name      string          `yaml:"name" json:"name"`
	Email     string          `yaml:"email" json:"email"`
	GitHub    string          `yaml:"github" json:"github"`
	Headlines []string        `yaml:"headlines" json:"headlines"`
	About     string          `yaml:"about" json:"about"`
	Stats     []Stat          `yaml:"stats" json:"stats"`
	Skills    []SkillCategory `yaml:"skills" json:"skills"`
	Filters   []string        `yaml:"filters" json:"filters"`
	Projects  []Project       `yaml:"projects" json:"projects"`
}

func DefaultProfile() *Profile {
	return &Profile{
		Name:   "Jane Doe",
		Email:  "hello@example.com",
		GitHub: "github.com/janedoe",
		Headlines: []string{
			"ML Engineer & Researcher",
			"Computer Vision Specialist",
			"AI Systems Builder",
			"Bug Bounty Researcher",
			"Hackathon Finalist",
		},
		About: "I build **machine learning systems** that leave the notebook.\n\n" +
			"Most of my work sits between research code and production services: " +
			"vision models, data pipelines and the tooling that keeps them honest.",
		Stats: []Stat{
			{Value: "15+", Label: "Projects"},
			{Value: "5", Label: "Hackathons"},
			{Value: "3", Label: "Papers"},
			{Value: "20+", Label: "Bugs reported"},
		},
		Skills: []SkillCategory{
			{Name: "Machine Learning", Tags: []string{"PyTorch", "TensorFlow", "scikit-learn"}},
			{Name: "Vision", Tags: []string{"OpenCV", "YOLO", "Segmentation"}},
			{Name: "Systems", Tags: []string{"Go", "Docker", "PostgreSQL"}},
		},
		Filters: []string{"all", "ml", "cv", "web", "security"},
		Projects: []Project{
			{Title: "Edge Detector", Summary: "Real-time object detection on a Raspberry Pi.", Categories: "ml cv", Tags: []string{"YOLO", "ONNX"}, Featured: true},
			{Title: "Paper Trail", Summary: "Citation graph explorer for arXiv.", Categories: "ml web", Tags: []string{"Go", "Graph"}},
			{Title: "Scan Lab", Summary: "Document layout analysis pipeline.", Categories: "cv", Tags: []string{"OpenCV"}},
			{Title: "Recon Kit", Summary: "Bug bounty reconnaissance toolkit.", Categories: "security web", Tags: []string{"Go", "DNS"}},
		},
	}
}

// LoadProfile reads a profile from YAML. Fields missing from the file keep
// their defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	if email := EmailFromHref(p.Email); email != "" {
		p.Email = email
	}
	return p, nil
}

// EmailFromHref strips a mailto: prefix; other hrefs yield "".
func EmailFromHref(href string) string {
	if !strings.HasPrefix(href, "mailto:") {
		return ""
	}
	return strings.TrimPrefix(href, "mailto:")
}
