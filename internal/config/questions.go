package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultQuestions is the compiled-in interview question bank, used when no
// questions file is configured.
var defaultQuestions = []string{
	"Tell me about yourself and your professional background.",
	"Describe a challenging project you worked on and how you handled it.",
	"What are your greatest strengths and how do they apply to this role?",
	"Tell me about a time you had to learn a new technology quickly.",
	"Where do you see yourself in five years?",
}

type questionsFile struct {
	Questions []string `yaml:"questions"`
}

// LoadQuestions returns the interview question bank. When path is empty the
// compiled-in default of five questions is returned; otherwise the YAML file
// must contain a non-empty `questions` list.
func LoadQuestions(path string) ([]string, error) {
	if path == "" {
		out := make([]string, len(defaultQuestions))
		copy(out, defaultQuestions)
		return out, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("op=config.LoadQuestions: %w", err)
	}
	var qf questionsFile
	if err := yaml.Unmarshal(b, &qf); err != nil {
		return nil, fmt.Errorf("op=config.LoadQuestions: %w", err)
	}
	if len(qf.Questions) == 0 {
		return nil, fmt.Errorf("op=config.LoadQuestions: questions file %q has no questions", path)
	}
	return qf.Questions, nil
}
