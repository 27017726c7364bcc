package output

import (
	"gopkg.in/yaml.v3"

	"github.com/citelens/citelens/internal/search"
)

// YAMLFormatter renders results as a YAML document keyed by title.
type YAMLFormatter struct{}

type yamlDocument struct {
	Title   string          `yaml:"title"`
	Count   int             `yaml:"count"`
	Results []search.Result `yaml:"results"`
}

// FormatResults renders results as YAML.
func (f *YAMLFormatter) FormatResults(title string, results []search.Result) (string, error) {
	data, err := yaml.Marshal(yamlDocument{
		Title:   title,
		Count:   len(results),
		Results: results,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
