package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontMatter is the YAML block at the top of an agent Markdown file.
type frontMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Tier        string `yaml:"tier"`
}

// LoadDir reads agent profiles from a directory of Markdown files and
// registers them, replacing builtins with the same name. Each file carries a
// YAML front matter block delimited by "---" lines; the remainder of the file
// is the profile's prompt.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read agents dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		p, err := loadFile(path)
		if err != nil {
			return fmt.Errorf("load profile %s: %w", entry.Name(), err)
		}
		r.Register(p)
	}
	return nil
}

func loadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}

	meta, body, err := splitFrontMatter(string(data))
	if err != nil {
		return Profile{}, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return Profile{}, fmt.Errorf("front matter: %w", err)
	}
	if fm.Name == "" {
		return Profile{}, fmt.Errorf("front matter missing name")
	}
	tier, err := ParseTier(fm.Tier)
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		Name:        fm.Name,
		Description: fm.Description,
		Tier:        tier,
		Prompt:      strings.TrimSpace(body),
	}, nil
}

// splitFrontMatter separates the leading "---" delimited YAML block from the
// Markdown body.
func splitFrontMatter(content string) (meta, body string, err error) {
	content = strings.TrimPrefix(content, "\ufeff")
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return "", "", fmt.Errorf("missing front matter delimiter")
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), nil
		}
	}
	return "", "", fmt.Errorf("unterminated front matter")
}
