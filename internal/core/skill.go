package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const skillFileName = "SKILL.md"

// fallbackWalkDepth bounds the recursive SKILL.md search when no skills
// turn up in the priority directories.
const fallbackWalkDepth = 5

// prioritySkillDirs is the ordered list of directories scanned for skills,
// relative to the search root: the root itself, the generic skills/ tree,
// then each known agent's conventional folder.
var prioritySkillDirs = []string{
	".",
	"skills",
	"skills/.curated",
	"skills/.experimental",
	"skills/.system",
	".agent/skills",
	".agents/skills",
	".claude/skills",
	".cline/skills",
	".codebuddy/skills",
	".codex/skills",
	".commandcode/skills",
	".continue/skills",
	".cursor/skills",
	".github/skills",
	".goose/skills",
	".junie/skills",
	".kilocode/skills",
	".kiro/skills",
	".mux/skills",
	".opencode/skills",
	".openhands/skills",
	".roo/skills",
	".trae/skills",
	".windsurf/skills",
	".zencoder/skills",
}

// frontmatter is the YAML block parsed from the top of a SKILL.md file.
type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// DiscoverSkills finds skill bundles under base (joined with subPath when
// non-empty), ordered by first encounter and deduplicated by skill name.
//
// A SKILL.md directly in the search root short-circuits the scan unless
// fullDepth is set. Otherwise the priority directories are scanned, and if
// nothing was found a bounded recursive walk looks for SKILL.md anywhere.
func DiscoverSkills(base, subPath string, fullDepth bool) ([]Skill, error) {
	searchRoot := base
	if subPath != "" {
		searchRoot = filepath.Join(base, subPath)
	}

	var skills []Skill
	seen := make(map[string]bool)

	if hasSkillMD(searchRoot) {
		skill, err := ParseSkillMD(filepath.Join(searchRoot, skillFileName))
		if err != nil {
			return nil, err
		}
		if skill != nil {
			seen[skill.Name] = true
			skills = append(skills, *skill)
			if !fullDepth {
				return skills, nil
			}
		}
	}

	for _, rel := range prioritySkillDirs {
		dir := filepath.Join(searchRoot, rel)
		if !dirExists(dir) {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			skillDir := filepath.Join(dir, entry.Name())
			if !hasSkillMD(skillDir) {
				continue
			}
			skill, err := ParseSkillMD(filepath.Join(skillDir, skillFileName))
			if err != nil {
				return nil, err
			}
			if skill != nil && !seen[skill.Name] {
				seen[skill.Name] = true
				skills = append(skills, *skill)
			}
		}
	}

	if len(skills) > 0 {
		return skills, nil
	}

	// Fallback: bounded walk looking for SKILL.md anywhere in the tree.
	err := filepath.WalkDir(searchRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are not an error for discovery
		}
		rel, relErr := filepath.Rel(searchRoot, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() && rel != "." && len(strings.Split(rel, string(filepath.Separator))) >= fallbackWalkDepth {
			return filepath.SkipDir
		}
		if d.IsDir() || d.Name() != skillFileName {
			return nil
		}
		skill, parseErr := ParseSkillMD(path)
		if parseErr != nil {
			return parseErr
		}
		if skill != nil && !seen[skill.Name] {
			seen[skill.Name] = true
			skills = append(skills, *skill)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return skills, nil
}

// SelectSkills filters skills by requested names. An empty request or a
// lone "*" selects everything. Matching is case-insensitive by exact name;
// unmatched requests are silently dropped.
func SelectSkills(skills []Skill, requested []string) []Skill {
	if len(requested) == 0 || (len(requested) == 1 && requested[0] == "*") {
		return skills
	}

	want := make(map[string]bool, len(requested))
	for _, r := range requested {
		want[strings.ToLower(r)] = true
	}

	var selected []Skill
	for _, skill := range skills {
		if want[strings.ToLower(skill.Name)] {
			selected = append(selected, skill)
		}
	}
	return selected
}

func hasSkillMD(dir string) bool {
	return fileExists(filepath.Join(dir, skillFileName))
}

// ParseSkillMD reads a SKILL.md file and returns the skill it describes.
// It returns (nil, nil) for files without frontmatter or with empty
// name/description: those are simply not skills. A frontmatter block that
// fails to parse as YAML is a hard error.
func ParseSkillMD(path string) (*Skill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	content := string(data)

	fm, err := parseFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter in %s: %w", path, err)
	}
	if fm == nil || fm.Name == "" || fm.Description == "" {
		return nil, nil
	}

	return &Skill{
		Name:        fm.Name,
		Description: fm.Description,
		Path:        filepath.Dir(path),
		RawContent:  content,
	}, nil
}

// parseFrontmatter extracts the leading ----delimited YAML block.
// Content without such a block yields (nil, nil).
func parseFrontmatter(content string) (*frontmatter, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, nil
	}

	var yamlBlock strings.Builder
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "---" {
			break
		}
		yamlBlock.WriteString(line)
		yamlBlock.WriteString("\n")
	}
	if strings.TrimSpace(yamlBlock.String()) == "" {
		return nil, nil
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(yamlBlock.String()), &fm); err != nil {
		return nil, err
	}
	return &fm, nil
}
