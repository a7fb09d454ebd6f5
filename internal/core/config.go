package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ReadConfig loads a config file, returning an empty config when the file
// does not exist.
func ReadConfig(path string) (*SkilConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &SkilConfig{Sources: map[string]SkilSource{}}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg SkilConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Sources == nil {
		cfg.Sources = map[string]SkilSource{}
	}
	return &cfg, nil
}

// WriteConfig rewrites the whole config file atomically.
func WriteConfig(path string, cfg *SkilConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// UpdateConfig merges newly installed skills into the entry for sourceKey.
// def seeds the entry when the key is new; existing entries keep their
// metadata. Skill sets union, and revision is replaced only when a new one
// is provided. The whole file is rewritten (read-merge-write).
func UpdateConfig(path, sourceKey string, def SkilSource, skills []string, revision string) error {
	cfg, err := ReadConfig(path)
	if err != nil {
		return err
	}

	entry, ok := cfg.Sources[sourceKey]
	if !ok {
		entry = def
	}
	entry.Skills = uniqueSorted(append(entry.Skills, skills...))
	if revision != "" {
		entry.Revision = revision
	}
	cfg.Sources[sourceKey] = entry

	return WriteConfig(path, cfg)
}

// RemoveSkillFromConfig drops a skill name from every source entry and
// prunes entries left with no skills. Names match when they sanitize to
// the same directory name, so removing by the on-disk name also clears
// the raw recorded name. Reports whether anything changed.
func RemoveSkillFromConfig(path, skillName string) (bool, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return false, err
	}

	want := SanitizeName(skillName)
	changed := false
	for key, entry := range cfg.Sources {
		kept := entry.Skills[:0]
		for _, s := range entry.Skills {
			if SanitizeName(s) != want {
				kept = append(kept, s)
			}
		}
		if len(kept) == len(entry.Skills) {
			continue
		}
		changed = true
		if len(kept) == 0 {
			delete(cfg.Sources, key)
			continue
		}
		entry.Skills = kept
		cfg.Sources[key] = entry
	}

	if !changed {
		return false, nil
	}
	return true, WriteConfig(path, cfg)
}
