package core

import (
	"fmt"
	"sort"
)

// CheckSources reads a config and compares each git-backed source's recorded
// revision against the remote. Local sources are skipped; per-source failures
// land in the status Err rather than aborting the sweep.
func CheckSources(configPath string) ([]SourceStatus, error) {
	cfg, err := ReadConfig(configPath)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(cfg.Sources))
	for key := range cfg.Sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var statuses []SourceStatus
	for _, key := range keys {
		entry := cfg.Sources[key]
		if entry.SourceType == string(SourceTypeLocal) {
			continue
		}
		status := SourceStatus{Key: key, Entry: entry}

		source, err := sourceFromConfig(key, entry)
		if err != nil {
			status.Err = err
			statuses = append(statuses, status)
			continue
		}

		remote, err := RemoteRevision(source.CloneURL, entry.Branch)
		if err != nil {
			status.Err = err
			statuses = append(statuses, status)
			continue
		}
		status.RemoteRevision = remote
		status.Stale = entry.Revision == "" || entry.Revision != remote
		if status.Stale && entry.Branch == "" {
			// Tag lookup is informational only; failures stay silent.
			if tag, err := LatestTag(source.CloneURL); err == nil {
				status.LatestTag = tag
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// UpdateOutcome reports one source's pass through the update pipeline.
type UpdateOutcome struct {
	Key    string
	Skills []string
	Err    error
}

// UpdateSources re-runs the install pipeline for every stale status,
// reinstalling the skills the config records for that source. Sources
// update independently; one failure does not stop the rest.
func UpdateSources(o *Orchestrator, agents []AgentConfig, statuses []SourceStatus, global bool, configPath string) []UpdateOutcome {
	var outcomes []UpdateOutcome
	for _, status := range statuses {
		if !status.Stale {
			continue
		}
		outcome := UpdateOutcome{Key: status.Key}

		source, err := sourceFromConfig(status.Key, status.Entry)
		if err != nil {
			outcome.Err = err
			outcomes = append(outcomes, outcome)
			continue
		}

		fr, err := o.FetchSource(source, false)
		if err != nil {
			outcome.Err = err
			outcomes = append(outcomes, outcome)
			continue
		}

		selected := SelectSkills(fr.Skills, status.Entry.Skills)
		if len(selected) == 0 {
			fr.Close()
			outcome.Err = fmt.Errorf("source %s: %w", status.Key, ErrNoSkillsFound)
			outcomes = append(outcomes, outcome)
			continue
		}

		summary, err := o.Install(fr, selected, agents, InstallOptions{
			Global:     global,
			Mode:       InstallModeSymlink,
			ConfigPath: configPath,
		})
		fr.Close()
		if err != nil {
			outcome.Err = err
		} else {
			outcome.Skills = summary.SkillNames
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// sourceFromConfig rebuilds a fetchable source from a config entry. The
// source-type disambiguates the host when the key is an owner/repo pair;
// generic git entries keep the full URL as their key.
func sourceFromConfig(key string, entry SkilSource) (*Source, error) {
	info := SourceInfo{
		SourceID:   key,
		SourceType: SourceType(entry.SourceType),
		Branch:     entry.Branch,
	}

	var cloneURL string
	switch SourceType(entry.SourceType) {
	case SourceTypeGitHub:
		cloneURL = "https://github.com/" + key + ".git"
		info.OwnerRepo = key
	case SourceTypeGitLab:
		cloneURL = "https://gitlab.com/" + key + ".git"
		info.OwnerRepo = key
	case SourceTypeCodeberg:
		cloneURL = "https://codeberg.org/" + key + ".git"
		info.OwnerRepo = key
	case SourceTypeGit:
		cloneURL = key
	default:
		return nil, fmt.Errorf("source %s: unknown source-type %q: %w", key, entry.SourceType, ErrInvalidSource)
	}
	info.SourceURL = cloneURL

	return &Source{
		Type:     SourceType(entry.SourceType),
		CloneURL: cloneURL,
		SubPath:  entry.Subpath,
		Info:     info,
	}, nil
}
