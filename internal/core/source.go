package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// hostedProvider describes one supported git host: its hostname, the path
// segments that mark a branch-qualified "browse" URL, and the source type
// recorded for it. Adding a host is a table entry, not a new parser.
type hostedProvider struct {
	host        string
	sourceType  SourceType
	treeMarkers [][]string // alternatives; e.g. GitHub accepts both tree and blob
}

var hostedProviders = []hostedProvider{
	{host: "github.com", sourceType: SourceTypeGitHub, treeMarkers: [][]string{{"tree"}, {"blob"}}},
	{host: "gitlab.com", sourceType: SourceTypeGitLab, treeMarkers: [][]string{{"-", "tree"}}},
	{host: "codeberg.org", sourceType: SourceTypeCodeberg, treeMarkers: [][]string{{"src", "branch"}}},
}

// ParseSource turns a user-supplied source string into a Source.
//
// Supported formats:
//   - "./path", "../path", absolute paths  → local directory (must exist)
//   - any string naming an existing path   → local directory
//   - "https://host/owner/repo[...]"       → hosted git URL (GitHub, GitLab, Codeberg)
//   - "git@host:owner/repo.git"            → SSH clone URL
//   - any other URL                        → generic git source
//   - "owner/repo[/sub/path]"              → GitHub shorthand
func ParseSource(input string) (*Source, error) {
	input = strings.TrimSpace(input)

	if isLocalPath(input) {
		return parseLocalSource(input)
	}
	if _, err := os.Stat(input); err == nil {
		return parseLocalSource(input)
	}
	if looksLikeURL(input) {
		return parseGitURL(input), nil
	}
	return parseOwnerRepo(input)
}

// looksLikeURL matches http(s) and ssh git sources.
func looksLikeURL(input string) bool {
	return strings.Contains(input, "://") || strings.HasPrefix(input, "git@")
}

// isLocalPath reports whether the input is syntactically a filesystem path.
func isLocalPath(input string) bool {
	if input == "." || input == ".." ||
		strings.HasPrefix(input, "./") || strings.HasPrefix(input, "../") ||
		strings.HasPrefix(input, `.\`) || strings.HasPrefix(input, `..\`) {
		return true
	}
	if filepath.IsAbs(input) || strings.HasPrefix(input, "/") {
		return true
	}
	// Windows drive letter, e.g. C:/ or C:\.
	if len(input) >= 3 && input[1] == ':' && (input[2] == '/' || input[2] == '\\') {
		return true
	}
	return false
}

func parseLocalSource(input string) (*Source, error) {
	if _, err := os.Stat(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, input)
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("resolving local path: %w", err)
	}
	path, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolving local path: %w", err)
	}
	return &Source{
		Type:      SourceTypeLocal,
		LocalPath: path,
		Info: SourceInfo{
			SourceID:   path,
			SourceType: SourceTypeLocal,
			SourceURL:  path,
		},
	}, nil
}

// parseOwnerRepo handles "owner/repo[/sub/path]" GitHub shorthand.
func parseOwnerRepo(input string) (*Source, error) {
	var parts []string
	for _, p := range strings.Split(input, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, input)
	}

	owner, repo := parts[0], parts[1]
	ownerRepo := owner + "/" + repo
	url := fmt.Sprintf("https://github.com/%s/%s.git", owner, repo)

	return &Source{
		Type:     SourceTypeGitHub,
		CloneURL: url,
		SubPath:  strings.Join(parts[2:], "/"),
		Info: SourceInfo{
			SourceID:   ownerRepo,
			SourceType: SourceTypeGitHub,
			SourceURL:  url,
			OwnerRepo:  ownerRepo,
		},
	}, nil
}

// parseGitURL handles URL-shaped sources. Recognized hosts get owner/repo,
// branch and subpath extracted; anything else becomes a generic git source.
func parseGitURL(input string) *Source {
	if src := parseHostedGitURL(input); src != nil {
		return src
	}
	return &Source{
		Type:     SourceTypeGit,
		CloneURL: input,
		Info: SourceInfo{
			SourceID:   input,
			SourceType: SourceTypeGit,
			SourceURL:  input,
		},
	}
}

// parseHostedGitURL runs the provider table against the input. Dispatch is
// by literal host prefix, so table order does not change the outcome.
func parseHostedGitURL(input string) *Source {
	for _, p := range hostedProviders {
		if src := p.parse(input); src != nil {
			return src
		}
	}
	return nil
}

func (p hostedProvider) parse(input string) *Source {
	input = strings.TrimRight(input, "/")

	var rest string
	switch {
	case strings.HasPrefix(input, "https://"+p.host+"/"):
		rest = strings.TrimPrefix(input, "https://"+p.host+"/")
	case strings.HasPrefix(input, "http://"+p.host+"/"):
		rest = strings.TrimPrefix(input, "http://"+p.host+"/")
	case strings.HasPrefix(input, "git@"+p.host+":"):
		return p.parseSSH(input)
	default:
		return nil
	}

	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		return nil
	}
	owner := parts[0]
	repo := strings.TrimSuffix(parts[1], ".git")
	ownerRepo := owner + "/" + repo
	cloneURL := fmt.Sprintf("https://%s/%s/%s.git", p.host, owner, repo)

	branch, subPath := p.matchTreeMarker(parts[2:])

	return &Source{
		Type:     p.sourceType,
		CloneURL: cloneURL,
		SubPath:  subPath,
		Info: SourceInfo{
			SourceID:   ownerRepo,
			SourceType: p.sourceType,
			SourceURL:  cloneURL,
			OwnerRepo:  ownerRepo,
			Branch:     branch,
		},
	}
}

// matchTreeMarker checks the path segments after owner/repo against the
// provider's browse-URL markers and returns (branch, subpath) on a match.
func (p hostedProvider) matchTreeMarker(parts []string) (string, string) {
	for _, marker := range p.treeMarkers {
		if len(parts) < len(marker)+1 {
			continue
		}
		matched := true
		for i, seg := range marker {
			if parts[i] != seg {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		branch := parts[len(marker)]
		subPath := strings.Join(parts[len(marker)+1:], "/")
		return branch, subPath
	}
	return "", ""
}

func (p hostedProvider) parseSSH(input string) *Source {
	rest := strings.TrimPrefix(input, "git@"+p.host+":")
	rest = strings.TrimSuffix(strings.TrimRight(rest, "/"), ".git")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		return nil
	}
	ownerRepo := parts[0] + "/" + parts[1]

	return &Source{
		Type:     p.sourceType,
		CloneURL: input,
		Info: SourceInfo{
			SourceID:   ownerRepo,
			SourceType: p.sourceType,
			SourceURL:  input,
			OwnerRepo:  ownerRepo,
		},
	}
}
