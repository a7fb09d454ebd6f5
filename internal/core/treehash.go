package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGitHubAPIBase = "https://api.github.com"

// TreeHashClient queries a host's recursive git tree listing to compute
// the tree hash of a skill folder. It is an optional provenance
// enrichment: every failure mode yields an empty hash, never an error.
type TreeHashClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewTreeHashClient returns a client against the public GitHub API.
func NewTreeHashClient() *TreeHashClient {
	return &TreeHashClient{
		BaseURL:    defaultGitHubAPIBase,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type treeResponse struct {
	SHA  string `json:"sha"`
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		SHA  string `json:"sha"`
	} `json:"tree"`
}

// SkillFolderHash returns the git tree SHA of skillPath inside ownerRepo
// on the given branch, trying main then master when branch is empty. An
// empty skillPath yields the root tree SHA. Returns "" when the hash
// cannot be determined.
func (c *TreeHashClient) SkillFolderHash(ownerRepo, branch, skillPath string) string {
	folderPath := normalizeSkillFolder(skillPath)

	branches := []string{branch}
	if branch == "" {
		branches = []string{"main", "master"}
	}

	for _, b := range branches {
		if hash, ok := c.lookupTree(ownerRepo, b, folderPath); ok {
			return hash
		}
	}
	return ""
}

func (c *TreeHashClient) lookupTree(ownerRepo, branch, folderPath string) (string, bool) {
	endpoint := fmt.Sprintf("%s/repos/%s/git/trees/%s?recursive=1",
		c.BaseURL, ownerRepo, url.PathEscape(branch))

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "skil")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", false
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return "", false
	}

	var tree treeResponse
	if err := json.NewDecoder(res.Body).Decode(&tree); err != nil {
		return "", false
	}

	if folderPath == "" {
		return tree.SHA, tree.SHA != ""
	}
	for _, entry := range tree.Tree {
		if entry.Type == "tree" && entry.Path == folderPath && entry.SHA != "" {
			return entry.SHA, true
		}
	}
	return "", false
}

// normalizeSkillFolder turns a recorded skill path (which may point at the
// SKILL.md file itself) into the repo-relative folder path.
func normalizeSkillFolder(skillPath string) string {
	p := strings.ReplaceAll(skillPath, `\`, "/")
	p = strings.TrimSuffix(p, "SKILL.md")
	return strings.TrimSuffix(p, "/")
}
