package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLockStore(t *testing.T) *LockStore {
	t.Helper()
	s := NewLockStore(testPaths(t))
	// No network during tests: an unreachable base makes every hash lookup
	// come back empty, which is the documented failure mode.
	s.treeHash.BaseURL = "http://127.0.0.1:0"
	s.treeHash.HTTPClient = &http.Client{Timeout: 100 * time.Millisecond}
	return s
}

func TestLockReadMissing(t *testing.T) {
	s := testLockStore(t)
	lock, reset, err := s.Read()
	if err != nil {
		t.Fatal(err)
	}
	if reset {
		t.Error("reset = true for a missing lock file")
	}
	if lock.Version != 3 || len(lock.Skills) != 0 {
		t.Errorf("lock = %+v, want empty version-3 lock", lock)
	}
}

func TestLockVersionGate(t *testing.T) {
	s := testLockStore(t)
	old := `{"version": 2, "skills": {"stale": {"source": "x"}}}`
	if err := writeFileAtomic(s.Path(), []byte(old)); err != nil {
		t.Fatal(err)
	}

	lock, reset, err := s.Read()
	if err != nil {
		t.Fatal(err)
	}
	if !reset {
		t.Error("reset = false, want true for a version-2 lock")
	}
	if len(lock.Skills) != 0 {
		t.Errorf("Skills = %v, want old entries discarded", lock.Skills)
	}
}

func TestUpdateForSkillPreservesInstalledAt(t *testing.T) {
	s := testLockStore(t)
	skill := testSkill(t, "greeter")
	info := SourceInfo{
		SourceID:   "acme/skills",
		SourceType: SourceTypeGitHub,
		SourceURL:  "https://github.com/acme/skills.git",
	}

	if _, err := s.UpdateForSkill(skill, info, ""); err != nil {
		t.Fatal(err)
	}
	lock, _, _ := s.Read()
	first := lock.Skills["greeter"]
	if first.InstalledAt == "" || first.UpdatedAt == "" {
		t.Fatalf("timestamps missing: %+v", first)
	}
	if _, err := time.Parse(time.RFC3339, first.InstalledAt); err != nil {
		t.Errorf("InstalledAt %q is not RFC3339: %v", first.InstalledAt, err)
	}
	if first.Source != "acme/skills" || first.SourceType != "github" {
		t.Errorf("entry = %+v", first)
	}

	// Reinstall: installedAt survives, updatedAt is rewritten.
	if _, err := s.UpdateForSkill(skill, info, ""); err != nil {
		t.Fatal(err)
	}
	lock, _, _ = s.Read()
	second := lock.Skills["greeter"]
	if second.InstalledAt != first.InstalledAt {
		t.Errorf("InstalledAt changed on reinstall: %q -> %q", first.InstalledAt, second.InstalledAt)
	}
}

func TestUpdateForSkillRecordsSkillPath(t *testing.T) {
	s := testLockStore(t)
	skill := testSkill(t, "greeter")
	info := SourceInfo{SourceID: skill.Path, SourceType: SourceTypeLocal, SourceURL: skill.Path}

	base := skill.Path // skill sits at the source root
	if _, err := s.UpdateForSkill(skill, info, base); err != nil {
		t.Fatal(err)
	}
	lock, _, _ := s.Read()
	if got := lock.Skills["greeter"].SkillPath; got != "SKILL.md" {
		t.Errorf("SkillPath = %q, want SKILL.md", got)
	}
}

func TestRemoveEntry(t *testing.T) {
	s := testLockStore(t)
	skill := testSkill(t, "greeter")
	info := SourceInfo{SourceID: "acme/skills", SourceType: SourceTypeGitHub}

	if _, err := s.UpdateForSkill(skill, info, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveEntry("greeter"); err != nil {
		t.Fatal(err)
	}
	lock, _, _ := s.Read()
	if _, ok := lock.Skills["greeter"]; ok {
		t.Error("entry still present after RemoveEntry")
	}

	// Entries keyed by the raw recorded name are removed when the caller
	// passes the sanitized directory name.
	spaced := testSkill(t, "My Skill")
	if _, err := s.UpdateForSkill(spaced, info, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveEntry("my-skill"); err != nil {
		t.Fatal(err)
	}
	lock, _, _ = s.Read()
	if _, ok := lock.Skills["My Skill"]; ok {
		t.Error("raw-named entry survived removal by directory name")
	}

	// Removing again is a no-op, and must not touch the file.
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveEntry("greeter"); err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(s.Path())
	if string(before) != string(after) {
		t.Error("no-op removal rewrote the lock file")
	}
}

func TestUpdateForSkillFolderHash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sha": "roothash",
			"tree": []map[string]any{
				{"path": "packs/go", "type": "tree", "sha": "folderhash"},
			},
		})
	}))
	defer server.Close()

	s := testLockStore(t)
	s.treeHash.BaseURL = server.URL
	s.treeHash.HTTPClient = server.Client()

	base := t.TempDir()
	skillDir := filepath.Join(base, "packs", "go")
	writeSkill(t, skillDir, "go-pack", "hashed skill")
	skill, err := ParseSkillMD(filepath.Join(skillDir, "SKILL.md"))
	if err != nil {
		t.Fatal(err)
	}

	info := SourceInfo{
		SourceID:   "acme/skills",
		SourceType: SourceTypeGitHub,
		OwnerRepo:  "acme/skills",
		Branch:     "main",
	}
	if _, err := s.UpdateForSkill(*skill, info, base); err != nil {
		t.Fatal(err)
	}

	if gotPath != "/repos/acme/skills/git/trees/main" {
		t.Errorf("request path = %q", gotPath)
	}
	lock, _, _ := s.Read()
	if got := lock.Skills["go-pack"].SkillFolderHash; got != "folderhash" {
		t.Errorf("SkillFolderHash = %q, want folderhash", got)
	}
}

func TestSkillFolderHashFallsBackToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := NewTreeHashClient()
	c.BaseURL = server.URL
	c.HTTPClient = server.Client()

	if got := c.SkillFolderHash("acme/skills", "", "packs/go/SKILL.md"); got != "" {
		t.Errorf("hash = %q, want empty on lookup failure", got)
	}
}

func TestNormalizeSkillFolder(t *testing.T) {
	tests := []struct{ in, want string }{
		{"packs/go/SKILL.md", "packs/go"},
		{"packs\\go\\SKILL.md", "packs/go"},
		{"SKILL.md", ""},
		{"packs/go/", "packs/go"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeSkillFolder(tt.in); got != tt.want {
			t.Errorf("normalizeSkillFolder(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
