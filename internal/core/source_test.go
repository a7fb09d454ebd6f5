package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSourceShorthand(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantType  SourceType
		wantClone string
		wantSub   string
		wantID    string
	}{
		{
			name:      "owner repo",
			input:     "acme/skills",
			wantType:  SourceTypeGitHub,
			wantClone: "https://github.com/acme/skills.git",
			wantID:    "acme/skills",
		},
		{
			name:      "owner repo with subpath",
			input:     "acme/skills/packs/go",
			wantType:  SourceTypeGitHub,
			wantClone: "https://github.com/acme/skills.git",
			wantSub:   "packs/go",
			wantID:    "acme/skills",
		},
		{
			name:      "empty segments collapse",
			input:     "acme//skills/",
			wantType:  SourceTypeGitHub,
			wantClone: "https://github.com/acme/skills.git",
			wantID:    "acme/skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := ParseSource(tt.input)
			if err != nil {
				t.Fatalf("ParseSource(%q): %v", tt.input, err)
			}
			if src.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", src.Type, tt.wantType)
			}
			if src.CloneURL != tt.wantClone {
				t.Errorf("CloneURL = %q, want %q", src.CloneURL, tt.wantClone)
			}
			if src.SubPath != tt.wantSub {
				t.Errorf("SubPath = %q, want %q", src.SubPath, tt.wantSub)
			}
			if src.Info.SourceID != tt.wantID {
				t.Errorf("SourceID = %q, want %q", src.Info.SourceID, tt.wantID)
			}
		})
	}
}

func TestParseSourceHostedURLs(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantType   SourceType
		wantClone  string
		wantBranch string
		wantSub    string
	}{
		{
			name:      "github plain",
			input:     "https://github.com/acme/skills",
			wantType:  SourceTypeGitHub,
			wantClone: "https://github.com/acme/skills.git",
		},
		{
			name:      "github dot git suffix",
			input:     "https://github.com/acme/skills.git",
			wantType:  SourceTypeGitHub,
			wantClone: "https://github.com/acme/skills.git",
		},
		{
			name:       "github tree URL",
			input:      "https://github.com/acme/skills/tree/main/packs/go",
			wantType:   SourceTypeGitHub,
			wantClone:  "https://github.com/acme/skills.git",
			wantBranch: "main",
			wantSub:    "packs/go",
		},
		{
			name:       "github blob URL",
			input:      "https://github.com/acme/skills/blob/dev/packs",
			wantType:   SourceTypeGitHub,
			wantClone:  "https://github.com/acme/skills.git",
			wantBranch: "dev",
			wantSub:    "packs",
		},
		{
			name:       "gitlab tree URL",
			input:      "https://gitlab.com/acme/skills/-/tree/main/packs",
			wantType:   SourceTypeGitLab,
			wantClone:  "https://gitlab.com/acme/skills.git",
			wantBranch: "main",
			wantSub:    "packs",
		},
		{
			name:       "codeberg branch URL",
			input:      "https://codeberg.org/acme/skills/src/branch/main/packs",
			wantType:   SourceTypeCodeberg,
			wantClone:  "https://codeberg.org/acme/skills.git",
			wantBranch: "main",
			wantSub:    "packs",
		},
		{
			name:      "trailing slash",
			input:     "https://github.com/acme/skills/",
			wantType:  SourceTypeGitHub,
			wantClone: "https://github.com/acme/skills.git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := ParseSource(tt.input)
			if err != nil {
				t.Fatalf("ParseSource(%q): %v", tt.input, err)
			}
			if src.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", src.Type, tt.wantType)
			}
			if src.CloneURL != tt.wantClone {
				t.Errorf("CloneURL = %q, want %q", src.CloneURL, tt.wantClone)
			}
			if src.Info.Branch != tt.wantBranch {
				t.Errorf("Branch = %q, want %q", src.Info.Branch, tt.wantBranch)
			}
			if src.SubPath != tt.wantSub {
				t.Errorf("SubPath = %q, want %q", src.SubPath, tt.wantSub)
			}
		})
	}
}

func TestParseSourceSSH(t *testing.T) {
	src, err := ParseSource("git@github.com:acme/skills.git")
	if err != nil {
		t.Fatal(err)
	}
	if src.Type != SourceTypeGitHub {
		t.Errorf("Type = %q, want github", src.Type)
	}
	// SSH URLs clone as-is; rewriting to https would break key-based auth.
	if src.CloneURL != "git@github.com:acme/skills.git" {
		t.Errorf("CloneURL = %q", src.CloneURL)
	}
	if src.Info.OwnerRepo != "acme/skills" {
		t.Errorf("OwnerRepo = %q", src.Info.OwnerRepo)
	}
}

func TestParseSourceGenericGit(t *testing.T) {
	input := "https://git.example.com/team/skills.git"
	src, err := ParseSource(input)
	if err != nil {
		t.Fatal(err)
	}
	if src.Type != SourceTypeGit {
		t.Errorf("Type = %q, want git", src.Type)
	}
	if src.CloneURL != input || src.Info.SourceID != input {
		t.Errorf("CloneURL = %q, SourceID = %q, want both %q", src.CloneURL, src.Info.SourceID, input)
	}
}

func TestParseSourceLocal(t *testing.T) {
	dir := t.TempDir()

	src, err := ParseSource(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !src.IsLocal() {
		t.Fatalf("Type = %q, want local", src.Type)
	}
	resolved, _ := filepath.EvalSymlinks(dir)
	if src.LocalPath != resolved {
		t.Errorf("LocalPath = %q, want %q", src.LocalPath, resolved)
	}
}

func TestParseSourceLocalRelative(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir("skills", 0o755); err != nil {
		t.Fatal(err)
	}

	src, err := ParseSource("./skills")
	if err != nil {
		t.Fatal(err)
	}
	if !src.IsLocal() {
		t.Fatalf("Type = %q, want local", src.Type)
	}
}

func TestParseSourceExistingFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("bundle", nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// Any existing path resolves as local, even a plain file; discovery is
	// what decides whether it holds skills.
	src, err := ParseSource("bundle")
	if err != nil {
		t.Fatal(err)
	}
	if !src.IsLocal() {
		t.Fatalf("Type = %q, want local", src.Type)
	}
}

func TestParseSourceErrors(t *testing.T) {
	if _, err := ParseSource("./does-not-exist-anywhere"); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("missing local path: err = %v, want ErrSourceNotFound", err)
	}
	if _, err := ParseSource("just-one-segment"); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("single segment: err = %v, want ErrInvalidSource", err)
	}
}
