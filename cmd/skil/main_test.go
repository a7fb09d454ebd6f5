package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/matoous/skil/cmd/skil/cmd"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"skil": func() {
			if err := cmd.Execute(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	})
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:                 filepath.Join("testdata", "script"),
		RequireExplicitExec: true,
		Setup: func(e *testscript.Env) error {
			// Point HOME at WORK so ~/.agents and the global config land
			// inside the temp dir.
			e.Vars = append(e.Vars,
				"HOME="+e.WorkDir,
				"XDG_CONFIG_HOME="+filepath.Join(e.WorkDir, ".config"),
				"CODEX_HOME="+filepath.Join(e.WorkDir, ".codex"),
			)
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			// is-symlink asserts that a path is (or is not) a symlink.
			// Usage: [!] is-symlink <path>
			"is-symlink": cmdIsSymlink,

			// file-contains asserts that a file contains (or doesn't contain) a substring.
			// Usage: [!] file-contains <path> <substring>
			"file-contains": cmdFileContains,

			// dir-not-exists asserts that a directory does not exist.
			// Usage: [!] dir-not-exists <path>
			"dir-not-exists": cmdDirNotExists,
		},
	})
}

func cmdIsSymlink(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 1 {
		ts.Fatalf("usage: is-symlink <path>")
	}
	path := ts.MkAbs(args[0])
	fi, err := os.Lstat(path)
	isSymlink := err == nil && fi.Mode()&os.ModeSymlink != 0

	if neg {
		if isSymlink {
			ts.Fatalf("%s is a symlink (expected not to be)", args[0])
		}
	} else {
		if !isSymlink {
			if err != nil {
				ts.Fatalf("%s: %v", args[0], err)
			}
			ts.Fatalf("%s is not a symlink (mode: %s)", args[0], fi.Mode())
		}
	}
}

func cmdFileContains(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 2 {
		ts.Fatalf("usage: file-contains <path> <substring>")
	}
	path := ts.MkAbs(args[0])
	substr := args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		ts.Fatalf("reading %s: %v", args[0], err)
	}

	contains := strings.Contains(string(data), substr)
	if neg {
		if contains {
			ts.Fatalf("file %s contains %q (expected not to)", args[0], substr)
		}
	} else {
		if !contains {
			ts.Fatalf("file %s does not contain %q\nContent:\n%s", args[0], substr, string(data))
		}
	}
}

func cmdDirNotExists(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 1 {
		ts.Fatalf("usage: dir-not-exists <path>")
	}
	path := ts.MkAbs(args[0])
	_, err := os.Stat(path)
	exists := err == nil

	if neg {
		if !exists {
			ts.Fatalf("%s does not exist (expected it to)", args[0])
		}
	} else {
		if exists {
			ts.Fatalf("%s exists (expected it not to)", args[0])
		}
	}
}
