// pkg/inspect/gitignore.go
package inspect

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreRules holds the compiled .gitignore files found under a walk root.
// Keys are slash-separated directories relative to the root ("" is the root itself).
type ignoreRules struct {
	root  string
	rules map[string]*ignore.GitIgnore
}

// loadIgnoreRules compiles every .gitignore below root.
// Returns nil when there are none, and a nil *ignoreRules ignores nothing.
func loadIgnoreRules(root string) (*ignoreRules, error) {
	root = filepath.Clean(root)
	ir := &ignoreRules{
		root:  root,
		rules: make(map[string]*ignore.GitIgnore),
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are reported by the inspection walk
			return nil
		}
		if d.IsDir() || d.Name() != ".gitignore" {
			return nil
		}

		relDir, err := filepath.Rel(root, filepath.Dir(p))
		if err != nil {
			return nil
		}
		relDir = filepath.ToSlash(relDir)
		if relDir == "." {
			relDir = ""
		}

		compiled, err := ignore.CompileIgnoreFile(p)
		if err != nil {
			// Invalid .gitignore files are skipped
			return nil
		}
		ir.rules[relDir] = compiled
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(ir.rules) == 0 {
		return nil, nil
	}
	return ir, nil
}

// Ignored reports whether the file at relPath (relative to the root) is excluded
// by the .gitignore of any directory between the root and the file.
func (ir *ignoreRules) Ignored(relPath string) bool {
	if ir == nil {
		return false
	}

	relPath = filepath.ToSlash(relPath)
	for _, dir := range ancestors(relPath) {
		rules, ok := ir.rules[dir]
		if !ok {
			continue
		}
		candidate := relPath
		if dir != "" {
			candidate = strings.TrimPrefix(relPath, dir+"/")
		}
		if rules.MatchesPath(candidate) {
			return true
		}
	}
	return false
}

// IgnoredDir reports whether a whole directory can be pruned.
// Only directory patterns ("build/") prune; file globs that happen to match
// a directory name ("*.log") do not.
func (ir *ignoreRules) IgnoredDir(relPath string) bool {
	if ir == nil {
		return false
	}
	return ir.Ignored(relPath+"/") && !ir.Ignored(relPath)
}

// ancestors lists the directories from the root down to the parent of relPath.
// For "a/b/c.gz" it returns ["", "a", "a/b"].
func ancestors(relPath string) []string {
	dirs := []string{""}

	parent := path.Dir(strings.TrimSuffix(relPath, "/"))
	if parent == "." || parent == "/" {
		return dirs
	}

	current := ""
	for _, part := range strings.Split(parent, "/") {
		if part == "" {
			continue
		}
		if current == "" {
			current = part
		} else {
			current += "/" + part
		}
		dirs = append(dirs, current)
	}
	return dirs
}
