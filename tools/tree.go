package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const defaultTreeDepth = 3

// skippedDirNames are build-output directories never worth listing.
var skippedDirNames = map[string]bool{
	"target":       true,
	"node_modules": true,
}

// buildTree renders a text tree rooted at path. Directories sort before
// files, names compare case-insensitively, and levels beyond maxDepth are
// summarized. Subdirectories the permissions record denies are skipped
// silently.
func buildTree(path string, perms *SessionPermissions, maxDepth int) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("path does not exist: %s", path)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", path)
	}

	root := filepath.Base(path)
	lines := []string{root}
	if err := appendTreeLevel(path, perms, "", 1, maxDepth, &lines); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

func appendTreeLevel(dir string, perms *SessionPermissions, prefix string, depth, maxDepth int, lines *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	type treeEntry struct {
		name  string
		isDir bool
	}
	var visible []treeEntry
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		// Stat follows symlinks so a linked directory counts as one.
		isDir := entry.IsDir()
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil {
			isDir = info.IsDir()
		}
		if isDir && skippedDirNames[name] {
			continue
		}
		visible = append(visible, treeEntry{name: name, isDir: isDir})
	}

	sort.Slice(visible, func(i, j int) bool {
		if visible[i].isDir != visible[j].isDir {
			return visible[i].isDir
		}
		return strings.ToLower(visible[i].name) < strings.ToLower(visible[j].name)
	})

	for i, entry := range visible {
		last := i == len(visible)-1
		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		*lines = append(*lines, prefix+connector+entry.name)

		if !entry.isDir {
			continue
		}

		child := filepath.Join(dir, entry.name)
		if !perms.CanRead(child) {
			continue
		}
		if depth >= maxDepth {
			*lines = append(*lines, childPrefix+"(…)")
			continue
		}
		if err := appendTreeLevel(child, perms, childPrefix, depth+1, maxDepth, lines); err != nil {
			// Unreadable subdirectory; keep the entry and move on.
			continue
		}
	}
	return nil
}
