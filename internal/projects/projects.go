// Package projects discovers existing git repositories under common project
// roots so the descriptor can expose each one through its own filesystem
// server. This is a plain directory scan with no invariants beyond the cap.
package projects

import (
	"os"
	"path/filepath"
)

// maxProjects caps how many discovered repositories a run reports.
const maxProjects = 5

// DefaultRoots returns the directories scanned for repositories under home.
func DefaultRoots(home string) []string {
	return []string{
		filepath.Join(home, "Documents"),
		filepath.Join(home, "Projects"),
		filepath.Join(home, "Developer"),
		filepath.Join(home, "dev"),
		filepath.Join(home, "workspace"),
	}
}

// DiscoverUnder scans the given roots, in order, for immediate child
// directories containing a .git entry. Missing or unreadable roots are
// skipped. Results are capped at maxProjects; within a root the order is the
// directory listing order, which os.ReadDir keeps sorted by name.
func DiscoverUnder(roots []string) []string {
	var found []string
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			candidate := filepath.Join(root, entry.Name())
			if _, err := os.Stat(filepath.Join(candidate, ".git")); err != nil {
				continue
			}
			found = append(found, candidate)
			if len(found) == maxProjects {
				return found
			}
		}
	}
	return found
}

// Discover scans the default roots for the given home directory.
func Discover(home string) []string {
	return DiscoverUnder(DefaultRoots(home))
}
