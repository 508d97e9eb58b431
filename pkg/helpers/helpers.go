package helpers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FindFolderDir returns a directory path for the specified folder to anchor relative paths to.
// In testing the current working directory could be different from execution;
// in these cases it helps to find the top level dir of the repo rather than the tested package.
// Returns "" when no parent directory matches.
func FindFolderDir(name string) string {
	wd, _ := os.Getwd()
	for !strings.HasSuffix(wd, name) {
		parent := filepath.Dir(wd)
		if parent == wd {
			return ""
		}
		wd = parent
	}
	return wd
}

// IsOnline sends a GET request to the given url and returns true if no error.
// An empty url probes https://www.google.com/ as a generic connectivity check.
func IsOnline(url string) bool {
	if len(url) == 0 {
		url = "https://www.google.com/"
	}
	resp, err := http.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return true
}
