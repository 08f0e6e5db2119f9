package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// ReleaseURL is the GitHub API endpoint for the latest release.
const ReleaseURL = "https://api.github.com/repos/Dicklesworthstone/orgchart_viewer/releases/latest"

type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckForUpdates queries url for the latest release.
// Returns the new version tag and its page if it is newer than current,
// empty strings otherwise.
func CheckForUpdates(ctx context.Context, url, current string) (string, string, error) {
	// Set a short timeout to avoid blocking the command for too long
	client := http.Client{
		Timeout: 2 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", "", fmt.Errorf("decode release: %w", err)
	}

	if compareVersions(rel.TagName, current) > 0 {
		return rel.TagName, rel.HTMLURL, nil
	}
	return "", "", nil
}

// compareVersions returns 1 if v1 > v2, -1 if v1 < v2, 0 if equal.
// Tags may omit the leading "v"; invalid tags sort before valid ones.
func compareVersions(v1, v2 string) int {
	return semver.Compare(canonical(v1), canonical(v2))
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
