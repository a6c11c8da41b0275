// Package version knows the build version and checks GitHub for a newer
// release.
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Version is the build version, overridden at link time for releases.
var Version = "devel"

const (
	repoOwner = "wilbur182"
	repoName  = "schemer"
	apiURL    = "https://api.github.com/repos/%s/%s/releases/latest"
)

// Release represents a GitHub release response.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

// CheckResult holds the result of a version check.
type CheckResult struct {
	CurrentVersion string
	LatestVersion  string
	UpdateURL      string
	HasUpdate      bool
	Error          error
}

// Check fetches the latest release from GitHub and compares versions.
// Development builds skip the network entirely.
func Check(currentVersion string) CheckResult {
	result := CheckResult{CurrentVersion: currentVersion}

	if isDevelopmentVersion(currentVersion) {
		return result
	}

	client := &http.Client{Timeout: 5 * time.Second}
	url := fmt.Sprintf(apiURL, repoOwner, repoName)

	resp, err := client.Get(url)
	if err != nil {
		result.Error = err
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Errorf("github api: %s", resp.Status)
		return result
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		result.Error = err
		return result
	}

	result.LatestVersion = release.TagName
	result.UpdateURL = release.HTMLURL
	result.HasUpdate = isNewer(release.TagName, currentVersion)

	return result
}

// isDevelopmentVersion returns true for non-release versions.
func isDevelopmentVersion(v string) bool {
	if v == "" || v == "unknown" || v == "devel" {
		return true
	}
	return strings.HasPrefix(v, "devel+")
}

// isNewer compares two vX.Y.Z style tags numerically, part by part.
// Malformed parts compare as zero.
func isNewer(latest, current string) bool {
	lp := versionParts(latest)
	cp := versionParts(current)
	for i := 0; i < 3; i++ {
		if lp[i] != cp[i] {
			return lp[i] > cp[i]
		}
	}
	return false
}

func versionParts(v string) [3]int {
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	var parts [3]int
	for i, s := range strings.SplitN(v, ".", 3) {
		if n, err := strconv.Atoi(s); err == nil {
			parts[i] = n
		}
	}
	return parts
}
