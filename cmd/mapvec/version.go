package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// currentVersion is stamped at release time via -ldflags; "dev" covers
// plain `go build` checkouts.
var currentVersion = "dev"

const updateRepo = "mvgraph/mapvec"

var semverPattern = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// detectLatestFallback queries the GitHub Releases API directly and
// returns the highest semver-tagged, non-draft, non-prerelease release it
// can find, skipping go-github-selfupdate's own tag-format assumptions
// since project release tags don't always follow them.
func detectLatestFallback(repo string) (*selfupdate.Release, bool, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/releases", repo)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(apiURL)
	if err != nil {
		return nil, false, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed reading github response: %w", err)
	}

	var releases []struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
		Assets     []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, false, fmt.Errorf("failed to decode github releases: %w", err)
	}

	type candidate struct {
		ver      semver.Version
		assetURL string
	}

	var candidates []candidate
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverPattern.FindString(r.TagName)
		if match == "" {
			match = semverPattern.FindString(r.Name)
			if match == "" {
				continue
			}
		}
		v, perr := semver.ParseTolerant(match)
		if perr != nil {
			continue
		}
		assetURL := ""
		for _, a := range r.Assets {
			nameLower := strings.ToLower(a.Name)
			if strings.Contains(nameLower, "linux") || strings.Contains(nameLower, "darwin") ||
				strings.Contains(nameLower, "windows") || strings.Contains(nameLower, "amd64") ||
				strings.Contains(nameLower, "arm64") {
				assetURL = a.BrowserDownloadURL
				break
			}
			if assetURL == "" {
				assetURL = a.BrowserDownloadURL
			}
		}
		candidates = append(candidates, candidate{ver: v, assetURL: assetURL})
	}
	if len(candidates) == 0 {
		return nil, false, nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ver.GT(candidates[j].ver) })
	best := candidates[0]
	return &selfupdate.Release{Version: best.ver, AssetURL: best.assetURL}, true, nil
}

func runVersion(args []string) {
	fs := flag.NewFlagSet("version", flag.ExitOnError)
	apply := fs.Bool("check-update", false, "check GitHub releases and install a newer version if one is found")
	fs.Parse(args)

	fmt.Printf("mapvec %s\n", currentVersion)
	if !*apply {
		return
	}

	if err := checkForUpdates(); err != nil {
		fmt.Fprintf(os.Stderr, "update check failed: %s\n", err)
		os.Exit(1)
	}
}

func checkForUpdates() error {
	latest, found, err := detectLatestFallback(updateRepo)
	if err != nil {
		return err
	}
	if !found || latest == nil {
		fmt.Printf("no releases found for %s\n", updateRepo)
		return nil
	}
	fmt.Printf("latest version: %s\n", latest.Version)

	current, perr := semver.ParseTolerant(currentVersion)
	if perr != nil {
		fmt.Printf("running a development build (%q); skipping version comparison\n", currentVersion)
		return nil
	}
	if latest.Version.Equals(current) || !latest.Version.GT(current) {
		fmt.Printf("already running the latest version: %s\n", current)
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Printf("a new version (%s) is available but has no downloadable asset for this platform\n", latest.Version)
		return nil
	}

	fmt.Printf("updating to %s...\n", latest.Version)
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate running executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	argv := append([]string{exe}, os.Args[1:]...)
	if err := syscall.Exec(exe, argv, os.Environ()); err != nil {
		cmd := exec.Command(exe, os.Args[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if startErr := cmd.Start(); startErr != nil {
			fmt.Printf("updated to %s, but failed to restart automatically: %v\n", latest.Version, startErr)
			fmt.Println("please restart mapvec manually")
			return nil
		}
		os.Exit(0)
	}
	return nil
}
