package markdown

import (
	"fmt"
	"strings"

	"contribgen/internal/app"
)

const contributionsHeading = "## 🛠️ Open Source Contributions"

const (
	// maxPRDisplay limits pull request links listed per repository.
	maxPRDisplay = 3

	// Longer descriptions and titles are truncated to keep the table readable.
	maxDescriptionLen = 100
	maxTitleLen       = 60
)

// Render returns the contributions readme section.
// Contributions are rendered in given order, so they should be sorted
// by activity upfront.
func Render(contributions []app.Contribution) string {
	lines := []string{
		contributionsHeading,
		"",
		"A collection of my contributions to the open-source community, including merged pull requests and direct commits to default branches.",
		"",
		"### 📑 Summary",
		"",
	}

	if len(contributions) == 0 {
		lines = append(lines, "No contributions found.")
		return strings.Join(lines, "\n")
	}

	for _, c := range contributions {
		lines = append(lines, fmt.Sprintf("- **[%s](%s)**: %s", c.Repository.Name, c.Repository.URL, describe(c.Repository)))
	}

	lines = append(lines,
		"",
		"### 🔍 Detailed Contributions",
		"",
		"| Repository | Description | Type | Contributions |",
		"|:-----------|:------------|:----:|:--------------|",
	)

	for _, c := range contributions {
		lines = append(lines, tableRow(c))
	}

	return strings.Join(lines, "\n")
}

func tableRow(c app.Contribution) string {
	repoLink := fmt.Sprintf("**[%s](%s)**", c.Repository.Name, c.Repository.URL)
	description := truncate(describe(c.Repository), maxDescriptionLen)

	var links []string
	for i, pr := range c.PullRequests {
		if i == maxPRDisplay {
			break
		}
		links = append(links, fmt.Sprintf("[%s](%s)", truncate(pr.Title, maxTitleLen), pr.URL))
	}
	if extra := len(c.PullRequests) - maxPRDisplay; extra > 0 {
		links = append(links, fmt.Sprintf("*+%d more merged PRs*", extra))
	}

	contribs := "Direct commits"
	if len(links) > 0 {
		contribs = strings.Join(links, "<br>")
	}

	return fmt.Sprintf("| %s | %s | %s | %s |", repoLink, description, c.Kind(), contribs)
}

func describe(r app.Repository) string {
	if r.Description == "" {
		return "No description"
	}

	return r.Description
}

// truncate shortens s to at most max characters.
// The cut is marked with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-3]) + "..."
}
