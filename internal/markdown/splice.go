package markdown

import "strings"

// Markers delimiting the generated section in the readme.
// Content between them is fully replaced on every update.
const (
	StartMarker = "<!-- START_CONTRIBUTIONS -->"
	EndMarker   = "<!-- END_CONTRIBUTIONS -->"
)

const defaultHeader = "## Hi there 👋\n\nWelcome to my profile! Below you can find my open-source contributions."

// UpdateReadme splices the contributions section into the readme, keeping
// all content above the section. For empty current content a default profile
// header is used.
func UpdateReadme(current string, section string) string {
	return headerOf(current) + "\n\n" + StartMarker + "\n" + section + "\n" + EndMarker + "\n"
}

func headerOf(current string) string {
	if strings.TrimSpace(current) == "" {
		return defaultHeader
	}
	if i := strings.Index(current, StartMarker); i >= 0 {
		return strings.TrimSpace(current[:i])
	}
	// No markers. Keep everything above a previously generated section
	// so that rerunning on a markerless readme doesn't duplicate it.
	if i := strings.Index(current, contributionsHeading); i >= 0 {
		return strings.TrimSpace(current[:i])
	}

	return strings.TrimSpace(current)
}
