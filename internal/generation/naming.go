package generation

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	repoSuffix  = "-contribution"
	customTitle = "custom"
)

// RepoName derives the repository name for a piece of text: lowercased, with
// every run of characters outside [a-z0-9] collapsed into a single dash.
// Empty text is named "custom".
func RepoName(text string) string {
	if strings.TrimSpace(text) == "" {
		text = customTitle
	}
	lowered := cases.Lower(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(lowered) + len(repoSuffix))
	dash := false
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	b.WriteString(repoSuffix)
	return b.String()
}
