package indexer

import (
	"regexp"
	"slices"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-folio/internal/blog"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IntegrityReport lists drift between the generated index and blogs.json.
type IntegrityReport struct {
	// OnlyInIndex holds slugs with a Markdown file but no metadata entry.
	OnlyInIndex []string `json:"only_in_index"`
	// OnlyInMeta holds metadata slugs with no matching document.
	OnlyInMeta []string `json:"only_in_meta"`
	// MissingFiles holds mdFile values that do not exist under the source dir.
	MissingFiles []string `json:"missing_files"`
}

// Clean reports whether no drift was found.
func (r IntegrityReport) Clean() bool {
	return len(r.OnlyInIndex) == 0 && len(r.OnlyInMeta) == 0 && len(r.MissingFiles) == 0
}

// VerifyMeta compares index records against the metadata envelope. exists
// reports whether an mdFile is present; a nil exists skips the file check.
// Unpublished metadata entries still count as correlated.
func VerifyMeta(records []blog.DocumentRecord, meta blog.MetaIndex, exists func(mdFile string) bool) IntegrityReport {
	indexed := make(map[string]struct{}, len(records))
	for _, rec := range records {
		indexed[rec.Slug] = struct{}{}
	}
	described := make(map[string]struct{}, len(meta.Blogs))

	report := IntegrityReport{}
	for _, entry := range meta.Blogs {
		described[entry.Slug] = struct{}{}
		if _, ok := indexed[entry.Slug]; !ok && !slices.Contains(report.OnlyInMeta, entry.Slug) {
			report.OnlyInMeta = append(report.OnlyInMeta, entry.Slug)
		}
		if exists != nil && entry.MDFile != "" && !exists(entry.MDFile) {
			report.MissingFiles = append(report.MissingFiles, entry.MDFile)
		}
	}
	for _, rec := range records {
		if _, ok := described[rec.Slug]; !ok {
			report.OnlyInIndex = append(report.OnlyInIndex, rec.Slug)
		}
	}
	return report
}

// SlugWarning flags a slug outside [A-Za-z0-9_-].
type SlugWarning struct {
	Slug      string `json:"slug"`
	Suggested string `json:"suggested,omitempty"`
}

// CheckSlugs returns a warning per record whose slug is not URL safe. Slugs
// are never rewritten; Suggested is advisory.
func CheckSlugs(records []blog.DocumentRecord) []SlugWarning {
	var warnings []SlugWarning
	for _, rec := range records {
		if slugPattern.MatchString(rec.Slug) {
			continue
		}
		warning := SlugWarning{Slug: rec.Slug}
		if normalized, err := slug.Normalize(rec.Slug); err == nil && normalized != rec.Slug {
			warning.Suggested = normalized
		}
		warnings = append(warnings, warning)
	}
	return warnings
}
