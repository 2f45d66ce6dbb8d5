// Package library models the per-project downloaded-file collection. The
// backend only ever returns flat path strings; everything else — source
// category, display name, topic, the sidecar metadata path — is derived
// client-side at fetch time.
package library

import (
	"path"
	"regexp"
	"strings"
)

// Category classifies a managed file by where its storage path places it.
type Category string

const (
	CategoryPubMed   Category = "PubMed"
	CategoryScholar  Category = "Google Scholar"
	CategoryCSV      Category = "CSV"
	CategoryImages   Category = "Images"
	CategoryIncluded Category = "Included"
	CategoryExcluded Category = "Excluded"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryPubMed,
	CategoryScholar,
	CategoryCSV,
	CategoryImages,
	CategoryIncluded,
	CategoryExcluded,
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Record is one managed file. Source is recomputed from Path on every
// listing fetch; include/exclude mutate it optimistically until the next
// refresh makes the server's view authoritative again.
type Record struct {
	Path   string
	Name   string
	Source Category
}

// Classify derives the source category from a storage path. Directory
// markers win over extensions; anything unrecognized lands in PubMed,
// matching how the backend lays out legacy projects.
func Classify(p string) Category {
	lower := strings.ToLower(p)
	switch {
	case strings.Contains(lower, "/includes/"):
		return CategoryIncluded
	case strings.Contains(lower, "/excludes/"):
		return CategoryExcluded
	case strings.Contains(lower, "/pubmed/"):
		return CategoryPubMed
	case strings.Contains(lower, "/google_scholar/"):
		return CategoryScholar
	case strings.HasSuffix(lower, ".csv"):
		return CategoryCSV
	case imageExtensions[path.Ext(lower)]:
		return CategoryImages
	default:
		return CategoryPubMed
	}
}

// managed reports whether a listing path is a file the library tracks:
// PDFs, images, CSVs, and the .txt metadata sidecars next to them.
func managed(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	switch ext {
	case ".pdf", ".csv", ".txt":
		return true
	default:
		return imageExtensions[ext]
	}
}

// DisplayName renders the last path segment with underscores spaced, the
// way the dashboard shows article titles.
func DisplayName(p string) string {
	return strings.ReplaceAll(path.Base(p), "_", " ")
}

// Topic returns the topic directory a file was retrieved under: the
// second-to-last path segment.
func Topic(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	return segments[len(segments)-2]
}

// reasonNumber extracts the trailing number of an article PDF filename,
// used to locate its REASON_<n>.txt sidecar.
var (
	reasonNumber = regexp.MustCompile(`_(\d+)\.pdf$`)
	reasonSuffix = regexp.MustCompile(`\d+\.pdf$`)
)

// MetadataPath returns the path of the .txt sidecar holding a file's
// metadata. Included and excluded articles keep their reason in a
// REASON_<n>.txt next to the numbered PDF; everything else uses a plain
// .txt with the same stem.
func MetadataPath(r Record) string {
	if r.Source == CategoryIncluded || r.Source == CategoryExcluded {
		num := "1"
		if m := reasonNumber.FindStringSubmatch(r.Path); m != nil {
			num = m[1]
		}
		if loc := reasonSuffix.FindStringIndex(r.Path); loc != nil {
			return r.Path[:loc[0]] + "REASON_" + num + ".txt"
		}
	}
	return strings.TrimSuffix(r.Path, ".pdf") + ".txt"
}
