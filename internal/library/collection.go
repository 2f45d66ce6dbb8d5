package library

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Collection is the in-memory view of a project's managed files. It is
// rebuilt wholesale from every listing fetch (Replace); include, exclude,
// undo and delete apply tentative local transitions that stand until the
// next Replace reconciles them with the server.
type Collection struct {
	records []Record
}

// FromListing builds a Collection from the raw path strings the listing
// endpoint returns, dropping anything the library does not manage.
func FromListing(paths []string) *Collection {
	c := &Collection{}
	c.Replace(paths)
	return c
}

// Replace rebuilds the collection from a fresh listing. This is the
// authoritative reconciliation point for any earlier optimistic updates.
func (c *Collection) Replace(paths []string) {
	records := make([]Record, 0, len(paths))
	for _, p := range paths {
		if p == "" || !managed(p) {
			continue
		}
		records = append(records, Record{
			Path:   p,
			Name:   DisplayName(p),
			Source: Classify(p),
		})
	}
	c.records = records
}

// All returns every record in listing order.
func (c *Collection) All() []Record { return c.records }

// Len returns the number of managed files.
func (c *Collection) Len() int { return len(c.records) }

// BySource returns the records in the given category. PDF-backed
// categories only show PDFs; metadata sidecars stay hidden there.
func (c *Collection) BySource(source Category) []Record {
	var out []Record
	for _, r := range c.records {
		if r.Source != source {
			continue
		}
		switch source {
		case CategoryPubMed, CategoryScholar, CategoryIncluded, CategoryExcluded:
			if !strings.HasSuffix(strings.ToLower(r.Path), ".pdf") {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Glob returns the records whose path or base name matches the given
// doublestar pattern.
func (c *Collection) Glob(pattern string) ([]Record, error) {
	if pattern == "" {
		return c.records, nil
	}
	var out []Record
	for _, r := range c.records {
		matched, err := doublestar.PathMatch(pattern, r.Path)
		if err != nil {
			return nil, err
		}
		if !matched {
			matched, _ = doublestar.PathMatch(pattern, path.Base(r.Path))
		}
		if matched {
			out = append(out, r)
		}
	}
	return out, nil
}

// Find returns the record at the given path.
func (c *Collection) Find(p string) (Record, bool) {
	for _, r := range c.records {
		if r.Path == p {
			return r, true
		}
	}
	return Record{}, false
}

// Reclassify moves the file at the given path into a new category without
// waiting for a refresh. Returns false if the path is not tracked.
func (c *Collection) Reclassify(p string, to Category) bool {
	for i := range c.records {
		if c.records[i].Path == p {
			c.records[i].Source = to
			return true
		}
	}
	return false
}

// Remove drops the file at the given path from the local view, after an
// undo or delete round-trip succeeded.
func (c *Collection) Remove(p string) bool {
	for i := range c.records {
		if c.records[i].Path == p {
			c.records = append(c.records[:i], c.records[i+1:]...)
			return true
		}
	}
	return false
}
