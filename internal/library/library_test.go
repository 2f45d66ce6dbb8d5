package library

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		{"users/u1/kidney/pubmed/topicA/file_1.pdf", CategoryPubMed},
		{"users/u1/kidney/google_scholar/topicA/file_2.pdf", CategoryScholar},
		{"users/u1/kidney/includes/topicA/file_3.pdf", CategoryIncluded},
		{"users/u1/kidney/excludes/topicA/file_4.pdf", CategoryExcluded},
		{"users/u1/kidney/exports/results.csv", CategoryCSV},
		{"users/u1/kidney/figures/fig_1.png", CategoryImages},
		{"users/u1/kidney/figures/fig_2.JPG", CategoryImages},
		// Directory markers win over extension.
		{"users/u1/kidney/includes/topicA/REASON_3.txt", CategoryIncluded},
		// Unrecognizable layout falls back to PubMed.
		{"users/u1/kidney/misc/paper.pdf", CategoryPubMed},
	}

	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFromListingFilters(t *testing.T) {
	c := FromListing([]string{
		"users/u1/kidney/pubmed/topicA/file_1.pdf",
		"users/u1/kidney/pubmed/topicA/file_1.txt",
		"users/u1/kidney/",          // folder entry
		"users/u1/kidney/notes.doc", // unmanaged extension
		"",
	})

	if c.Len() != 2 {
		t.Fatalf("expected 2 managed files, got %d: %v", c.Len(), c.All())
	}
	if got := c.All()[0].Name; got != "file 1.pdf" {
		t.Errorf("display name: got %q, want %q", got, "file 1.pdf")
	}
}

func TestBySourceHidesSidecars(t *testing.T) {
	c := FromListing([]string{
		"users/u1/kidney/pubmed/topicA/file_1.pdf",
		"users/u1/kidney/pubmed/topicA/file_1.txt",
		"users/u1/kidney/exports/results.csv",
	})

	pubmed := c.BySource(CategoryPubMed)
	if len(pubmed) != 1 || pubmed[0].Path != "users/u1/kidney/pubmed/topicA/file_1.pdf" {
		t.Errorf("BySource(PubMed) = %v", pubmed)
	}
	if csv := c.BySource(CategoryCSV); len(csv) != 1 {
		t.Errorf("BySource(CSV) = %v", csv)
	}
}

func TestTopic(t *testing.T) {
	if got := Topic("users/u1/kidney/pubmed/topicA/file_1.pdf"); got != "topicA" {
		t.Errorf("Topic = %q, want %q", got, "topicA")
	}
	if got := Topic("file.pdf"); got != "" {
		t.Errorf("Topic of bare filename = %q, want empty", got)
	}
}

func TestMetadataPath(t *testing.T) {
	tests := []struct {
		record Record
		want   string
	}{
		{
			Record{Path: "users/u1/kidney/pubmed/topicA/file_1.pdf", Source: CategoryPubMed},
			"users/u1/kidney/pubmed/topicA/file_1.txt",
		},
		{
			Record{Path: "users/u1/kidney/includes/topicA/file_7.pdf", Source: CategoryIncluded},
			"users/u1/kidney/includes/topicA/file_REASON_7.txt",
		},
		{
			Record{Path: "users/u1/kidney/excludes/topicA/paper_12.pdf", Source: CategoryExcluded},
			"users/u1/kidney/excludes/topicA/paper_REASON_12.txt",
		},
	}

	for _, tt := range tests {
		if got := MetadataPath(tt.record); got != tt.want {
			t.Errorf("MetadataPath(%q) = %q, want %q", tt.record.Path, got, tt.want)
		}
	}
}

func TestOptimisticTransitions(t *testing.T) {
	c := FromListing([]string{
		"users/u1/kidney/pubmed/topicA/file_1.pdf",
		"users/u1/kidney/google_scholar/topicB/file_2.pdf",
	})

	// Include: PubMed -> Included without a refresh.
	if !c.Reclassify("users/u1/kidney/pubmed/topicA/file_1.pdf", CategoryIncluded) {
		t.Fatal("Reclassify of tracked path returned false")
	}
	rec, ok := c.Find("users/u1/kidney/pubmed/topicA/file_1.pdf")
	if !ok || rec.Source != CategoryIncluded {
		t.Fatalf("after include: %+v ok=%v", rec, ok)
	}
	if len(c.BySource(CategoryPubMed)) != 0 {
		t.Error("file still listed under PubMed after include")
	}

	// Undo/delete drop the record locally.
	if !c.Remove("users/u1/kidney/google_scholar/topicB/file_2.pdf") {
		t.Fatal("Remove of tracked path returned false")
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 record after Remove, got %d", c.Len())
	}

	if c.Reclassify("untracked.pdf", CategoryIncluded) {
		t.Error("Reclassify of untracked path returned true")
	}
	if c.Remove("untracked.pdf") {
		t.Error("Remove of untracked path returned true")
	}

	// A fresh listing is authoritative and wipes tentative state.
	c.Replace([]string{"users/u1/kidney/includes/topicA/file_1.pdf"})
	if c.Len() != 1 || c.All()[0].Source != CategoryIncluded {
		t.Errorf("after Replace: %v", c.All())
	}
}

func TestGlob(t *testing.T) {
	c := FromListing([]string{
		"users/u1/kidney/pubmed/topicA/file_1.pdf",
		"users/u1/kidney/exports/results.csv",
	})

	matches, err := c.Glob("**/*.csv")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Source != CategoryCSV {
		t.Errorf("Glob(**/*.csv) = %v", matches)
	}

	// Bare filename patterns match against the base name too.
	matches, err = c.Glob("file_*.pdf")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("Glob(file_*.pdf) = %v", matches)
	}

	all, err := c.Glob("")
	if err != nil || len(all) != 2 {
		t.Errorf("empty pattern should match all: %v %v", all, err)
	}
}
