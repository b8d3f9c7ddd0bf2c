package domain

import (
	"sort"
	"strings"
	"time"
)

// NotIssuedTitle is the title recorded for numbers that were reserved but never published.
const NotIssuedTitle = "Not Issued"

// IndexEntry is one RFC in the index.
type IndexEntry struct {
	// Number is the canonical RFC identifier.
	Number int `json:"number"`

	// Title is the document title as published in the index.
	Title string `json:"title"`
}

// IndexSnapshot is the full set of known RFCs at a point in time.
// A snapshot is replaced wholesale on refresh and never patched.
type IndexSnapshot struct {
	// FetchedAt is when the index was downloaded from the remote source.
	FetchedAt time.Time `json:"fetched_at"`

	// Source is the locator the index was downloaded from.
	Source string `json:"source"`

	// Entries are in index-file order with unique numbers.
	Entries []IndexEntry `json:"entries"`

	byNumber map[int]int
}

// NewIndexSnapshot builds a snapshot from entries in file order.
// Later duplicates replace the title of earlier ones but keep the first position.
func NewIndexSnapshot(entries []IndexEntry, fetchedAt time.Time, source string) *IndexSnapshot {
	s := &IndexSnapshot{
		FetchedAt: fetchedAt,
		Source:    source,
		Entries:   make([]IndexEntry, 0, len(entries)),
	}
	s.byNumber = make(map[int]int, len(entries))
	for _, e := range entries {
		if pos, ok := s.byNumber[e.Number]; ok {
			s.Entries[pos].Title = e.Title
			continue
		}
		s.byNumber[e.Number] = len(s.Entries)
		s.Entries = append(s.Entries, e)
	}
	return s
}

// Reindex rebuilds the number lookup, dropping duplicates and
// non-positive numbers. Used after decoding a persisted snapshot.
func (s *IndexSnapshot) Reindex() {
	valid := make([]IndexEntry, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.Number > 0 {
			valid = append(valid, e)
		}
	}
	rebuilt := NewIndexSnapshot(valid, s.FetchedAt, s.Source)
	s.Entries = rebuilt.Entries
	s.byNumber = rebuilt.byNumber
}

// Len returns the number of entries.
func (s *IndexSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// Lookup returns the entry for number.
func (s *IndexSnapshot) Lookup(number int) (IndexEntry, bool) {
	if s == nil {
		return IndexEntry{}, false
	}
	if s.byNumber == nil {
		for _, e := range s.Entries {
			if e.Number == number {
				return e, true
			}
		}
		return IndexEntry{}, false
	}
	pos, ok := s.byNumber[number]
	if !ok {
		return IndexEntry{}, false
	}
	return s.Entries[pos], true
}

// Filter returns entries whose title contains keyword, ignoring case,
// ordered by ascending number. The result is never nil.
func (s *IndexSnapshot) Filter(keyword string) []IndexEntry {
	matches := make([]IndexEntry, 0)
	if s == nil {
		return matches
	}
	needle := strings.ToLower(keyword)
	for _, e := range s.Entries {
		if strings.Contains(strings.ToLower(e.Title), needle) {
			matches = append(matches, e)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Number < matches[j].Number
	})
	return matches
}

// IndexStatus summarises the snapshot currently served.
type IndexStatus struct {
	// Count is the number of entries.
	Count int `json:"count"`

	// FetchedAt is when the snapshot was downloaded.
	FetchedAt time.Time `json:"fetched_at"`

	// Source is the index locator.
	Source string `json:"source"`

	// CachedDocuments is the number of RFC texts held in the local cache.
	CachedDocuments int `json:"cached_documents"`
}

// Window is a bounded slice of a document's lines.
type Window struct {
	// Lines are the returned lines without line terminators.
	Lines []string

	// StartLine is the 1-indexed first requested line.
	StartLine int

	// ReturnedCount is len(Lines).
	ReturnedCount int

	// TotalLines is the number of lines in the whole document.
	TotalLines int

	// HasMore is true when lines remain after the window.
	HasMore bool
}

// EndLine returns the 1-indexed last line in the window, or 0 when empty.
func (w Window) EndLine() int {
	if w.ReturnedCount == 0 {
		return 0
	}
	return w.StartLine + w.ReturnedCount - 1
}

// NextStartLine returns where the following window begins, or 0 when none remains.
func (w Window) NextStartLine() int {
	if !w.HasMore {
		return 0
	}
	return w.EndLine() + 1
}

// PageInfo records the "[Page N]" footer markers seen in a window.
type PageInfo struct {
	// Found is true when at least one marker was present.
	Found bool `json:"found"`

	// First is the first page number seen.
	First int `json:"first,omitempty"`

	// Last is the last page number seen.
	Last int `json:"last,omitempty"`
}

// DocumentPage is a paginated read of one RFC.
type DocumentPage struct {
	Number        int      `json:"number"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	StartLine     int      `json:"start_line"`
	EndLine       int      `json:"end_line"`
	MaxLines      int      `json:"max_lines"`
	ReturnedCount int      `json:"returned_count"`
	TotalLines    int      `json:"total_lines"`
	HasMore       bool     `json:"has_more"`
	NextStartLine int      `json:"next_start_line,omitempty"`
	PageInfo      PageInfo `json:"page_info"`
}
