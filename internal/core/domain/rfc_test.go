package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *IndexSnapshot {
	return NewIndexSnapshot([]IndexEntry{
		{Number: 2616, Title: "Hypertext Transfer Protocol -- HTTP/1.1"},
		{Number: 1149, Title: "Automated Directory and Database Update"},
		{Number: 14, Title: NotIssuedTitle},
		{Number: 791, Title: "Internet Protocol"},
	}, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), DefaultIndexURL)
}

func TestNewIndexSnapshot_Duplicates(t *testing.T) {
	s := NewIndexSnapshot([]IndexEntry{
		{Number: 1, Title: "First"},
		{Number: 2, Title: "Second"},
		{Number: 1, Title: "Replaced"},
	}, time.Now(), "")

	require.Equal(t, 2, s.Len())
	assert.Equal(t, IndexEntry{Number: 1, Title: "Replaced"}, s.Entries[0])
	assert.Equal(t, IndexEntry{Number: 2, Title: "Second"}, s.Entries[1])
}

func TestIndexSnapshot_Lookup(t *testing.T) {
	s := sampleSnapshot()

	e, ok := s.Lookup(1149)
	assert.True(t, ok)
	assert.Equal(t, "Automated Directory and Database Update", e.Title)

	_, ok = s.Lookup(9999999)
	assert.False(t, ok)

	var nilSnap *IndexSnapshot
	_, ok = nilSnap.Lookup(1)
	assert.False(t, ok)
}

func TestIndexSnapshot_LookupWithoutIndex(t *testing.T) {
	s := &IndexSnapshot{Entries: []IndexEntry{{Number: 7, Title: "Seven"}}}

	e, ok := s.Lookup(7)
	assert.True(t, ok)
	assert.Equal(t, "Seven", e.Title)
}

func TestIndexSnapshot_Reindex(t *testing.T) {
	s := &IndexSnapshot{Entries: []IndexEntry{
		{Number: 0, Title: "Bad"},
		{Number: 3, Title: "Three"},
		{Number: 3, Title: "Three again"},
	}}

	s.Reindex()

	require.Equal(t, 1, s.Len())
	e, ok := s.Lookup(3)
	assert.True(t, ok)
	assert.Equal(t, "Three again", e.Title)
}

func TestIndexSnapshot_Filter(t *testing.T) {
	s := sampleSnapshot()

	tests := []struct {
		name     string
		keyword  string
		expected []int
	}{
		{"lower case", "directory", []int{1149}},
		{"upper case", "DIRECTORY", []int{1149}},
		{"ascending order", "protocol", []int{791, 2616}},
		{"no match", "zzzznotfound", []int{}},
		{"not issued", "not issued", []int{14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Filter(tt.keyword)
			require.NotNil(t, got)
			numbers := make([]int, 0, len(got))
			for _, e := range got {
				numbers = append(numbers, e.Number)
			}
			assert.Equal(t, tt.expected, numbers)
		})
	}
}

func TestWindow_Lines(t *testing.T) {
	w := Window{StartLine: 40, ReturnedCount: 11, TotalLines: 50}
	assert.Equal(t, 50, w.EndLine())
	assert.Equal(t, 0, w.NextStartLine())

	w = Window{StartLine: 1, ReturnedCount: 20, TotalLines: 50, HasMore: true}
	assert.Equal(t, 20, w.EndLine())
	assert.Equal(t, 21, w.NextStartLine())

	w = Window{StartLine: 51, TotalLines: 50}
	assert.Equal(t, 0, w.EndLine())
	assert.Equal(t, 0, w.NextStartLine())
}
