package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

// indexMarker opens the entry list of the plain-text RFC index.
const indexMarker = "RFC INDEX"

// maxLineBytes bounds a single index line. Longer lines are reported
// and skipped so the entries around them still parse.
const maxLineBytes = 1 << 20

// maxEntryIndent is the deepest indent an entry line may have.
// Continuation lines in rfc-index.txt are indented by five spaces.
const maxEntryIndent = 3

var entryPattern = regexp.MustCompile(`^(\s*)(\d{4,5})\s+(.+)$`)

// IndexLine is the outcome of parsing one line of the index.
// It is either a ParsedEntry or a SkippedLine.
type IndexLine interface {
	lineNumber() int
}

// ParsedEntry is a line that yielded an index entry.
type ParsedEntry struct {
	Line  int
	Entry domain.IndexEntry
}

func (p ParsedEntry) lineNumber() int { return p.Line }

// SkippedLine is a line that did not yield an entry.
type SkippedLine struct {
	Line   int
	Reason string
}

func (s SkippedLine) lineNumber() int { return s.Line }

// ParseIndexLines classifies every line of data after the index marker.
// When the marker is absent every line is considered.
func ParseIndexLines(data []byte) []IndexLine {
	started := !bytes.Contains(data, []byte(indexMarker))

	var out []IndexLine
	rest := data
	n := 0
	for len(rest) > 0 {
		var raw []byte
		raw, rest, _ = bytes.Cut(rest, []byte{'\n'})
		n++

		if len(raw) > maxLineBytes {
			if started {
				out = append(out, SkippedLine{Line: n, Reason: "line too long"})
			}
			continue
		}
		line := strings.TrimRight(string(raw), "\r")

		if strings.Contains(line, indexMarker) {
			started = true
			continue
		}
		if !started {
			continue
		}

		out = append(out, parseIndexLine(n, line))
	}

	return out
}

func parseIndexLine(n int, line string) IndexLine {
	if strings.TrimSpace(line) == "" {
		return SkippedLine{Line: n, Reason: "blank"}
	}

	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return SkippedLine{Line: n, Reason: "no entry number"}
	}
	if len(m[1]) > maxEntryIndent {
		return SkippedLine{Line: n, Reason: "continuation"}
	}

	number, err := strconv.Atoi(m[2])
	if err != nil || number <= 0 {
		return SkippedLine{Line: n, Reason: "invalid entry number"}
	}

	title := entryTitle(m[3])
	if title == "" {
		return SkippedLine{Line: n, Reason: "empty title"}
	}

	return ParsedEntry{Line: n, Entry: domain.IndexEntry{Number: number, Title: title}}
}

// entryTitle reduces a citation to its title: the text before the first period.
func entryTitle(citation string) string {
	if strings.Contains(citation, domain.NotIssuedTitle) {
		return domain.NotIssuedTitle
	}
	title, _, _ := strings.Cut(citation, ".")
	return strings.TrimSpace(title)
}

// ParseIndex extracts entries from a raw index in file order.
// Malformed lines are skipped; an index with no entries is a fetch failure.
func ParseIndex(data []byte) ([]domain.IndexEntry, int, error) {
	var entries []domain.IndexEntry
	skipped := 0

	for _, l := range ParseIndexLines(data) {
		switch v := l.(type) {
		case ParsedEntry:
			entries = append(entries, v.Entry)
		case SkippedLine:
			skipped++
		}
	}

	if len(entries) == 0 {
		return nil, skipped, fmt.Errorf("%w: unparseable index: no entries in %d bytes", domain.ErrFetchFailure, len(data))
	}
	return entries, skipped, nil
}
