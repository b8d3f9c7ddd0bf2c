package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

var pageMarker = regexp.MustCompile(`\[Page\s+(\d+)\]`)

// SplitLines splits text on "\n", dropping a trailing "\r" from each line.
// A trailing newline does not start another line, so "a\nb\n" has two lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Paginate returns lines [startLine, startLine+maxLines) of text, 1-indexed.
// Reading past the end yields an empty window rather than an error.
func Paginate(text string, startLine, maxLines int) (domain.Window, error) {
	if maxLines <= 0 {
		return domain.Window{}, fmt.Errorf("%w: max_lines must be 1 or greater, got %d", domain.ErrInvalidArgument, maxLines)
	}
	if startLine < 1 {
		return domain.Window{}, fmt.Errorf("%w: start_line must be 1 or greater, got %d", domain.ErrInvalidArgument, startLine)
	}

	lines := SplitLines(text)
	total := len(lines)

	count := min(maxLines, total-startLine+1)
	if count < 0 {
		count = 0
	}

	w := domain.Window{
		Lines:         []string{},
		StartLine:     startLine,
		ReturnedCount: count,
		TotalLines:    total,
	}
	if count > 0 {
		w.Lines = lines[startLine-1 : startLine-1+count]
	}
	w.HasMore = startLine+count-1 < total
	return w, nil
}

// ExtractPageInfo finds the first and last "[Page N]" footer in content.
func ExtractPageInfo(content string) domain.PageInfo {
	matches := pageMarker.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return domain.PageInfo{}
	}

	first, _ := strconv.Atoi(matches[0][1])
	last, _ := strconv.Atoi(matches[len(matches)-1][1])
	return domain.PageInfo{Found: true, First: first, Last: last}
}
