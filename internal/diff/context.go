package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// hunkHeaderPattern matches a full hunk header like "@@ -10,7 +10,8 @@".
var hunkHeaderPattern = regexp.MustCompile(`@@ -(\d+),(\d+) \+(\d+),(\d+) @@`)

// ExtractContext assembles the surrounding-code excerpt for every added line
// in a unified diff patch. For each added line it slices a window of
// contextLines lines on either side out of fullContent, and the windows are
// concatenated with a blank separator line.
//
// The cursor tracks the old-side start of each hunk (oldStart-1), not the
// new-side start, while windows are sliced from the post-change content.
// This convention is preserved from the original tool and must stay
// consistent across both sides of the header.
//
// A hunk header that doesn't match the expected numeric pattern is skipped
// and leaves the cursor unchanged. An empty patch, or a patch with no added
// lines, yields an empty string.
func ExtractContext(fullContent, patch string, contextLines int) string {
	if patch == "" {
		return ""
	}

	lines := strings.Split(fullContent, "\n")
	cursor := 0

	var blocks []string
	for _, raw := range strings.Split(patch, "\n") {
		switch {
		case strings.HasPrefix(raw, "@@"):
			if start, ok := parseHunkOldStart(raw); ok {
				cursor = start - 1
			}
		case strings.HasPrefix(raw, "+"):
			begin := cursor - contextLines
			if begin < 0 {
				begin = 0
			}
			end := cursor + contextLines + 1
			if end > len(lines) {
				end = len(lines)
			}
			if begin < end {
				blocks = append(blocks, strings.Join(lines[begin:end], "\n"))
			}
			cursor++
		default:
			// Removed and unchanged lines both advance the cursor
			// without emitting.
			cursor++
		}
	}

	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

// parseHunkOldStart extracts the old-side starting line from a hunk header.
// Returns false when the header doesn't carry the full numeric range.
func parseHunkOldStart(line string) (int, bool) {
	m := hunkHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}

	start, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	return start, true
}
