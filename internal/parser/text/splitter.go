package text

import "regexp"

// Segment is a contiguous block of lines hypothesized to belong to exactly
// one source invoice. It is a read-only view into the normalized line
// sequence, not a copy.
type Segment struct {
	Lines []RawLine
}

func (s Segment) charCount() int {
	total := 0
	for _, l := range s.Lines {
		total += len(l.Content)
	}
	return total
}

// splitSegments partitions lines on repeated header markers. With fewer
// than minMarkers matches the whole sequence becomes a single segment:
// splitting needs unambiguous repeated evidence, because a false split
// corrupts two invoices while a missed split only produces one oversized
// invoice. Segment i spans marker i (inclusive) to marker i+1 (exclusive);
// the last segment runs to the end.
func splitSegments(lines []RawLine, marker *regexp.Regexp, minMarkers int) ([]Segment, []int) {
	var markers []int
	for i, line := range lines {
		if marker.MatchString(line.Content) {
			markers = append(markers, i)
		}
	}

	if len(markers) < minMarkers {
		return []Segment{{Lines: lines}}, markers
	}

	segments := make([]Segment, 0, len(markers))
	for i, start := range markers {
		end := len(lines)
		if i+1 < len(markers) {
			end = markers[i+1]
		}
		segments = append(segments, Segment{Lines: lines[start:end]})
	}
	return segments, markers
}
