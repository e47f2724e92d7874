package source

import "strings"

// Direction selects which way a scan moves from its starting offset.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

var (
	spaceSeqs   = []string{" ", "\t"}
	newlineSeqs = []string{"\n", "\r\n"}
	semiSeqs    = []string{";"}
)

// skipOnce steps over one of seqs adjacent to idx. When several match the
// last one in seqs wins.
func skipOnce(text string, idx int, seqs []string, dir Direction) int {
	skip := 0
	for _, seq := range seqs {
		if dir == Backward {
			if idx-len(seq) >= 0 && idx <= len(text) && text[idx-len(seq):idx] == seq {
				skip = len(seq)
			}
			continue
		}
		if idx >= 0 && idx+len(seq) <= len(text) && text[idx:idx+len(seq)] == seq {
			skip = len(seq)
		}
	}
	if dir == Backward {
		return idx - skip
	}
	return idx + skip
}

func skipMany(text string, idx int, seqs []string, dir Direction) int {
	for {
		next := skipOnce(text, idx, seqs, dir)
		if next == idx {
			return idx
		}
		idx = next
	}
}

// SkipSpaces moves idx over blanks and tabs.
func SkipSpaces(text string, idx int, dir Direction) int {
	return skipMany(text, idx, spaceSeqs, dir)
}

// SkipNewline moves idx over at most one line break.
func SkipNewline(text string, idx int, dir Direction) int {
	return skipOnce(text, idx, newlineSeqs, dir)
}

// HasNewline reports whether only blanks separate idx from a line break in
// the given direction.
func HasNewline(text string, idx int, dir Direction) bool {
	eol := SkipSpaces(text, idx, dir)
	return SkipNewline(text, eol, dir) != eol
}

// HasCommentNewline is HasNewline(Forward) that also treats a following
// comment as the end of the line.
func HasCommentNewline(text string, idx int) bool {
	idx = SkipSpaces(text, idx, Forward)
	if strings.HasPrefix(text[clamp(idx, len(text)):], "--") {
		return true
	}
	return HasNewline(text, idx, Forward)
}

// skipTrailingComment moves idx from the start of a "--" comment to the line
// break that ends it.
func skipTrailingComment(text string, idx int) int {
	if !strings.HasPrefix(text[clamp(idx, len(text)):], "--") {
		return idx
	}
	idx += 2
	for idx < len(text) {
		if text[idx] == '\n' || (text[idx] == '\r' && idx+1 < len(text) && text[idx+1] == '\n') {
			return idx
		}
		idx++
	}
	return idx
}

// HasNewlineInRange reports whether text[start:end] contains '\n'.
func HasNewlineInRange(text string, start, end int) bool {
	start, end = clamp(start, len(text)), clamp(end, len(text))
	if start >= end {
		return false
	}
	return strings.IndexByte(text[start:end], '\n') >= 0
}

// IsPreviousLineEmpty reports whether the line above the one containing idx
// holds only blanks.
func IsPreviousLineEmpty(text string, idx int) bool {
	idx = SkipSpaces(text, idx, Backward)
	idx = SkipNewline(text, idx, Backward)
	idx = SkipSpaces(text, idx, Backward)
	return SkipNewline(text, idx, Backward) != idx
}

// IsNextLineEmpty reports whether the line following the one ending at idx is
// blank. Semicolons and a trailing "--" comment on the current line are
// skipped first.
func IsNextLineEmpty(text string, idx int) bool {
	idx = SkipSpaces(text, idx, Forward)
	idx = skipMany(text, idx, semiSeqs, Forward)
	idx = SkipSpaces(text, idx, Forward)
	idx = skipTrailingComment(text, idx)
	idx = SkipNewline(text, idx, Forward)
	return HasNewline(text, idx, Forward)
}

func clamp(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n {
		return n
	}
	return idx
}
