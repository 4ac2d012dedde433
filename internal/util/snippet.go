package util

import "unicode/utf8"

// Snippet returns text[start:end] widened by radius bytes on each side,
// with "..." marking any side that was cut
func Snippet(text string, start, end, radius int) string {
	from, to := bounds(text, start-radius, end+radius)
	prefix, suffix := "", ""
	if from > 0 {
		prefix = "..."
	}
	if to < len(text) {
		suffix = "..."
	}
	return prefix + text[from:to] + suffix
}

// Window returns text[from:to] clamped to the string and snapped outwards to rune starts
func Window(text string, from, to int) string {
	from, to = bounds(text, from, to)
	return text[from:to]
}

func bounds(text string, from, to int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > len(text) {
		to = len(text)
	}
	if from > to {
		from = to
	}
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}
	return from, to
}
