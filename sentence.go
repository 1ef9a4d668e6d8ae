package chunkmd

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// trailing words whose dot does not end a sentence.
var sentenceAbbrevs = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true,
	"prof": true, "sr": true, "jr": true,
	"vs": true, "etc": true, "inc": true, "ltd": true,
	"e.g": true, "i.e": true, "viz": true, "al": true,
	"approx": true, "dept": true, "est": true,
	"fig": true, "no": true, "vol": true,
}

// trailingAbbrev reports whether the word ending at the dot at byte position
// dotPos is a known abbreviation.
func trailingAbbrev(text string, dotPos int) bool {
	start := dotPos
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !unicode.IsLetter(r) && r != '.' {
			break
		}
		start -= size
	}
	return sentenceAbbrevs[strings.ToLower(text[start:dotPos])]
}

// partOfNumber reports whether the dot at byte position dotPos sits between
// two digits (3.14, $1.50).
func partOfNumber(text string, dotPos int) bool {
	if dotPos == 0 || dotPos+1 >= len(text) {
		return false
	}
	prev, next := text[dotPos-1], text[dotPos+1]
	return prev >= '0' && prev <= '9' && next >= '0' && next <= '9'
}

// sentenceEnds returns byte offsets where text may be split at a sentence
// boundary. ASCII terminators (.!?) are checked against abbreviations and
// decimal numbers; CJK terminators (。！？) always end a sentence.
func sentenceEnds(text string) []int {
	runes := []rune(text)
	n := len(runes)
	offs := make([]int, n+1)
	pos := 0
	for i, r := range runes {
		offs[i] = pos
		pos += utf8.RuneLen(r)
	}
	offs[n] = pos

	var ends []int
	for i, r := range runes {
		if r == '。' || r == '！' || r == '？' {
			ends = append(ends, offs[i+1])
			continue
		}
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if r == '.' && (partOfNumber(text, offs[i]) || trailingAbbrev(text, offs[i])) {
			continue
		}
		if i+1 >= n {
			continue // offs[n] is the text end, not a split point
		}
		switch runes[i+1] {
		case '\n':
			ends = append(ends, offs[i+1])
		case ' ':
			if i+2 >= n {
				ends = append(ends, offs[n])
			} else if unicode.IsUpper(runes[i+2]) {
				ends = append(ends, offs[i+2])
			}
		}
	}
	return ends
}

// endsSentence reports whether a line closes a sentence, ignoring trailing
// quotes and emphasis markers.
func endsSentence(line string) bool {
	t := strings.TrimRight(strings.TrimSpace(line), ")\"'`*_")
	if t == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(t)
	switch r {
	case '.', '!', '?', ':', '。', '！', '？':
		return true
	}
	return false
}

// splitTextBounded splits text into pieces of at most maxChars, preferring
// sentence boundaries, then word boundaries, then hard slices for words
// longer than the bound.
func splitTextBounded(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= maxChars {
		return []string{text}
	}

	var parts []string
	prev := 0
	for _, e := range sentenceEnds(text) {
		if s := strings.TrimSpace(text[prev:e]); s != "" {
			parts = append(parts, s)
		}
		prev = e
	}
	if s := strings.TrimSpace(text[prev:]); s != "" {
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		parts = []string{text}
	}

	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, p := range parts {
		if len(p) > maxChars {
			flush()
			out = append(out, splitWordsBounded(p, maxChars)...)
			continue
		}
		if cur.Len() > 0 && cur.Len()+1+len(p) > maxChars {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(p)
	}
	flush()
	return out
}

// splitWordsBounded splits text at whitespace into pieces of at most
// maxChars, hard-slicing single words that exceed the bound.
func splitWordsBounded(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var out []string
	var cur strings.Builder
	for _, w := range words {
		if len(w) > maxChars {
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			for i := 0; i < len(w); i += maxChars {
				out = append(out, w[i:min(i+maxChars, len(w))])
			}
			continue
		}
		if cur.Len() > 0 && cur.Len()+1+len(w) > maxChars {
			out = append(out, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// splitLongLine splits a single line exceeding the max chunk size into
// sentence- then word-bounded pieces. Every piece keeps the original line
// number so chunk ordering stays non-decreasing.
func splitLongLine(line string, ln int, cfg ChunkConfig) []Chunk {
	var chunks []Chunk
	for _, seg := range splitTextBounded(line, cfg.MaxChunkSize) {
		chunks = append(chunks, Chunk{Content: seg, StartLine: ln, EndLine: ln})
	}
	return chunks
}
