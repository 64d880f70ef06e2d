package textproc

import "strings"

// paragraphSeparatorLen accounts for the "\n\n" joining paragraphs when
// packing them into a chunk.
const paragraphSeparatorLen = 2

// Chunk splits normalized text into overlapping chunks of at most size bytes.
// Whole paragraphs are packed greedily: a paragraph joins the current chunk
// when it fits together with the separator, otherwise the chunk is emitted
// and a new one begins. A paragraph longer than size is split on word
// boundaries, and only there does overlap apply: each sub-chunk after the
// first starts with the last overlap/10 words of its predecessor. A single
// word longer than size becomes a chunk of its own.
func Chunk(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}

	var chunks []string
	var current string

	for paragraph := range strings.SplitSeq(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		if current != "" && len(current)+len(paragraph)+paragraphSeparatorLen <= size {
			current += "\n\n" + paragraph
			continue
		}

		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}

		if len(paragraph) <= size {
			current = paragraph
			continue
		}

		chunks = append(chunks, splitParagraph(paragraph, size, overlap)...)
	}

	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}

// splitParagraph splits one oversized paragraph on word boundaries into
// chunks of at most size bytes, carrying overlap/10 words between chunks.
func splitParagraph(paragraph string, size, overlap int) []string {
	words := strings.Fields(paragraph)
	carry := overlap / 10

	var chunks []string
	var current []string
	currentLen := 0

	for _, word := range words {
		wordLen := len(word)
		if len(current) > 0 {
			wordLen++ // joining space
		}

		if currentLen+wordLen > size && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = carryTail(current, carry)
			currentLen = joinedLen(current)
			if len(current) > 0 {
				wordLen = len(word) + 1
			} else {
				wordLen = len(word)
			}
		}

		current = append(current, word)
		currentLen += wordLen
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// carryTail returns a copy of the last carry words, or nil when the chunk is
// too short to overlap meaningfully.
func carryTail(words []string, carry int) []string {
	if carry <= 0 || carry >= len(words) {
		return nil
	}

	tail := make([]string, carry)
	copy(tail, words[len(words)-carry:])

	return tail
}

// joinedLen is the byte length of words joined by single spaces.
func joinedLen(words []string) int {
	if len(words) == 0 {
		return 0
	}

	total := len(words) - 1
	for _, word := range words {
		total += len(word)
	}

	return total
}
