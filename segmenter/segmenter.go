// Package segmenter splits raw source texts into passage-sized chunks.
//
// Works with a known literary form (book-delimited, chapter-numbered,
// letter-numbered) are first split on their structural markers; the greedy
// paragraph-merge policy then runs within each structural unit. Unknown
// forms fall straight through to the paragraph merge.
package segmenter

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"

	"stoickb/types"
)

// Chunking thresholds in words. A merged chunk is emitted once it reaches
// MinWords, or just before it would exceed MaxWords; the trailing remainder
// of a unit is emitted regardless. Chunks below AbsoluteMinWords never
// become passages.
const (
	MinWords         = 30
	MaxWords         = 250
	AbsoluteMinWords = 30

	// Discourses passages run longer, so its window is wider.
	discoursesMinWords = 50
	discoursesMaxWords = 300
)

var (
	bookMarker    = regexp.MustCompile(`=== BOOK (\d+) ===`)
	chapterMarker = regexp.MustCompile(`\n(\d{1,2})\.\s`)
	letterMarker  = regexp.MustCompile(`(?:Letter|LETTER|Epistle|EPISTLE)\s+(\d+)`)

	whitespace   = regexp.MustCompile(`\s+`)
	nonSearchVal = regexp.MustCompile(`[^\w\s']`)
)

// sectionMeta records the structural position of a chunk within its work.
type sectionMeta struct {
	Book    int
	Chapter int
	Letter  int
	Section int
}

// Segment splits a work's full cleaned text into passages. Chunks shorter
// than AbsoluteMinWords are dropped and produce no passage. Ids are
// deterministic: segmenting identical text for the same work twice yields
// identical ids.
func Segment(work types.Work, text string) []types.Passage {
	var passages []types.Passage
	for chunk, meta := range chunksFor(work.ID, text) {
		chunk = CleanText(chunk)

		wordCount := len(strings.Fields(chunk))
		if wordCount < AbsoluteMinWords {
			continue
		}

		passages = append(passages, types.Passage{
			ID: PassageID(work.ID, chunk),
			Source: types.SourceInfo{
				Philosopher: work.Philosopher,
				Work:        work.ID,
				Book:        meta.Book,
				Chapter:     meta.Chapter,
				Letter:      meta.Letter,
				Section:     meta.Section,
			},
			Translation:    work.Translation,
			Text:           chunk,
			TextNormalized: NormalizeForSearch(chunk),
			JourneyContext: types.JourneyContext{Difficulty: types.Beginner},
			Metadata: types.PassageMetadata{
				Quotability:    5,
				Actionability:  5,
				Comfort:        5,
				WordCount:      wordCount,
				CharacterCount: len(chunk),
			},
		})
	}
	return passages
}

// PassageID derives the stable identifier from the work id and a content
// hash of the cleaned chunk text.
func PassageID(work types.WorkID, chunk string) string {
	sum := md5.Sum([]byte(chunk))
	return fmt.Sprintf("%s_%s", work, hex.EncodeToString(sum[:])[:12])
}

// CleanText collapses all whitespace runs and trims the ends.
func CleanText(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// NormalizeForSearch lowercases the text and strips punctuation except
// apostrophes. Derived, never hand-edited.
func NormalizeForSearch(text string) string {
	text = strings.ToLower(text)
	text = nonSearchVal.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// chunksFor selects the segmentation strategy for the work's literary form.
func chunksFor(work types.WorkID, text string) iter.Seq2[string, sectionMeta] {
	switch work {
	case types.Meditations:
		return chunkBooks(text, MinWords, MaxWords)
	case types.Discourses:
		return chunkBooks(text, discoursesMinWords, discoursesMaxWords)
	case types.Enchiridion:
		return chunkChapters(text)
	case types.Letters:
		return chunkLetters(text)
	default:
		return chunkGeneric(text)
	}
}

// chunkGeneric merges consecutive paragraphs into passage-sized chunks with
// a running section counter.
func chunkGeneric(text string) iter.Seq2[string, sectionMeta] {
	return func(yield func(string, sectionMeta) bool) {
		section := 0
		for chunk := range mergeParagraphs(text, MinWords, MaxWords) {
			section++
			if !yield(chunk, sectionMeta{Section: section}) {
				return
			}
		}
	}
}

func chunkBooks(text string, minWords, maxWords int) iter.Seq2[string, sectionMeta] {
	return func(yield func(string, sectionMeta) bool) {
		for _, unit := range splitNumbered(bookMarker, text) {
			section := 0
			for chunk := range mergeParagraphs(unit.body, minWords, maxWords) {
				section++
				if !yield(chunk, sectionMeta{Book: unit.num, Section: section}) {
					return
				}
			}
		}
	}
}

func chunkChapters(text string) iter.Seq2[string, sectionMeta] {
	return func(yield func(string, sectionMeta) bool) {
		for _, unit := range splitNumbered(chapterMarker, text) {
			section := 0
			for chunk := range mergeParagraphs(unit.body, MinWords, MaxWords) {
				section++
				if !yield(chunk, sectionMeta{Chapter: unit.num, Section: section}) {
					return
				}
			}
		}
	}
}

func chunkLetters(text string) iter.Seq2[string, sectionMeta] {
	return func(yield func(string, sectionMeta) bool) {
		for _, unit := range splitNumbered(letterMarker, text) {
			section := 0
			for chunk := range mergeParagraphs(unit.body, MinWords, MaxWords) {
				section++
				if !yield(chunk, sectionMeta{Letter: unit.num, Section: section}) {
					return
				}
			}
		}
	}
}

// mergeParagraphs is the greedy two-threshold merge: emit before adding a
// paragraph that would push the chunk past maxWords, emit after adding once
// the chunk reaches minWords. The trailing chunk may be shorter than
// minWords and is still emitted.
func mergeParagraphs(text string, minWords, maxWords int) iter.Seq[string] {
	return func(yield func(string) bool) {
		var current []string
		words := 0

		for _, para := range strings.Split(text, "\n\n") {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			n := len(strings.Fields(para))

			if words+n > maxWords && len(current) > 0 {
				if !yield(strings.Join(current, " ")) {
					return
				}
				current = nil
				words = 0
			}

			current = append(current, para)
			words += n

			if words >= minWords {
				if !yield(strings.Join(current, " ")) {
					return
				}
				current = nil
				words = 0
			}
		}

		if len(current) > 0 {
			yield(strings.Join(current, " "))
		}
	}
}

type numberedUnit struct {
	num  int
	body string
}

// splitNumbered cuts text on a marker pattern whose first capture group is
// the unit number. Text before the first marker becomes unit 0. When the
// pattern never matches, the whole text is one unmarked unit, so structured
// strategies degrade to the generic merge instead of failing.
func splitNumbered(re *regexp.Regexp, text string) []numberedUnit {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []numberedUnit{{num: 0, body: text}}
	}

	var units []numberedUnit
	if lead := text[:locs[0][0]]; strings.TrimSpace(lead) != "" {
		units = append(units, numberedUnit{num: 0, body: lead})
	}
	for i, m := range locs {
		num, _ := strconv.Atoi(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		units = append(units, numberedUnit{num: num, body: text[m[1]:end]})
	}
	return units
}
