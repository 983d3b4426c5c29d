package segmenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stoickb/types"
)

func paragraph(words int) string {
	return strings.TrimSpace(strings.Repeat("word ", words))
}

func TestMergeParagraphsBounds(t *testing.T) {
	var paras []string
	for range 40 {
		paras = append(paras, paragraph(20))
	}
	text := strings.Join(paras, "\n\n")

	var chunks []string
	for chunk := range mergeParagraphs(text, 30, 250) {
		chunks = append(chunks, chunk)
	}
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		n := len(strings.Fields(chunk))
		if i < len(chunks)-1 {
			assert.GreaterOrEqual(t, n, 30, "chunk %d too short", i)
		}
		assert.LessOrEqual(t, n, 250, "chunk %d too long", i)
	}
}

func TestMergeParagraphsTrailingRemainder(t *testing.T) {
	text := paragraph(40) + "\n\n" + paragraph(10)

	var chunks []string
	for chunk := range mergeParagraphs(text, 30, 250) {
		chunks = append(chunks, chunk)
	}

	require.Len(t, chunks, 2)
	assert.Equal(t, 10, len(strings.Fields(chunks[1])))
}

func TestMergeParagraphsSingleShortParagraph(t *testing.T) {
	text := "It is not things that disturb us, but our judgments about things. When you are anxious, examine your judgment first."

	var chunks []string
	for chunk := range mergeParagraphs(text, 5, 50) {
		chunks = append(chunks, chunk)
	}

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSegmentDeterministicIDs(t *testing.T) {
	work := types.Work{ID: types.OnAnger, Philosopher: types.Seneca}
	text := paragraph(60) + "\n\n" + paragraph(45)

	first := Segment(work, text)
	second := Segment(work, text)

	require.NotEmpty(t, first)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestPassageIDFormat(t *testing.T) {
	id := PassageID(types.Meditations, "some cleaned chunk text")

	assert.True(t, strings.HasPrefix(id, "meditations_"))
	assert.Len(t, strings.TrimPrefix(id, "meditations_"), 12)
}

func TestSegmentDropsShortChunks(t *testing.T) {
	work := types.Work{ID: types.OnAnger, Philosopher: types.Seneca}

	passages := Segment(work, paragraph(10))
	assert.Empty(t, passages)
}

func TestSegmentBooks(t *testing.T) {
	work := types.Work{ID: types.Meditations, Philosopher: types.MarcusAurelius}
	text := "=== BOOK 1 ===\n\n" + paragraph(40) + "\n\n=== BOOK 2 ===\n\n" + paragraph(40)

	passages := Segment(work, text)
	require.Len(t, passages, 2)

	assert.Equal(t, 1, passages[0].Source.Book)
	assert.Equal(t, 2, passages[1].Source.Book)
	assert.Equal(t, 1, passages[0].Source.Section)
	assert.Equal(t, types.MarcusAurelius, passages[0].Source.Philosopher)
}

func TestSegmentLetters(t *testing.T) {
	work := types.Work{ID: types.Letters, Philosopher: types.Seneca}
	text := "Letter 1\n\n" + paragraph(40) + "\n\nLetter 2\n\n" + paragraph(40)

	passages := Segment(work, text)
	require.Len(t, passages, 2)
	assert.Equal(t, 1, passages[0].Source.Letter)
	assert.Equal(t, 2, passages[1].Source.Letter)
}

func TestSegmentNoMarkersDegrades(t *testing.T) {
	work := types.Work{ID: types.Meditations, Philosopher: types.MarcusAurelius}

	passages := Segment(work, paragraph(40))
	require.Len(t, passages, 1)
	assert.Equal(t, 0, passages[0].Source.Book)
	assert.Equal(t, 1, passages[0].Source.Section)
}

func TestSegmentFillsMetadata(t *testing.T) {
	work := types.Work{ID: types.OnAnger, Philosopher: types.Seneca}

	passages := Segment(work, paragraph(40))
	require.Len(t, passages, 1)

	p := passages[0]
	assert.Equal(t, 40, p.Metadata.WordCount)
	assert.Equal(t, len(p.Text), p.Metadata.CharacterCount)
	assert.Equal(t, 5, p.Metadata.Quotability)
	assert.Nil(t, p.Embedding)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\tb   c\n"))
}

func TestNormalizeForSearch(t *testing.T) {
	got := NormalizeForSearch("It is not Things, that disturb us; it's judgments!")
	assert.Equal(t, "it is not things that disturb us it's judgments", got)
}
