package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapters_WellFormed(t *testing.T) {
	require.NotEmpty(t, Chapters)

	seenChoiceIDs := make(map[string]bool)
	for i, ch := range Chapters {
		assert.Equal(t, i, ch.ID, "chapter ids must match slice positions")
		assert.NotEmpty(t, ch.Title)
		assert.NotEmpty(t, ch.Narratives, "chapter %d has no narrative", i)
		require.Len(t, ch.Choices, 2, "chapter %d must offer exactly two choices", i)

		for _, c := range ch.Choices {
			assert.NotEmpty(t, c.ID)
			assert.NotEmpty(t, c.Effects, "choice %q has no effects", c.ID)
			assert.False(t, seenChoiceIDs[c.ID], "choice id %q reused across chapters", c.ID)
			seenChoiceIDs[c.ID] = true
		}
	}
}

func TestChapterAt_OutOfRangeFallsBackToFirst(t *testing.T) {
	assert.Equal(t, Chapters[0], ChapterAt(-1))
	assert.Equal(t, Chapters[0], ChapterAt(len(Chapters)))
	assert.Equal(t, Chapters[1], ChapterAt(1))
}

func TestLastNarrativeIndex(t *testing.T) {
	for i, ch := range Chapters {
		assert.Equal(t, len(ch.Narratives)-1, LastNarrativeIndex(i))
	}
}

func TestCharacters_WellFormed(t *testing.T) {
	require.NotEmpty(t, Characters)
	assert.Equal(t, DefaultCharacterID, Characters[0].CharacterID)

	seen := make(map[string]bool)
	for _, c := range Characters {
		assert.NotEmpty(t, c.CharacterID)
		assert.NotEmpty(t, c.Name)
		assert.False(t, seen[c.CharacterID], "character id %q duplicated", c.CharacterID)
		seen[c.CharacterID] = true
	}
}

func TestCharacterByIDOrDefault(t *testing.T) {
	c := CharacterByIDOrDefault("thunder-kick")
	assert.Equal(t, "Thunder Kick", c.Name)

	fallback := CharacterByIDOrDefault("nobody")
	assert.Equal(t, DefaultCharacterID, fallback.CharacterID)
}
