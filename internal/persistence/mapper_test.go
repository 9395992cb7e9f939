package persistence

import (
	"testing"

	"streetsaga-server/internal/catalog"
	"streetsaga-server/internal/game"
	"streetsaga-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToProgress_FlattensState(t *testing.T) {
	st := game.NewGame("shadow-blade")
	st = game.Apply(st, game.MakeChoice{ChoiceID: "stand_ground", Effects: map[string]int{"virtue": 10, "courage": 10}})

	p := ToProgress(st)

	assert.Equal(t, int64(0), p.Chapter)
	assert.Equal(t, []models.StateVariable{
		{Name: "virtue", Value: "60"},
		{Name: "wisdom", Value: "50"},
		{Name: "courage", Value: "60"},
	}, p.StateVariables)

	require.Len(t, p.CompletedObjectives, 1)
	entry := p.CompletedObjectives[0]
	assert.Equal(t, int64(0), entry.MissionID)
	assert.Equal(t, []models.ObjectiveFlag{
		{Name: "readStory", Done: false},
		{Name: "madeChoice", Done: true},
		{Name: "completedChallenge", Done: false},
	}, entry.Objectives)

	require.NotNil(t, p.CharacterID)
	assert.Equal(t, catalog.EncodeCharacterID("shadow-blade"), *p.CharacterID)
}

func TestFromProgress_RoundTripRederivesCursor(t *testing.T) {
	st := game.NewGame("thunder-kick")
	st = game.Apply(st, game.AdvanceNarrative{})
	st = game.Apply(st, game.AdvanceNarrative{})
	st = game.Apply(st, game.MakeChoice{ChoiceID: "stand_ground", Effects: map[string]int{"virtue": 10, "courage": 10}})
	st = game.Apply(st, game.CompleteChallenge{Reward: map[string]int{"wisdom": 5}})

	loaded, err := FromProgress(ToProgress(st))
	require.NoError(t, err)

	assert.Equal(t, st.CurrentChapter, loaded.CurrentChapter)
	assert.Equal(t, st.SelectedCharacterID, loaded.SelectedCharacterID)
	assert.Equal(t, st.Vars, loaded.Vars)
	assert.Equal(t, st.ChapterObjectives, loaded.ChapterObjectives)
	assert.Equal(t, st.ChallengeCompleted, loaded.ChallengeCompleted)
	// readStory was set, so the cursor lands on the final paragraph.
	assert.Equal(t, catalog.LastNarrativeIndex(st.CurrentChapter), loaded.CurrentNarrative)
	// The choice log is not persisted.
	assert.Empty(t, loaded.ChoiceHistory)
}

func TestFromProgress_MidChapterCursorResetsToZero(t *testing.T) {
	st := game.NewGame("iron-fist")
	st = game.Apply(st, game.AdvanceNarrative{})
	require.False(t, st.ChapterObjectives.ReadStory)

	loaded, err := FromProgress(ToProgress(st))
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.CurrentNarrative)
}

func TestFromProgress_MissingCharacterIDRejected(t *testing.T) {
	p := ToProgress(game.NewGame("iron-fist"))
	p.CharacterID = nil

	_, err := FromProgress(p)
	assert.ErrorIs(t, err, models.ErrMissingCharacterData)
}

func TestFromProgress_MissingOrDamagedAttributesDefault(t *testing.T) {
	cid := int64(1)
	p := models.Progress{
		Chapter: 1,
		StateVariables: []models.StateVariable{
			{Name: "virtue", Value: "not-a-number"},
			{Name: "courage", Value: " 72 "},
		},
		CharacterID: &cid,
	}

	loaded, err := FromProgress(p)
	require.NoError(t, err)

	assert.Equal(t, 50, loaded.Vars.Virtue, "damaged value defaults")
	assert.Equal(t, 50, loaded.Vars.Wisdom, "missing value defaults")
	assert.Equal(t, 72, loaded.Vars.Courage, "whitespace is tolerated")
}

func TestFromProgress_OutOfRangeChapterClampsToStart(t *testing.T) {
	cid := int64(0)
	p := models.Progress{Chapter: 42, CharacterID: &cid}

	loaded, err := FromProgress(p)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.CurrentChapter)
}

func TestFromProgress_IgnoresObjectivesFromOtherChapters(t *testing.T) {
	cid := int64(0)
	p := models.Progress{
		Chapter: 1,
		CompletedObjectives: []models.ObjectiveProgress{
			{
				MissionID: 0,
				Objectives: []models.ObjectiveFlag{
					{Name: "readStory", Done: true},
					{Name: "madeChoice", Done: true},
					{Name: "completedChallenge", Done: true},
				},
			},
		},
		CharacterID: &cid,
	}

	loaded, err := FromProgress(p)
	require.NoError(t, err)

	assert.Equal(t, game.ChapterObjectives{ChapterID: 1}, loaded.ChapterObjectives)
	assert.Equal(t, 0, loaded.CurrentNarrative)
	assert.False(t, loaded.ChallengeCompleted)
}

func TestProfileRoundTrip(t *testing.T) {
	profile := ToProfile("Ryu", "thunder-kick")
	name, characterID := FromProfile(profile)

	assert.Equal(t, "Ryu", name)
	assert.Equal(t, "thunder-kick", characterID)
}

func TestToProfile_UnknownCharacterFallsBackToDefault(t *testing.T) {
	profile := ToProfile("Ken", "unknown-fighter")
	_, characterID := FromProfile(profile)
	assert.Equal(t, catalog.DefaultCharacterID, characterID)
}
