// Package persistence maps in-memory game state to and from the wire
// representation used by the remote store. The mapping is tolerant on the way
// in (missing attributes default, damaged values default) with one deliberate
// exception: a save without a character id is rejected, because silently
// picking a fighter on the player's behalf is worse than asking them to
// re-save.
package persistence

import (
	"strconv"
	"strings"

	"streetsaga-server/internal/catalog"
	"streetsaga-server/internal/game"
	"streetsaga-server/internal/models"
)

const defaultAttributeValue = 50

// Objective names as they appear on the wire. Part of the save format.
const (
	objReadStory          = "readStory"
	objMadeChoice         = "madeChoice"
	objCompletedChallenge = "completedChallenge"
)

// ToProgress flattens a game state into its persisted representation.
// Attribute values are formatted as plain decimal strings, and only the
// current chapter's objectives are recorded; historical per-chapter snapshots
// are not kept beyond what the cumulative attributes and chapter index imply.
func ToProgress(s game.State) models.Progress {
	characterID := catalog.EncodeCharacterID(s.SelectedCharacterID)
	return models.Progress{
		Chapter: int64(s.CurrentChapter),
		StateVariables: []models.StateVariable{
			{Name: game.AttrVirtue, Value: strconv.Itoa(s.Vars.Virtue)},
			{Name: game.AttrWisdom, Value: strconv.Itoa(s.Vars.Wisdom)},
			{Name: game.AttrCourage, Value: strconv.Itoa(s.Vars.Courage)},
		},
		CompletedObjectives: []models.ObjectiveProgress{
			{
				MissionID: int64(s.CurrentChapter),
				Objectives: []models.ObjectiveFlag{
					{Name: objReadStory, Done: s.ChapterObjectives.ReadStory},
					{Name: objMadeChoice, Done: s.ChapterObjectives.MadeChoice},
					{Name: objCompletedChallenge, Done: s.ChapterObjectives.CompletedChallenge},
				},
			},
		},
		CharacterID: &characterID,
	}
}

// FromProgress rebuilds an in-memory state from a persisted record. Missing
// or unparsable attributes fall back to 50, an absent objective entry for the
// loaded chapter means all-false, and the narrative cursor is re-derived from
// the readStory flag (mid-chapter positions are never preserved). Returns
// models.ErrMissingCharacterData when the record carries no character id.
func FromProgress(p models.Progress) (game.State, error) {
	if p.CharacterID == nil {
		return game.State{}, models.ErrMissingCharacterData
	}

	chapter := int(p.Chapter)
	if chapter < 0 || chapter >= catalog.ChapterCount() {
		chapter = 0
	}

	objectives := game.ChapterObjectives{ChapterID: chapter}
	for _, entry := range p.CompletedObjectives {
		if int(entry.MissionID) != chapter {
			continue
		}
		for _, flag := range entry.Objectives {
			switch flag.Name {
			case objReadStory:
				objectives.ReadStory = flag.Done
			case objMadeChoice:
				objectives.MadeChoice = flag.Done
			case objCompletedChallenge:
				objectives.CompletedChallenge = flag.Done
			}
		}
		break
	}

	narrative := 0
	if objectives.ReadStory {
		narrative = catalog.LastNarrativeIndex(chapter)
	}

	return game.State{
		CurrentChapter:      chapter,
		SelectedCharacterID: catalog.DecodeCharacterID(*p.CharacterID),
		Vars: game.Attributes{
			Virtue:  attributeValue(p.StateVariables, game.AttrVirtue),
			Wisdom:  attributeValue(p.StateVariables, game.AttrWisdom),
			Courage: attributeValue(p.StateVariables, game.AttrCourage),
		},
		// Choice history is not part of the wire format; a loaded game
		// starts with an empty log.
		ChoiceHistory:      []game.ChoiceRecord{},
		ChapterObjectives:  objectives,
		CurrentNarrative:   narrative,
		ChallengeCompleted: objectives.CompletedChallenge,
	}, nil
}

// ToProfile encodes the one-time profile record. Name emptiness is policy
// enforced by the caller, not here.
func ToProfile(name, characterID string) models.UserProfile {
	return models.UserProfile{
		Name:        name,
		CharacterID: catalog.EncodeCharacterID(catalog.ValidateCharacterID(characterID)),
	}
}

// FromProfile decodes a profile record back to its display name and stable
// character id.
func FromProfile(p models.UserProfile) (name, characterID string) {
	return p.Name, catalog.DecodeCharacterID(p.CharacterID)
}

func attributeValue(vars []models.StateVariable, name string) int {
	for _, v := range vars {
		if v.Name != name {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v.Value))
		if err != nil {
			return defaultAttributeValue
		}
		return n
	}
	return defaultAttributeValue
}
