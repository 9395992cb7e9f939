package handler

import (
	"streetsaga-server/internal/game"
	"streetsaga-server/internal/models"
)

// APIError is the standardized error response body.
type APIError struct {
	Message string `json:"message"`
}

type startNewGameRequest struct {
	CharacterID string `json:"characterId"`
}

type makeChoiceRequest struct {
	ChoiceID string `json:"choiceId"`
}

// completeChallengeRequest carries an opaque mini-game result. Success and
// score are informational; only the reward touches game state.
type completeChallengeRequest struct {
	Success bool           `json:"success"`
	Score   int            `json:"score"`
	Reward  map[string]int `json:"reward"`
}

type profileRequest struct {
	Name        string `json:"name"`
	CharacterID string `json:"characterId"`
}

type profileResponse struct {
	Name        string `json:"name"`
	CharacterID string `json:"characterId"`
}

// stateResponse is the session view handed to clients: the snapshot plus the
// derived predicates so clients never reimplement completion rules.
type stateResponse struct {
	CurrentChapter      int                    `json:"currentChapter"`
	SelectedCharacterID string                 `json:"selectedCharacterId"`
	StateVariables      game.Attributes        `json:"stateVariables"`
	ChoiceHistory       []game.ChoiceRecord    `json:"choiceHistory"`
	ChapterObjectives   game.ChapterObjectives `json:"chapterObjectives"`
	CurrentNarrative    int                    `json:"currentNarrative"`
	ChallengeCompleted  bool                   `json:"challengeCompleted"`
	IsLastNarrative     bool                   `json:"isLastNarrative"`
	IsMissionComplete   bool                   `json:"isMissionComplete"`
	CanAdvanceChapter   bool                   `json:"canAdvanceChapter"`
	IsStoryComplete     bool                   `json:"isStoryComplete"`
}

func newStateResponse(st game.State) stateResponse {
	return stateResponse{
		CurrentChapter:      st.CurrentChapter,
		SelectedCharacterID: st.SelectedCharacterID,
		StateVariables:      st.Vars,
		ChoiceHistory:       st.ChoiceHistory,
		ChapterObjectives:   st.ChapterObjectives,
		CurrentNarrative:    st.CurrentNarrative,
		ChallengeCompleted:  st.ChallengeCompleted,
		IsLastNarrative:     st.IsLastNarrative(),
		IsMissionComplete:   st.IsMissionComplete(),
		CanAdvanceChapter:   st.CanAdvanceChapter(),
		IsStoryComplete:     st.IsStoryComplete(),
	}
}

type progressResponse struct {
	Progress models.Progress `json:"progress"`
}
