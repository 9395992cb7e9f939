package game

import "streetsaga-server/internal/catalog"

// Attribute names as they appear in choice effects, challenge rewards and the
// persisted state variables.
const (
	AttrVirtue  = "virtue"
	AttrWisdom  = "wisdom"
	AttrCourage = "courage"
)

const (
	attrMin     = 0
	attrMax     = 100
	attrInitial = 50
)

// Attributes are the three persistent fighter stats, each clamped to [0,100]
// at every mutation.
type Attributes struct {
	Virtue  int `json:"virtue"`
	Wisdom  int `json:"wisdom"`
	Courage int `json:"courage"`
}

func clampAttr(v int) int {
	if v < attrMin {
		return attrMin
	}
	if v > attrMax {
		return attrMax
	}
	return v
}

// apply adds delta to the named attribute with clamping. Unknown names are
// ignored, which keeps old servers tolerant of effects added later.
func (a Attributes) apply(name string, delta int) Attributes {
	switch name {
	case AttrVirtue:
		a.Virtue = clampAttr(a.Virtue + delta)
	case AttrWisdom:
		a.Wisdom = clampAttr(a.Wisdom + delta)
	case AttrCourage:
		a.Courage = clampAttr(a.Courage + delta)
	}
	return a
}

// ChoiceRecord is one committed story decision.
type ChoiceRecord struct {
	ChapterID int    `json:"chapterId"`
	ChoiceID  string `json:"choiceId"`
}

// ChapterObjectives are the three completion flags scoped to one chapter.
// A chapter counts as mission complete only when all three are true.
type ChapterObjectives struct {
	ChapterID          int  `json:"chapterId"`
	ReadStory          bool `json:"readStory"`
	MadeChoice         bool `json:"madeChoice"`
	CompletedChallenge bool `json:"completedChallenge"`
}

// State is the complete snapshot of a single playthrough. It is only mutated
// through Apply / AdvanceToNextChapter, both of which return fresh snapshots.
type State struct {
	CurrentChapter      int               `json:"currentChapter"`
	SelectedCharacterID string            `json:"selectedCharacterId"`
	Vars                Attributes        `json:"stateVariables"`
	ChoiceHistory       []ChoiceRecord    `json:"choiceHistory"`
	ChapterObjectives   ChapterObjectives `json:"chapterObjectives"`
	CurrentNarrative    int               `json:"currentNarrative"`
	ChallengeCompleted  bool              `json:"challengeCompleted"`
}

// NewGame returns a fresh playthrough at chapter 0 with all attributes at 50.
// The character id is validated through the catalog so the state always holds
// a playable fighter.
func NewGame(characterID string) State {
	return State{
		CurrentChapter:      0,
		SelectedCharacterID: catalog.ValidateCharacterID(characterID),
		Vars:                Attributes{Virtue: attrInitial, Wisdom: attrInitial, Courage: attrInitial},
		ChoiceHistory:       []ChoiceRecord{},
		ChapterObjectives:   ChapterObjectives{ChapterID: 0},
		CurrentNarrative:    0,
		ChallengeCompleted:  false,
	}
}

// clone returns a snapshot sharing no mutable storage with s.
func (s State) clone() State {
	ns := s
	ns.ChoiceHistory = append([]ChoiceRecord(nil), s.ChoiceHistory...)
	return ns
}

// Chapter returns the catalog entry for the current chapter.
func (s State) Chapter() catalog.Chapter {
	return catalog.ChapterAt(s.CurrentChapter)
}

// IsLastNarrative reports whether the narrative cursor sits on the final
// paragraph of the current chapter.
func (s State) IsLastNarrative() bool {
	return s.CurrentNarrative >= catalog.LastNarrativeIndex(s.CurrentChapter)
}

// IsMissionComplete reports whether all three chapter objectives are done.
func (s State) IsMissionComplete() bool {
	o := s.ChapterObjectives
	return o.ReadStory && o.MadeChoice && o.CompletedChallenge
}

// CanAdvanceChapter reports whether the playthrough may move to the next
// chapter. Identical to IsMissionComplete today; kept as its own predicate
// because the advance decision may grow extra conditions.
func (s State) CanAdvanceChapter() bool {
	return s.IsMissionComplete()
}

// IsStoryComplete reports the terminal condition: last chapter with all
// objectives done. Further events are still accepted; the presentation layer
// is expected to stop issuing chapter advances.
func (s State) IsStoryComplete() bool {
	return s.CurrentChapter == catalog.ChapterCount()-1 && s.IsMissionComplete()
}

// AdvanceToNextChapter moves the playthrough to the next chapter once the
// current one is mission complete. Attribute totals and choice history carry
// over untouched; the narrative cursor, objectives and challenge flag reset.
// No-op when objectives are open or the current chapter is the last one.
func AdvanceToNextChapter(s State) State {
	if !s.CanAdvanceChapter() {
		return s
	}
	next := s.CurrentChapter + 1
	if next >= catalog.ChapterCount() {
		return s
	}
	ns := s.clone()
	ns.CurrentChapter = next
	ns.CurrentNarrative = 0
	ns.ChallengeCompleted = false
	ns.ChapterObjectives = ChapterObjectives{ChapterID: next}
	return ns
}
