package game

import "sort"

// Action is a discrete progression event. Apply treats unknown actions as
// no-ops, so the transition function is total.
type Action interface {
	isAction()
}

// AdvanceNarrative moves the narrative cursor one paragraph forward. Reaching
// the final paragraph marks the readStory objective. Advancing past the end
// is a no-op, never a fault.
type AdvanceNarrative struct{}

// MarkStoryRead forces the readStory objective without moving the cursor.
// Used when state is rebuilt from a save where the story was already read.
type MarkStoryRead struct{}

// ResetNarrative moves the cursor back to the first paragraph without
// touching objectives.
type ResetNarrative struct{}

// MakeChoice commits a story decision. At most one choice counts per chapter;
// repeated events are no-ops before any mutation happens.
type MakeChoice struct {
	ChoiceID string
	Effects  map[string]int
}

// CompleteChallenge folds a mini-game reward into the attributes and marks
// the challenge objective. The reducer itself does not guard against repeat
// completion; callers hide the affordance (or refuse the request) once the
// objective is true.
type CompleteChallenge struct {
	Reward map[string]int
}

func (AdvanceNarrative) isAction()  {}
func (MarkStoryRead) isAction()     {}
func (ResetNarrative) isAction()    {}
func (MakeChoice) isAction()        {}
func (CompleteChallenge) isAction() {}

// Apply is the progression transition function. It never fails and never
// mutates s; every transition returns a new snapshot.
func Apply(s State, a Action) State {
	switch a := a.(type) {
	case MakeChoice:
		if s.ChapterObjectives.MadeChoice {
			return s
		}
		ns := s.clone()
		ns.Vars = applyDeltas(ns.Vars, a.Effects)
		ns.ChoiceHistory = append(ns.ChoiceHistory, ChoiceRecord{
			ChapterID: s.CurrentChapter,
			ChoiceID:  a.ChoiceID,
		})
		ns.ChapterObjectives.MadeChoice = true
		return ns

	case CompleteChallenge:
		ns := s.clone()
		ns.Vars = applyDeltas(ns.Vars, a.Reward)
		ns.ChapterObjectives.CompletedChallenge = true
		ns.ChallengeCompleted = true
		return ns

	case AdvanceNarrative:
		ch := s.Chapter()
		if s.CurrentNarrative >= len(ch.Narratives)-1 {
			return s
		}
		ns := s.clone()
		ns.CurrentNarrative++
		if ns.CurrentNarrative >= len(ch.Narratives)-1 {
			ns.ChapterObjectives.ReadStory = true
		}
		return ns

	case MarkStoryRead:
		ns := s.clone()
		ns.ChapterObjectives.ReadStory = true
		return ns

	case ResetNarrative:
		ns := s.clone()
		ns.CurrentNarrative = 0
		return ns
	}

	return s
}

// applyDeltas applies every known-attribute delta with clamping. Names are
// walked in sorted order so intermediate clamping is deterministic regardless
// of map iteration order.
func applyDeltas(vars Attributes, deltas map[string]int) Attributes {
	names := make([]string, 0, len(deltas))
	for name := range deltas {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		vars = vars.apply(name, deltas[name])
	}
	return vars
}
