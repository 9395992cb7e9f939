package service

import (
	"context"
	"fmt"
	"time"

	"streetsaga-server/internal/catalog"
	"streetsaga-server/internal/game"
	"streetsaga-server/internal/messaging"
	"streetsaga-server/internal/models"
	"streetsaga-server/internal/persistence"
	"streetsaga-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChallengeResult is the opaque outcome handed over by a mini-game. Only the
// reward is folded into game state; success and score are recorded in logs.
type ChallengeResult struct {
	Success bool
	Score   int
	Reward  map[string]int
}

// GameService orchestrates the progression state machine against the session
// store and the save-slot store. All methods are keyed by the authenticated
// user; a save or load is a single atomic round-trip with no retry.
type GameService interface {
	// StartNewGame creates a fresh playthrough session for the chosen fighter.
	// Returns models.ErrNoCharacterSelected when characterID is empty.
	StartNewGame(ctx context.Context, userID uuid.UUID, characterID string) (game.State, error)

	// CurrentState returns the active session snapshot.
	CurrentState(ctx context.Context, userID uuid.UUID) (game.State, error)

	// AdvanceNarrative moves the story cursor one paragraph forward.
	AdvanceNarrative(ctx context.Context, userID uuid.UUID) (game.State, error)

	// MakeChoice commits the chapter decision identified by choiceID. Effects
	// are resolved from the catalog, never taken from the client.
	MakeChoice(ctx context.Context, userID uuid.UUID, choiceID string) (game.State, error)

	// CompleteChallenge folds a mini-game result into the session. Returns
	// models.ErrObjectiveAlreadyDone when the chapter's challenge objective
	// is already true, so rewards cannot double-apply over the API.
	CompleteChallenge(ctx context.Context, userID uuid.UUID, result ChallengeResult) (game.State, error)

	// AdvanceChapter moves to the next chapter once the mission is complete.
	// A blocked advance is a no-op, not an error.
	AdvanceChapter(ctx context.Context, userID uuid.UUID) (game.State, error)

	// SaveProgress maps the session to its wire representation and persists it.
	SaveProgress(ctx context.Context, userID uuid.UUID) (models.Progress, error)

	// LoadProgress rebuilds a session from the persisted save slot.
	LoadProgress(ctx context.Context, userID uuid.UUID) (game.State, error)

	// SavedProgress returns the raw persisted record without touching the
	// session.
	SavedProgress(ctx context.Context, userID uuid.UUID) (models.Progress, error)

	// AbandonSession discards the active session. Saved progress survives.
	AbandonSession(ctx context.Context, userID uuid.UUID) error
}

type gameServiceImpl struct {
	sessions  repository.SessionRepository
	progress  repository.ProgressRepository
	publisher messaging.EventPublisher
	logger    *zap.Logger
}

// NewGameService creates a GameService.
func NewGameService(
	sessions repository.SessionRepository,
	progress repository.ProgressRepository,
	publisher messaging.EventPublisher,
	logger *zap.Logger,
) GameService {
	return &gameServiceImpl{
		sessions:  sessions,
		progress:  progress,
		publisher: publisher,
		logger:    logger.Named("GameService"),
	}
}

func (s *gameServiceImpl) StartNewGame(ctx context.Context, userID uuid.UUID, characterID string) (game.State, error) {
	log := s.logger.With(zap.Stringer("userID", userID), zap.String("characterID", characterID))

	if characterID == "" {
		log.Warn("New game requested without a fighter")
		return game.State{}, models.ErrNoCharacterSelected
	}

	state := game.NewGame(characterID)
	if err := s.sessions.Upsert(ctx, userID, state); err != nil {
		return game.State{}, err
	}
	log.Info("New game started", zap.String("resolvedCharacterID", state.SelectedCharacterID))
	return state, nil
}

func (s *gameServiceImpl) CurrentState(ctx context.Context, userID uuid.UUID) (game.State, error) {
	return s.sessions.Get(ctx, userID)
}

func (s *gameServiceImpl) AdvanceNarrative(ctx context.Context, userID uuid.UUID) (game.State, error) {
	return s.applyToSession(ctx, userID, func(st game.State) (game.State, error) {
		return game.Apply(st, game.AdvanceNarrative{}), nil
	})
}

func (s *gameServiceImpl) MakeChoice(ctx context.Context, userID uuid.UUID, choiceID string) (game.State, error) {
	return s.applyToSession(ctx, userID, func(st game.State) (game.State, error) {
		choice, ok := findChoice(st.Chapter(), choiceID)
		if !ok {
			return game.State{}, fmt.Errorf("%w: unknown choice %q for chapter %d", models.ErrInvalidInput, choiceID, st.CurrentChapter)
		}
		return game.Apply(st, game.MakeChoice{ChoiceID: choice.ID, Effects: choice.Effects}), nil
	})
}

func (s *gameServiceImpl) CompleteChallenge(ctx context.Context, userID uuid.UUID, result ChallengeResult) (game.State, error) {
	return s.applyToSession(ctx, userID, func(st game.State) (game.State, error) {
		// The reducer deliberately leaves repeat completion unguarded; the
		// service refuses it so a retried request cannot double-apply rewards.
		if st.ChapterObjectives.CompletedChallenge {
			return game.State{}, models.ErrObjectiveAlreadyDone
		}
		s.logger.Info("Challenge completed",
			zap.Stringer("userID", userID),
			zap.Int("chapter", st.CurrentChapter),
			zap.Bool("success", result.Success),
			zap.Int("score", result.Score),
		)
		return game.Apply(st, game.CompleteChallenge{Reward: result.Reward}), nil
	})
}

func (s *gameServiceImpl) AdvanceChapter(ctx context.Context, userID uuid.UUID) (game.State, error) {
	return s.applyToSession(ctx, userID, func(st game.State) (game.State, error) {
		return game.AdvanceToNextChapter(st), nil
	})
}

func (s *gameServiceImpl) SaveProgress(ctx context.Context, userID uuid.UUID) (models.Progress, error) {
	log := s.logger.With(zap.Stringer("userID", userID))

	state, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return models.Progress{}, err
	}

	progress := persistence.ToProgress(state)
	if err := s.progress.Upsert(ctx, userID, progress); err != nil {
		return models.Progress{}, err
	}
	log.Info("Progress saved", zap.Int64("chapter", progress.Chapter))

	s.publishEvent(ctx, userID, messaging.EventProgressSaved, progress.Chapter)
	return progress, nil
}

func (s *gameServiceImpl) LoadProgress(ctx context.Context, userID uuid.UUID) (game.State, error) {
	log := s.logger.With(zap.Stringer("userID", userID))

	progress, err := s.progress.Get(ctx, userID)
	if err != nil {
		return game.State{}, err
	}

	state, err := persistence.FromProgress(progress)
	if err != nil {
		log.Warn("Saved progress could not be loaded", zap.Error(err))
		return game.State{}, err
	}

	if err := s.sessions.Upsert(ctx, userID, state); err != nil {
		return game.State{}, err
	}
	log.Info("Progress loaded", zap.Int("chapter", state.CurrentChapter))
	return state, nil
}

func (s *gameServiceImpl) SavedProgress(ctx context.Context, userID uuid.UUID) (models.Progress, error) {
	return s.progress.Get(ctx, userID)
}

func (s *gameServiceImpl) AbandonSession(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.Delete(ctx, userID)
}

// applyToSession runs one load-reduce-store round-trip. The session row is
// replaced wholesale, so each transition lands as a complete snapshot.
func (s *gameServiceImpl) applyToSession(
	ctx context.Context,
	userID uuid.UUID,
	fn func(game.State) (game.State, error),
) (game.State, error) {
	state, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return game.State{}, err
	}

	next, err := fn(state)
	if err != nil {
		return game.State{}, err
	}

	if err := s.sessions.Upsert(ctx, userID, next); err != nil {
		return game.State{}, err
	}

	if !state.IsStoryComplete() && next.IsStoryComplete() {
		s.publishEvent(ctx, userID, messaging.EventStoryCompleted, int64(next.CurrentChapter))
	}
	return next, nil
}

// publishEvent is best-effort: losing an event must never lose player state.
func (s *gameServiceImpl) publishEvent(ctx context.Context, userID uuid.UUID, eventType string, chapter int64) {
	payload := messaging.PlayerEventPayload{
		EventType:  eventType,
		UserID:     userID.String(),
		Chapter:    chapter,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishPlayerEvent(ctx, payload); err != nil {
		s.logger.Warn("Failed to publish player event",
			zap.String("eventType", eventType),
			zap.Stringer("userID", userID),
			zap.Error(err),
		)
	}
}

func findChoice(ch catalog.Chapter, choiceID string) (catalog.Choice, bool) {
	for _, c := range ch.Choices {
		if c.ID == choiceID {
			return c, true
		}
	}
	return catalog.Choice{}, false
}
