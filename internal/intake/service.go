package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/programmetajs101/eu-ai-chatbot/internal/ai"
)

const (
	maxGuidance    = 6
	maxSuggestions = 4
	maxQuestions   = 3
	maxExamples    = 3

	turnTimeout = 60 * time.Second
)

var (
	ErrEmptyInput = errors.New("intake: empty user input")
	ErrUpstream   = errors.New("intake: model call failed")
)

type service struct {
	store Store
	ai    ai.AI

	// one mutex per session id, never evicted; assumes a bounded session
	// namespace from the UI, not arbitrary caller-minted ids.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store Store, aiClient ai.AI) Service {
	return &service{
		store: store,
		ai:    aiClient,
		locks: make(map[string]*sync.Mutex),
	}
}

// HandleTurn runs one conversational turn against the stored session state
// and commits the result. Turns are serialized per session: interleaved
// merges into the same state are the one race this design has to avoid.
func (s *service) HandleTurn(ctx context.Context, sessionID string, userText string) (TurnResult, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.LoadState(ctx, sessionID)
	if err != nil {
		return TurnResult{}, err
	}

	result, err := s.RunTurn(ctx, userText, state)
	if err != nil {
		return TurnResult{}, err
	}

	if err := s.store.SaveState(ctx, sessionID, result.State); err != nil {
		return TurnResult{}, err
	}
	return result, nil
}

// RunTurn is the stateless core: it never touches the store. The returned
// State is authoritative only once the caller commits it.
func (s *service) RunTurn(ctx context.Context, userText string, state SessionState) (TurnResult, error) {
	if strings.TrimSpace(userText) == "" {
		return TurnResult{}, ErrEmptyInput
	}

	log.Println("========== NEW TURN ==========")
	log.Printf("[svc] step=%d text=%q", Step(state), userText)

	envelope, err := json.Marshal(map[string]any{
		"message": userText,
		"state":   state,
	})
	if err != nil {
		return TurnResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, turnTimeout)
	defer cancel()

	raw, err := s.ai.GetReply(ctx, IntakeSystemPrompt, string(envelope))
	if err != nil {
		log.Printf("[svc] ai error: %v", err)
		return TurnResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	narrative, structured := Extract(raw)

	result := TurnResult{
		Reply: narrative,
		State: Merge(state, StatePatch{}),
	}
	if structured == nil {
		// No usable payload this turn; the conversation stays usable.
		log.Println("[svc] no structured payload extracted")
		return result, nil
	}

	result.Guidance = capStrings(structured["guidance"], maxGuidance)
	result.Suggestions = capStrings(structured["suggestions"], maxSuggestions)
	result.Questions = capStrings(structured["questions"], maxQuestions)
	result.Examples = capStrings(structured["examples"], maxExamples)
	result.Roadmap = SanitizeRoadmap(structured["roadmap"])

	patch := SanitizePatch(structured["stateUpdates"])

	// Top-level useCases is an alias some replies use instead of
	// stateUpdates.useCases.
	if patch.UseCases == nil {
		if ucs, ok := structured["useCases"].([]any); ok {
			alias := SanitizePatch(map[string]any{"useCases": ucs})
			patch.UseCases = alias.UseCases
		}
	}

	result.State = Merge(state, patch)

	log.Printf("[svc] merged: roles=%d useCases=%d patchEmpty=%v",
		len(result.State.Roles), len(result.State.UseCases), patch.IsZero(),
	)
	return result, nil
}

// SetRoles replaces the role list wholesale. Role selection is a single
// action, not a field-level patch.
func (s *service) SetRoles(ctx context.Context, sessionID string, roles []string) (SessionState, error) {
	if roles == nil {
		roles = []string{}
	}
	return s.mutate(ctx, sessionID, StatePatch{Roles: roles})
}

func (s *service) SaveOrg(ctx context.Context, sessionID string, org OrgPatch) (SessionState, error) {
	return s.mutate(ctx, sessionID, StatePatch{Org: &org})
}

func (s *service) GetState(ctx context.Context, sessionID string) (SessionState, error) {
	return s.store.LoadState(ctx, sessionID)
}

func (s *service) mutate(ctx context.Context, sessionID string, patch StatePatch) (SessionState, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.LoadState(ctx, sessionID)
	if err != nil {
		return SessionState{}, err
	}

	next := Merge(state, patch)
	if err := s.store.SaveState(ctx, sessionID, next); err != nil {
		return SessionState{}, err
	}
	return next, nil
}

func (s *service) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// capStrings keeps only string elements and truncates to the documented
// maximum, defensively: the prompt already asks for bounded counts but the
// model is not trusted to honor them.
func capStrings(v any, max int) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := stringItems(items)
	if len(out) > max {
		out = out[:max]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
