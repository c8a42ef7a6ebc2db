package intake

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return &store{db: db}
}

// LoadState reads the session's state document. Missing and corrupt rows
// both load as an empty state.
func (s *store) LoadState(ctx context.Context, sessionID string) (SessionState, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT state
		FROM sessions
		WHERE session_id = $1
	`, sessionID).Scan(&doc)

	if errors.Is(err, sql.ErrNoRows) {
		return SessionState{}, nil
	}
	if err != nil {
		return SessionState{}, err
	}

	return decodeState(sessionID, doc), nil
}

// decodeState parses a stored state document, falling back to an empty
// state on corrupt data: losing one session's registry beats refusing to
// talk.
func decodeState(sessionID string, doc []byte) SessionState {
	var state SessionState
	if err := json.Unmarshal(doc, &state); err != nil {
		log.Printf("[store] corrupt state for session=%s, starting empty: %v", sessionID, err)
		return SessionState{}
	}
	return state
}

func (s *store) SaveState(ctx context.Context, sessionID string, state SessionState) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (session_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id)
		DO UPDATE SET state = EXCLUDED.state, updated_at = now()
	`, sessionID, doc)
	return err
}
