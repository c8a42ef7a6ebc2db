package intake

import "context"

type Risk string

const (
	RiskMinimal    Risk = "minimal"
	RiskLimited    Risk = "limited"
	RiskHigh       Risk = "high"
	RiskProhibited Risk = "prohibited"
	RiskUnknown    Risk = "unknown"
)

// SessionState — the registry built up over one client session.
// Mutated only through Merge.
type SessionState struct {
	Org      *OrgProfile `json:"org,omitempty"`
	Roles    []string    `json:"roles,omitempty"`
	UseCases []UseCase   `json:"useCases,omitempty"`
}

type OrgProfile struct {
	Name     string `json:"name,omitempty"`
	Country  string `json:"country,omitempty"`
	Industry string `json:"industry,omitempty"`
	Size     string `json:"size,omitempty"`
}

// UseCase — one AI system being inventoried. Risk is empty or one of the
// Risk constants.
type UseCase struct {
	ID            string   `json:"id"`
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	Process       string   `json:"process,omitempty"`
	Owner         string   `json:"owner,omitempty"`
	Model         string   `json:"model,omitempty"`
	InScope       *bool    `json:"inScope,omitempty"`
	Risk          Risk     `json:"risk,omitempty"`
	Data          []string `json:"data,omitempty"`
	Subjects      []string `json:"subjects,omitempty"`
	Jurisdictions []string `json:"jurisdictions,omitempty"`
}

// StatePatch — a partial update. nil means "not provided": a nil Roles slice
// leaves roles alone, a non-nil one replaces them wholesale.
type StatePatch struct {
	Org      *OrgPatch
	Roles    []string
	UseCases []UseCasePatch
}

type OrgPatch struct {
	Name     *string
	Country  *string
	Industry *string
	Size     *string
}

type UseCasePatch struct {
	ID            string
	Name          *string
	Description   *string
	Process       *string
	Owner         *string
	Model         *string
	InScope       *bool
	Risk          *Risk
	Data          []string
	Subjects      []string
	Jurisdictions []string
}

func (p StatePatch) IsZero() bool {
	return p.Org == nil && p.Roles == nil && p.UseCases == nil
}

type RoadmapEntry struct {
	UseCaseID   string        `json:"useCaseId,omitempty"`
	UseCaseName string        `json:"useCaseName,omitempty"`
	Risk        RoadmapRisk   `json:"risk"`
	Tasks       []RoadmapTask `json:"tasks,omitempty"`
}

type RoadmapRisk struct {
	Level     string `json:"level,omitempty"`
	Rationale string `json:"rationale,omitempty"`
}

type RoadmapTask struct {
	Title      string `json:"title,omitempty"`
	Owner      string `json:"owner,omitempty"`
	DueInDays  int    `json:"dueInDays,omitempty"`
	Acceptance string `json:"acceptance,omitempty"`
}

// TurnResult — one turn's bundle. State is the merged session state; the
// caller decides whether to commit it.
type TurnResult struct {
	Reply       string         `json:"reply"`
	Guidance    []string       `json:"guidance,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Questions   []string       `json:"questions,omitempty"`
	Examples    []string       `json:"examples,omitempty"`
	Roadmap     []RoadmapEntry `json:"roadmap,omitempty"`
	State       SessionState   `json:"state"`
}

// Store — persistence for session state, one JSON document per session.
type Store interface {
	LoadState(ctx context.Context, sessionID string) (SessionState, error)
	SaveState(ctx context.Context, sessionID string, state SessionState) error
}

// Service — turn orchestration plus direct state mutations.
type Service interface {
	HandleTurn(ctx context.Context, sessionID string, userText string) (TurnResult, error)
	SetRoles(ctx context.Context, sessionID string, roles []string) (SessionState, error)
	SaveOrg(ctx context.Context, sessionID string, org OrgPatch) (SessionState, error)
	GetState(ctx context.Context, sessionID string) (SessionState, error)
}
