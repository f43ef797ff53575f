package models

import (
	"encoding/json"
	"strings"
	"time"
)

type User struct {
	ID            int    `json:"id"`
	Username      string `json:"username"`
	WalletAddress string `json:"walletAddress"`
	Points        int    `json:"points"`
}

// Token is a market snapshot keyed by the provider-assigned id. Numeric
// fields are decimal text so no precision is lost in transit.
type Token struct {
	ID        int    `json:"id" validate:"required,gt=0"`
	Symbol    string `json:"symbol" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Price     string `json:"price" validate:"required"`
	Change24h string `json:"change24h" validate:"required"`
	MarketCap string `json:"marketCap" validate:"required"`
	Volume24h string `json:"volume24h" validate:"required"`
}

// Matches reports whether query is a case-insensitive substring of the
// symbol or the name.
func (t Token) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Symbol), q) ||
		strings.Contains(strings.ToLower(t.Name), q)
}

type AnalysisType string

const (
	AnalysisBasic    AnalysisType = "basic"
	AnalysisAdvanced AnalysisType = "advanced"
	AnalysisPremium  AnalysisType = "premium"
)

type Analysis struct {
	ID      int             `json:"id"`
	UserID  int             `json:"userId"`
	TokenID int             `json:"tokenId"`
	Points  int             `json:"points"`
	Type    AnalysisType    `json:"type"`
	Data    json.RawMessage `json:"data"`

	// IdempotencyKey deduplicates client resubmissions per user.
	IdempotencyKey string `json:"-"`
}

type PointSource string

const (
	SourceAnalysis PointSource = "analysis"
	SourceChat     PointSource = "chat"
)

// PointEvent is one entry of the points journal. A user's balance is the
// sum of the Points of its events.
type PointEvent struct {
	ID         int         `json:"id"`
	UserID     int         `json:"userId"`
	Source     PointSource `json:"source"`
	AnalysisID int         `json:"analysisId,omitempty"`
	Points     int         `json:"points"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
