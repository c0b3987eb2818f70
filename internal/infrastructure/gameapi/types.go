package gameapi

import (
	"encoding/json"
	"time"
)

type Profile struct {
	ID              int64      `json:"id"`
	ProfileID       int64      `json:"profile_id"`
	PlayerName      string     `json:"player_name"`
	StartingState   string     `json:"starting_state"`
	Gender          string     `json:"gender"`
	Age             *int       `json:"age"`
	ProfileSlug     string     `json:"profile_slug"`
	ProfileImageURL string     `json:"profile_image_url"`
	Bio             string     `json:"bio"`
	Actions         int64      `json:"actions"`
	Cash            float64    `json:"cash"`
	PortfolioValue  float64    `json:"portfolio_value"`
	NetWorth        float64    `json:"net_worth"`
	IsOnline        bool       `json:"is_online"`
	LastSeenAt      *time.Time `json:"last_seen_at"`
	CreatedAt       *time.Time `json:"created_at"`
}

type PlayerRef struct {
	PlayerName  string `json:"player_name"`
	ProfileSlug string `json:"profile_slug"`
	ProfileID   int64  `json:"profile_id"`
}

type Shareholder struct {
	Shares int64      `json:"shares"`
	User   *PlayerRef `json:"user"`
}

type Corporation struct {
	ID                 int64         `json:"id"`
	Name               string        `json:"name"`
	Logo               string        `json:"logo"`
	Type               string        `json:"type"`
	Structure          string        `json:"structure"`
	Sector             string        `json:"focus"`
	HQState            string        `json:"hq_state"`
	Shares             int64         `json:"shares"`
	PublicShares       int64         `json:"public_shares"`
	SharePrice         float64       `json:"share_price"`
	Capital            float64       `json:"capital"`
	BoardSize          int           `json:"board_size"`
	CEOSalary          float64       `json:"ceo_salary"`
	DividendPercentage float64       `json:"dividend_percentage"`
	CEO                *PlayerRef    `json:"ceo"`
	Shareholders       []Shareholder `json:"shareholders"`
	CreatedAt          *time.Time    `json:"created_at"`
}

// LeaderboardSort is the field a leaderboard page is ordered by.
type LeaderboardSort string

const (
	SortNetWorth       LeaderboardSort = "net_worth"
	SortCash           LeaderboardSort = "cash"
	SortPortfolioValue LeaderboardSort = "portfolio_value"
)

func (s LeaderboardSort) IsValid() bool {
	switch s {
	case SortNetWorth, SortCash, SortPortfolioValue:
		return true
	}
	return false
}

type LeaderboardEntry struct {
	Rank            int     `json:"rank"`
	PlayerName      string  `json:"player_name"`
	ProfileID       int64   `json:"profile_id"`
	ProfileSlug     string  `json:"profile_slug"`
	ProfileImageURL string  `json:"profile_image_url"`
	Cash            float64 `json:"cash"`
	PortfolioValue  float64 `json:"portfolio_value"`
	NetWorth        float64 `json:"net_worth"`
}

type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int                `json:"total"`
	Page    int                `json:"page"`
}

type GameTime struct {
	GameDate     string `json:"game_date"`
	Tick         int64  `json:"tick"`
	MsToNextTick int64  `json:"ms_to_next_tick"`
}

type Resource struct {
	Name      string `json:"name"`
	Abundance string `json:"abundance"`
}

type State struct {
	Code             string     `json:"code"`
	Name             string     `json:"name"`
	TaxRate          *float64   `json:"tax_rate"`
	Population       int64      `json:"population"`
	LaborCost        *float64   `json:"labor_cost"`
	DemandModifier   *float64   `json:"demand_modifier"`
	DominantIndustry string     `json:"dominant_industry"`
	Resources        []Resource `json:"resources"`
}

type Commodity struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
}

// SyncMember is one guild member sent for matching.
type SyncMember struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
}

// MatchedUser is a guild member the game linked to an account. Raw keeps the
// record as the API sent it.
type MatchedUser struct {
	DiscordID       string `json:"discord_id"`
	UserID          int64  `json:"user_id"`
	ProfileID       int64  `json:"profile_id"`
	Username        string `json:"username"`
	PlayerName      string `json:"player_name"`
	ProfileSlug     string `json:"profile_slug"`
	ProfileImageURL string `json:"profile_image_url"`
	DiscordUsername string `json:"discord_username"`
	DiscordAvatar   string `json:"discord_avatar"`

	Raw json.RawMessage `json:"-"`
}

func (m *MatchedUser) UnmarshalJSON(data []byte) error {
	type plain MatchedUser
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = MatchedUser(p)
	m.Raw = append(json.RawMessage(nil), data...)
	return nil
}

type SyncSummary struct {
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
	Updated   int `json:"updated"`
}

type SyncResult struct {
	Success bool          `json:"success"`
	Summary SyncSummary   `json:"summary"`
	Matched []MatchedUser `json:"matched"`
}
