package sharedtypes

// ArtistID identifies an artist in the catalog. IDs sort lexically, which
// the rank engine relies on for deterministic tie-breaking.
type ArtistID string

func (id ArtistID) String() string { return string(id) }

// UserID identifies a league user.
type UserID string

func (id UserID) String() string { return string(id) }

// TeamID identifies a drafted team. A user has at most one active team.
type TeamID string

func (id TeamID) String() string { return string(id) }

// Tier is one of the four ordered competitive categories an artist can be
// classified into. It doubles as the drafting category pinned onto a team
// member at draft time.
type Tier string

const (
	TierTopTier  Tier = "top_tier"
	TierRising   Tier = "rising"
	TierEmerging Tier = "emerging"
	TierBaseline Tier = "baseline"
)

// Timeframe selects which points window a breakdown query covers.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeAll     Timeframe = "all"
)

// Valid reports whether t is one of the supported timeframes.
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly, TimeframeAll:
		return true
	}
	return false
}
