package standingsdomain

import (
	"sort"

	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// RankedArtist is one row of a day's leaderboard.
type RankedArtist struct {
	ArtistID sharedtypes.ArtistID
	Total    int
	Rank     int
}

// Rank orders day totals into a 1-based leaderboard: descending by total,
// ties broken by ascending artist id so repeated calls over the same data
// always agree. The input slice is not modified.
func Rank(totals []scoringdb.ArtistDayTotal) []RankedArtist {
	ranked := make([]RankedArtist, len(totals))
	for i, t := range totals {
		ranked[i] = RankedArtist{ArtistID: t.ArtistID, Total: t.Total}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].ArtistID < ranked[j].ArtistID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// RankOf returns the artist's position within the ranked leaderboard, or
// false when the artist has no row that day.
func RankOf(ranked []RankedArtist, artistID sharedtypes.ArtistID) (int, bool) {
	for _, r := range ranked {
		if r.ArtistID == artistID {
			return r.Rank, true
		}
	}
	return 0, false
}

// RankChange is the movement between two leaderboard positions. Positive
// means the artist climbed. Either rank may be absent.
func RankChange(current, previous *int) *int {
	if current == nil || previous == nil {
		return nil
	}
	delta := *previous - *current
	return &delta
}
