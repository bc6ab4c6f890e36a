package standingsdomain

import (
	"testing"

	"github.com/stretchr/testify/require"

	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
)

func intptr(v int) *int { return &v }

func TestRank(t *testing.T) {
	t.Run("orders by total descending", func(t *testing.T) {
		ranked := Rank([]scoringdb.ArtistDayTotal{
			{ArtistID: "artist-c", Total: 10},
			{ArtistID: "artist-a", Total: 90},
			{ArtistID: "artist-b", Total: 40},
		})

		require.Equal(t, []RankedArtist{
			{ArtistID: "artist-a", Total: 90, Rank: 1},
			{ArtistID: "artist-b", Total: 40, Rank: 2},
			{ArtistID: "artist-c", Total: 10, Rank: 3},
		}, ranked)
	})

	t.Run("equal totals break ties by artist id ascending", func(t *testing.T) {
		ranked := Rank([]scoringdb.ArtistDayTotal{
			{ArtistID: "artist-b", Total: 100},
			{ArtistID: "artist-a", Total: 100},
		})

		require.Equal(t, "artist-a", ranked[0].ArtistID.String())
		require.Equal(t, 1, ranked[0].Rank)
		require.Equal(t, "artist-b", ranked[1].ArtistID.String())
		require.Equal(t, 2, ranked[1].Rank)
	})

	t.Run("is deterministic across calls", func(t *testing.T) {
		totals := []scoringdb.ArtistDayTotal{
			{ArtistID: "artist-x", Total: 5},
			{ArtistID: "artist-y", Total: 5},
			{ArtistID: "artist-w", Total: 5},
			{ArtistID: "artist-z", Total: 7},
		}
		require.Equal(t, Rank(totals), Rank(totals))
	})

	t.Run("does not modify the input", func(t *testing.T) {
		totals := []scoringdb.ArtistDayTotal{
			{ArtistID: "artist-b", Total: 1},
			{ArtistID: "artist-a", Total: 2},
		}
		Rank(totals)
		require.Equal(t, "artist-b", totals[0].ArtistID.String())
	})

	t.Run("empty input yields empty leaderboard", func(t *testing.T) {
		require.Empty(t, Rank(nil))
	})
}

func TestRankOf(t *testing.T) {
	ranked := Rank([]scoringdb.ArtistDayTotal{
		{ArtistID: "artist-a", Total: 50},
		{ArtistID: "artist-b", Total: 30},
	})

	rank, ok := RankOf(ranked, "artist-b")
	require.True(t, ok)
	require.Equal(t, 2, rank)

	_, ok = RankOf(ranked, "artist-missing")
	require.False(t, ok)
}

func TestRankChange(t *testing.T) {
	require.Nil(t, RankChange(nil, intptr(3)))
	require.Nil(t, RankChange(intptr(3), nil))
	require.Nil(t, RankChange(nil, nil))

	climbed := RankChange(intptr(2), intptr(5))
	require.NotNil(t, climbed)
	require.Equal(t, 3, *climbed)

	dropped := RankChange(intptr(7), intptr(4))
	require.Equal(t, -3, *dropped)
}
