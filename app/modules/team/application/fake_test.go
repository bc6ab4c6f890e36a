package teamservice

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	teamdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/infrastructure/repositories"
	tieringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

type FakeTeamRepository struct {
	Teams        map[sharedtypes.UserID]*teamdb.UserTeam
	Members      map[sharedtypes.TeamID][]teamdb.TeamMember
	ReplaceCalls int
	ReplaceFunc  func(ctx context.Context, teamID sharedtypes.TeamID, members []teamdb.TeamMember, updatedAt time.Time) error
	GetTeamFunc  func(ctx context.Context, userID sharedtypes.UserID) (*teamdb.UserTeam, error)
}

func NewFakeTeamRepository() *FakeTeamRepository {
	return &FakeTeamRepository{
		Teams:   make(map[sharedtypes.UserID]*teamdb.UserTeam),
		Members: make(map[sharedtypes.TeamID][]teamdb.TeamMember),
	}
}

func (f *FakeTeamRepository) GetTeamByUser(ctx context.Context, userID sharedtypes.UserID) (*teamdb.UserTeam, error) {
	if f.GetTeamFunc != nil {
		return f.GetTeamFunc(ctx, userID)
	}
	team, ok := f.Teams[userID]
	if !ok {
		return nil, teamdb.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (f *FakeTeamRepository) CreateTeam(ctx context.Context, team *teamdb.UserTeam) error {
	copied := *team
	f.Teams[team.UserID] = &copied
	return nil
}

func (f *FakeTeamRepository) ListAllTeams(ctx context.Context) ([]teamdb.UserTeam, error) {
	teams := make([]teamdb.UserTeam, 0, len(f.Teams))
	for _, t := range f.Teams {
		teams = append(teams, *t)
	}
	return teams, nil
}

func (f *FakeTeamRepository) ReplaceRoster(ctx context.Context, teamID sharedtypes.TeamID, members []teamdb.TeamMember, updatedAt time.Time) error {
	f.ReplaceCalls++
	if f.ReplaceFunc != nil {
		if err := f.ReplaceFunc(ctx, teamID, members, updatedAt); err != nil {
			return err
		}
	}
	f.Members[teamID] = append([]teamdb.TeamMember(nil), members...)
	for _, t := range f.Teams {
		if t.ID == teamID {
			stamped := updatedAt
			t.RosterUpdatedAt = &stamped
		}
	}
	return nil
}

func (f *FakeTeamRepository) ListMembers(ctx context.Context, teamID sharedtypes.TeamID) ([]teamdb.TeamMember, error) {
	return f.Members[teamID], nil
}

func (f *FakeTeamRepository) CountPicks(ctx context.Context, artistID sharedtypes.ArtistID, category sharedtypes.Tier) (int, error) {
	count := 0
	for _, members := range f.Members {
		for _, m := range members {
			if m.ArtistID == artistID && m.Category == category {
				count++
			}
		}
	}
	return count, nil
}

func (f *FakeTeamRepository) CountDistinctTeams(ctx context.Context, category sharedtypes.Tier) (int, error) {
	teams := make(map[sharedtypes.TeamID]struct{})
	for teamID, members := range f.Members {
		for _, m := range members {
			if m.Category == category {
				teams[teamID] = struct{}{}
				break
			}
		}
	}
	return len(teams), nil
}

// FakeTierCatalog serves a fixed current-tier map.
type FakeTierCatalog struct {
	Tiers map[sharedtypes.ArtistID]sharedtypes.Tier
}

func (f *FakeTierCatalog) UpsertAssignment(ctx context.Context, assignment *tieringdb.TierAssignment) error {
	return nil
}

func (f *FakeTierCatalog) CurrentTier(ctx context.Context, artistID sharedtypes.ArtistID) (*tieringdb.TierAssignment, error) {
	tier, ok := f.Tiers[artistID]
	if !ok {
		return nil, nil
	}
	return &tieringdb.TierAssignment{ArtistID: artistID, Tier: tier}, nil
}

func (f *FakeTierCatalog) CurrentTiers(ctx context.Context) (map[sharedtypes.ArtistID]sharedtypes.Tier, error) {
	return f.Tiers, nil
}

type publishedEvent struct {
	Subject string
	Payload any
}

type FakeEventBus struct {
	Published   []publishedEvent
	PublishFunc func(ctx context.Context, subject string, payload any) error
}

func (f *FakeEventBus) Publish(ctx context.Context, subject string, payload any) error {
	if f.PublishFunc != nil {
		if err := f.PublishFunc(ctx, subject, payload); err != nil {
			return err
		}
	}
	f.Published = append(f.Published, publishedEvent{Subject: subject, Payload: payload})
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, subject string, handler func(ctx context.Context, msg *message.Message) error) error {
	return nil
}

func (f *FakeEventBus) Close() error { return nil }
