package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"clan-dashboard/internal/api"
	"clan-dashboard/internal/batch"
	"clan-dashboard/internal/config"
	"clan-dashboard/internal/constants"
	"clan-dashboard/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var (
	ErrMissingClanID = errors.New("clan id is required")
	ErrClanNotFound  = errors.New("clan not found")
	ErrNoMembers     = errors.New("clan has no members to display")
)

type DashboardService struct {
	stats  api.StatsProvider
	cfg    *config.Config
	logger zerolog.Logger
}

func NewDashboardService(stats api.StatsProvider, cfg *config.Config, logger zerolog.Logger) *DashboardService {
	return &DashboardService{stats: stats, cfg: cfg, logger: logger}
}

// Build renders the dashboard view-model for req. Errors returned here are fatal
// for the whole render; dossier failures are reported on the view-model instead.
func (s *DashboardService) Build(ctx context.Context, req domain.Request) (*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if req.ClanID == "" {
		return nil, ErrMissingClanID
	}

	log := s.logger.With().Str("clan_id", req.ClanID).Str("realm", req.Realm.String()).Logger()
	log.Info().Int64("player_id", req.PlayerID).Msg("building dashboard")
	start := time.Now()

	clan, err := s.fetchClan(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch clan")
		return nil, err
	}

	roster, err := s.fetchRoster(ctx, req, clan.Members)
	if err != nil {
		log.Error().Err(err).Int("member_count", len(clan.Members)).Msg("failed to build roster")
		return nil, err
	}

	dash := &domain.Dashboard{
		RenderID:    s.renderID(),
		UpdatedAt:   req.Now,
		Controls:    req.Controls(),
		Clan:        clanSummary(clan),
		Roster:      roster,
		RoleFilters: RoleFilters(roster),
		Aggregates:  DeriveAggregates(roster, req.Now, s.cfg.ActiveWindow),
		Timeline:    BuildTimeline(roster, constants.TimelineLimit),
		Dossier:     domain.Dossier{},
	}

	selected, _ := SelectMember(roster, req.PlayerID)
	dash.Selected = selected
	dash.Controls.PlayerID = strconv.FormatInt(selected.AccountID, 10)
	dash.Performance = DerivePerformance(roster, selected)
	dash.DaysInService = DaysInService(selected, req.Now)

	dossier, err := s.buildDossier(ctx, req, selected.AccountID)
	if err != nil {
		log.Warn().Err(err).Int64("account_id", selected.AccountID).Msg("dossier unavailable")
		dash.DossierError = err.Error()
	} else {
		dash.Dossier = dossier
	}

	log.Info().
		Int("roster_size", roster.Len()).
		Int64("selected", selected.AccountID).
		Bool("dossier_error", dash.DossierError != "").
		Dur("duration", time.Since(start)).
		Msg("dashboard built")
	return dash, nil
}

func (s *DashboardService) fetchClan(ctx context.Context, req domain.Request) (*api.ClanInfo, error) {
	clan, err := s.stats.ClanInfo(ctx, req.Realm, req.ClanID)
	if errors.Is(err, api.ErrNotFound) {
		return nil, ErrClanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load clan info: %w", err)
	}
	if len(clan.Members) == 0 {
		return nil, ErrNoMembers
	}
	return clan, nil
}

func (s *DashboardService) fetchRoster(ctx context.Context, req domain.Request, members []api.ClanMember) (domain.Roster, error) {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, strconv.FormatInt(m.AccountID, 10))
	}

	accounts, err := batch.Fetch(ctx, ids, batch.Options{
		Size:        constants.AccountChunkSize,
		Concurrency: s.cfg.ChunkConcurrency,
	}, func(ctx context.Context, chunk []string) (map[string]api.AccountInfo, error) {
		return s.stats.AccountInfo(ctx, req.Realm, chunk)
	})
	if err != nil {
		return domain.Roster{}, fmt.Errorf("unable to load player info: %w", err)
	}

	return BuildRoster(members, accounts)
}

func (s *DashboardService) renderID() string {
	id, err := gonanoid.New(constants.RenderIDLength)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to generate render id")
		return ""
	}
	return id
}

func clanSummary(c *api.ClanInfo) domain.ClanSummary {
	var created *time.Time
	if c.CreatedAt != nil {
		t := time.Unix(*c.CreatedAt, 0).UTC()
		created = &t
	}
	return domain.ClanSummary{
		ClanID:       c.ClanID,
		Name:         orDefault(c.Name, "Unnamed clan"),
		Tag:          orDefault(c.Tag, "—"),
		Description:  orDefault(c.Description, ""),
		Motto:        orDefault(c.Motto, ""),
		Leader:       orDefault(c.LeaderName, "Unknown"),
		Created:      domain.FormatCreated(created),
		MembersCount: len(c.Members),
	}
}

func orDefault(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
