package server

import (
	"context"
	"net/http"
	"time"

	"clan-dashboard/internal/domain"
	"clan-dashboard/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const (
	DashboardServiceName      = "clandashboard.v1.DashboardService"
	GetDashboardProcedure     = "/" + DashboardServiceName + "/GetDashboard"
	RefreshDashboardProcedure = "/" + DashboardServiceName + "/RefreshDashboard"
)

type DashboardRequest struct {
	Realm  string `json:"realm"`
	ClanID string `json:"clan_id"`
	Player string `json:"player"`
}

type DashboardServer struct {
	svc    *service.DashboardService
	logger zerolog.Logger
	now    func() time.Time
}

func NewDashboardServer(svc *service.DashboardService, logger zerolog.Logger) *DashboardServer {
	return &DashboardServer{svc: svc, logger: logger, now: time.Now}
}

func (s *DashboardServer) request(in DashboardRequest) domain.Request {
	return domain.NewRequest(in.Realm, in.ClanID, in.Player, s.now())
}

func (s *DashboardServer) GetDashboard(ctx context.Context, req *connect.Request[DashboardRequest]) (*connect.Response[domain.Dashboard], error) {
	dash, err := s.svc.Build(ctx, s.request(*req.Msg))
	if err != nil {
		s.logFailure(ctx, err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(dash), nil
}

func (s *DashboardServer) RefreshDashboard(ctx context.Context, req *connect.Request[DashboardRequest]) (*connect.Response[domain.Refresh], error) {
	dash, err := s.svc.Build(ctx, s.request(*req.Msg))
	if err != nil {
		s.logFailure(ctx, err)
		return nil, toConnectError(err)
	}
	refresh := dash.Refresh()
	return connect.NewResponse(&refresh), nil
}

// NewDashboardHandler mounts both procedures behind the service path.
func NewDashboardHandler(s *DashboardServer) (string, http.Handler) {
	opts := connect.WithCodec(jsonCodec{})

	mux := http.NewServeMux()
	mux.Handle(GetDashboardProcedure, connect.NewUnaryHandler(GetDashboardProcedure, s.GetDashboard, opts))
	mux.Handle(RefreshDashboardProcedure, connect.NewUnaryHandler(RefreshDashboardProcedure, s.RefreshDashboard, opts))

	return "/" + DashboardServiceName + "/", mux
}

func (s *DashboardServer) logFailure(ctx context.Context, err error) {
	code, _ := classify(err)
	log := zerolog.Ctx(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = &s.logger
	}
	log.Warn().Err(err).Str("code", code.String()).Msg("dashboard render failed")
}
