package server

import (
	"context"
	"errors"
	"net/http"

	"clan-dashboard/internal/api"
	"clan-dashboard/internal/service"

	"connectrpc.com/connect"
)

// classify maps a fatal render error to a connect code and the message shown to
// the user.
func classify(err error) (connect.Code, string) {
	var (
		transportErr *api.TransportError
		statusErr    *api.StatusError
		serviceErr   *api.ServiceError
	)

	switch {
	case errors.Is(err, service.ErrMissingClanID):
		return connect.CodeInvalidArgument, "Please provide a clan ID."
	case errors.Is(err, service.ErrClanNotFound):
		return connect.CodeNotFound, "Clan not found."
	case errors.Is(err, service.ErrNoMembers):
		return connect.CodeNotFound, "Clan has no members to display."
	case errors.Is(err, service.ErrNoDisplayableMembers):
		return connect.CodeNotFound, "Unable to assemble clan roster."
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded, err.Error()
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled, err.Error()
	case errors.As(err, &transportErr):
		if transportErr.Timeout() {
			return connect.CodeDeadlineExceeded, err.Error()
		}
		return connect.CodeUnavailable, err.Error()
	case errors.As(err, &statusErr):
		return connect.CodeUnavailable, err.Error()
	case errors.As(err, &serviceErr):
		return connect.CodeFailedPrecondition, err.Error()
	case errors.Is(err, api.ErrMalformedResponse):
		return connect.CodeInternal, err.Error()
	default:
		return connect.CodeInternal, "Unexpected error while building the dashboard."
	}
}

func toConnectError(err error) *connect.Error {
	code, msg := classify(err)
	return connect.NewError(code, errors.New(msg))
}

func httpStatus(code connect.Code) int {
	switch code {
	case connect.CodeInvalidArgument:
		return http.StatusBadRequest
	case connect.CodeNotFound:
		return http.StatusNotFound
	case connect.CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	case connect.CodeUnavailable, connect.CodeFailedPrecondition:
		return http.StatusBadGateway
	case connect.CodeCanceled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}
