package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"

	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/services"
)

var notFound = []error{
	services.ErrProjectNotFound,
	services.ErrTaskNotFound,
	services.ErrResourceNotFound,
	services.ErrRiskNotFound,
	services.ErrUserNotFound,
	services.ErrMemberNotFound,
}

// respondError writes the response for a failed service call. Store
// failures are logged with their operation and record and reported to the
// client with the fallback message only.
func respondError(c *drift.Context, err error, fallback string) {
	var (
		inputErr *services.InputError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden(err.Error())
	case errors.As(err, &inputErr), errors.Is(err, services.ErrInviteInvalid):
		c.BadRequest(err.Error())
	case errors.Is(err, services.ErrAlreadyMember), errors.Is(err, services.ErrEmailTaken):
		_ = c.JSON(409, map[string]string{"error": err.Error()})
	case isNotFound(err):
		c.NotFound(err.Error())
	case errors.As(err, &tooLarge):
		_ = c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
	default:
		logFailure(middleware.GetLogger(c), err, fallback)
		c.InternalServerError(fallback)
	}
}

func logFailure(log *zap.Logger, err error, msg string) {
	var storeErr *services.StoreError
	if errors.As(err, &storeErr) {
		log.Error(msg,
			zap.String("op", storeErr.Op),
			zap.String("entity", storeErr.Entity),
			zap.Stringer("id", storeErr.ID),
			zap.Error(storeErr.Err),
		)
		return
	}
	log.Error(msg, zap.Error(err))
}

func isNotFound(err error) bool {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func pathID(c *drift.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.BadRequest("invalid " + label + " id")
		return uuid.Nil, false
	}
	return id, true
}

// optionalDate parses a YYYY-MM-DD request field. Blank means unset.
func optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func requestContext(c *drift.Context) context.Context {
	return c.Request.Context()
}
