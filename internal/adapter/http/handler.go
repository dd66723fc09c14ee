package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"skyladder/internal/app/auth"
	"skyladder/internal/app/play"
	"skyladder/internal/app/ports"
	"skyladder/internal/app/replay"
	"skyladder/internal/app/status"
	"skyladder/internal/domain/ascent"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const profileIDHeader = "X-Profile-ID"
const profileKeyHeader = "X-Profile-Key"

type Handler struct {
	RegisterUC auth.RegisterUseCase
	AuthUC     auth.VerifyUseCase
	PlayUC     play.UseCase
	StatusUC   status.UseCase
	ReplayUC   replay.UseCase
	KPI        kpiSnapshotProvider

	// Intro is returned to newly registered profiles.
	Intro []string

	// AllowOrigin defaults to "*".
	AllowOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowOrigin))
	s.OPTIONS("/*path", func(context.Context, *app.RequestContext) {})

	api := s.Group("/api")
	api.POST("/profile/register", h.register)
	api.POST("/run/intent", h.intent)
	api.POST("/run/status", h.status)
	api.GET("/run/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type intentRequest struct {
	IdempotencyKey string     `json:"idempotency_key"`
	Intent         intentBody `json:"intent"`
}

type intentBody struct {
	Type        string `json:"type"`
	PillID      string `json:"pill_id,omitempty"`
	OptionIndex int    `json:"option_index,omitempty"`
	Talent      string `json:"talent,omitempty"`
}

type registerRequest struct {
	Save json.RawMessage `json:"save,omitempty"`
}

type registerResponse struct {
	auth.RegisterResponse
	Intro []string `json:"intro,omitempty"`
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	var body registerRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RegisterUC.Execute(c, auth.RegisterRequest{CarriedSave: body.Save})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, registerResponse{RegisterResponse: resp, Intro: h.Intro})
}

func (h Handler) intent(c context.Context, ctx *app.RequestContext) {
	profileID, err := h.requireAuthenticatedProfile(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body intentRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	idempotencyKey := body.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = string(ctx.GetHeader("Idempotency-Key"))
	}

	resp, err := h.PlayUC.Execute(c, play.Request{
		ProfileID:      profileID,
		IdempotencyKey: idempotencyKey,
		Intent: ascent.Intent{
			Type:        ascent.IntentType(body.Intent.Type),
			PillID:      body.Intent.PillID,
			OptionIndex: body.Intent.OptionIndex,
			Talent:      body.Intent.Talent,
		},
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	profileID, err := h.requireAuthenticatedProfile(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.StatusUC.Execute(c, status.Request{ProfileID: profileID})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	profileID, err := h.requireAuthenticatedProfile(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		ProfileID:    profileID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
		Category:     ascent.Category(ctx.Query("category")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingProfileIDHeader = errors.New("missing x-profile-id header")
var ErrMissingProfileKeyHeader = errors.New("missing x-profile-key header")
var ErrMissingProfileCredentials = errors.New("missing profile credentials")

func (h Handler) requireAuthenticatedProfile(c context.Context, ctx *app.RequestContext) (string, error) {
	profileID := strings.TrimSpace(string(ctx.GetHeader(profileIDHeader)))
	profileKey := strings.TrimSpace(string(ctx.GetHeader(profileKeyHeader)))
	if profileID == "" && profileKey == "" {
		return "", ErrMissingProfileCredentials
	}
	if profileID == "" {
		return "", ErrMissingProfileIDHeader
	}
	if profileKey == "" {
		return "", ErrMissingProfileKeyHeader
	}
	if err := h.AuthUC.Execute(c, auth.VerifyRequest{
		ProfileID:  profileID,
		ProfileKey: profileKey,
	}); err != nil {
		return "", err
	}
	return profileID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingProfileCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_profile_credentials", err.Error())
	case errors.Is(err, ErrMissingProfileIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_profile_id", err.Error())
	case errors.Is(err, ErrMissingProfileKeyHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_profile_key", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_profile_credentials", err.Error())
	case errors.Is(err, auth.ErrUnreadableSave):
		writeErrorBody(ctx, consts.StatusBadRequest, "unreadable_save", err.Error())
	case errors.Is(err, ascent.ErrIntentNotAllowed):
		writeErrorBody(ctx, consts.StatusConflict, "intent_not_allowed", err.Error())
	case errors.Is(err, ascent.ErrUnknownIntent):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_intent", err.Error())
	case errors.Is(err, ascent.ErrUnknownPill):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_pill", err.Error())
	case errors.Is(err, ascent.ErrInvalidOption):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_option", err.Error())
	case errors.Is(err, ascent.ErrUnknownTalent):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_talent", err.Error())
	case errors.Is(err, play.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
