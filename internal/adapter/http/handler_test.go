package httpadapter

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	staticcontent "skyladder/internal/adapter/content/static"
	metricsinmem "skyladder/internal/adapter/metrics/inmemory"
	"skyladder/internal/adapter/repo/memory"
	"skyladder/internal/app/auth"
	"skyladder/internal/app/play"
	"skyladder/internal/app/ports"
	"skyladder/internal/app/replay"
	"skyladder/internal/app/status"
	"skyladder/internal/domain/ascent"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestRequireAuthenticatedProfile_FromHeaders(t *testing.T) {
	salt := []byte("salt")
	key := "k1"
	h := Handler{
		AuthUC: auth.VerifyUseCase{Credentials: fakeCredentialStore{
			cred: ports.ProfileCredentialRecord{
				ProfileID: "prf-1",
				KeySalt:   salt,
				KeyHash:   hashForTest(salt, key),
				Status:    auth.CredentialStatusActive,
			},
		}},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(profileIDHeader, "prf-1")
	ctx.Request.Header.Set(profileKeyHeader, key)

	profileID, err := h.requireAuthenticatedProfile(context.Background(), ctx)
	if err != nil {
		t.Fatalf("requireAuthenticatedProfile error: %v", err)
	}
	if profileID != "prf-1" {
		t.Fatalf("unexpected profile id: %q", profileID)
	}
}

func TestRequireAuthenticatedProfile_MissingHeaders(t *testing.T) {
	h := Handler{}

	ctx := &app.RequestContext{}
	if _, err := h.requireAuthenticatedProfile(context.Background(), ctx); !errors.Is(err, ErrMissingProfileCredentials) {
		t.Fatalf("expected ErrMissingProfileCredentials, got %v", err)
	}

	ctx = &app.RequestContext{}
	ctx.Request.Header.Set(profileIDHeader, "prf-1")
	if _, err := h.requireAuthenticatedProfile(context.Background(), ctx); !errors.Is(err, ErrMissingProfileKeyHeader) {
		t.Fatalf("expected ErrMissingProfileKeyHeader, got %v", err)
	}

	ctx = &app.RequestContext{}
	ctx.Request.Header.Set(profileKeyHeader, "k1")
	if _, err := h.requireAuthenticatedProfile(context.Background(), ctx); !errors.Is(err, ErrMissingProfileIDHeader) {
		t.Fatalf("expected ErrMissingProfileIDHeader, got %v", err)
	}
}

func TestRequireAuthenticatedProfile_InvalidCredentials(t *testing.T) {
	h := Handler{
		AuthUC: auth.VerifyUseCase{Credentials: fakeCredentialStore{}},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(profileIDHeader, "prf-1")
	ctx.Request.Header.Set(profileKeyHeader, "wrong")

	_, err := h.requireAuthenticatedProfile(context.Background(), ctx)
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ascent.ErrIntentNotAllowed, consts.StatusConflict, "intent_not_allowed"},
		{ascent.ErrUnknownIntent, consts.StatusBadRequest, "unknown_intent"},
		{ascent.ErrUnknownPill, consts.StatusBadRequest, "unknown_pill"},
		{ascent.ErrInvalidOption, consts.StatusBadRequest, "invalid_option"},
		{ascent.ErrUnknownTalent, consts.StatusBadRequest, "unknown_talent"},
		{auth.ErrInvalidCredentials, consts.StatusUnauthorized, "invalid_profile_credentials"},
		{play.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{replay.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{ports.ErrConflict, consts.StatusConflict, "conflict"},
		{ports.ErrNotFound, consts.StatusNotFound, "not_found"},
		{errors.New("boom"), consts.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, tc.err)

		if got := ctx.Response.StatusCode(); got != tc.status {
			t.Fatalf("%v: status mismatch: got=%d want=%d", tc.err, got, tc.status)
		}
		var body map[string]map[string]any
		if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if got := body["error"]["code"]; got != tc.code {
			t.Fatalf("%v: error code mismatch: got=%q want=%q", tc.err, got, tc.code)
		}
	}
}

func TestIntent_RejectsInvalidJSON(t *testing.T) {
	h, id, key := newTestHandler(t)
	ctx := authedRequest(id, key, `{"intent":`)

	h.intent(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestIntent_WrongPhaseIsConflict(t *testing.T) {
	h, id, key := newTestHandler(t)
	ctx := authedRequest(id, key, `{"intent":{"type":"craft"}}`)

	h.intent(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
}

func TestIntent_StartRunThenStatusAndReplay(t *testing.T) {
	h, id, key := newTestHandler(t)

	ctx := authedRequest(id, key, `{"idempotency_key":"start-1","intent":{"type":"start_run"}}`)
	h.intent(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("intent status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	var started play.Response
	if err := json.Unmarshal(ctx.Response.Body(), &started); err != nil {
		t.Fatalf("unmarshal intent: %v", err)
	}
	if started.ResultCode != ascent.ResultOK || started.Run.Phase != ascent.PhaseIdle || started.Run.Player == nil {
		t.Fatalf("unexpected start: %+v", started)
	}
	if len(started.Events) == 0 || started.Events[0].Type != "run_started" {
		t.Fatalf("expected run_started event, got %+v", started.Events)
	}

	again := authedRequest(id, key, `{"idempotency_key":"start-1","intent":{"type":"start_run"}}`)
	h.intent(context.Background(), again)
	var replayed play.Response
	if err := json.Unmarshal(again.Response.Body(), &replayed); err != nil {
		t.Fatalf("unmarshal replayed intent: %v", err)
	}
	if again.Response.StatusCode() != consts.StatusOK || !replayed.Replayed || replayed.Run.Version != started.Run.Version {
		t.Fatalf("expected idempotent replay, got status=%d body=%s", again.Response.StatusCode(), again.Response.Body())
	}

	st := authedRequest(id, key, "")
	h.status(context.Background(), st)
	var view status.Response
	if err := json.Unmarshal(st.Response.Body(), &view); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	if view.View.CraftCost != ascent.CraftBaseCost || len(view.View.AllowedIntents) == 0 {
		t.Fatalf("unexpected view: %+v", view.View)
	}

	rp := authedRequest(id, key, "")
	rp.Request.SetRequestURI("/api/run/replay?limit=10")
	h.replay(context.Background(), rp)
	var log replay.Response
	if err := json.Unmarshal(rp.Response.Body(), &log); err != nil {
		t.Fatalf("unmarshal replay: %v", err)
	}
	if len(log.Events) != len(started.Events) {
		t.Fatalf("replay events = %d, want %d", len(log.Events), len(started.Events))
	}
}

func TestRegister_OK(t *testing.T) {
	store := memory.NewStore()
	h := Handler{
		RegisterUC: auth.RegisterUseCase{
			Credentials: memory.NewProfileCredentialRepo(store),
			Saves:       memory.NewSaveRepo(store),
			TxManager:   memory.NewTxManager(store),
			Now:         func() time.Time { return time.Unix(1700000000, 0).UTC() },
		},
		Intro: []string{"You open your eyes."},
	}
	ctx := &app.RequestContext{}

	h.register(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusCreated; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	for _, key := range []string{"profile_id", "profile_key", "issued_at", "save", "carried_over", "intro"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("missing %q in %s", key, ctx.Response.Body())
		}
	}
}

func TestRegister_CarriedSave(t *testing.T) {
	store := memory.NewStore()
	saves := memory.NewSaveRepo(store)
	h := Handler{
		RegisterUC: auth.RegisterUseCase{
			Credentials: memory.NewProfileCredentialRepo(store),
			Saves:       saves,
			TxManager:   memory.NewTxManager(store),
		},
	}

	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"save":{"points":120,"rebirthCount":2}}`))
	h.register(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusCreated; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	var resp struct {
		ProfileID   string `json:"profile_id"`
		CarriedOver bool   `json:"carried_over"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	rec, err := saves.Load(context.Background(), resp.ProfileID)
	if err != nil {
		t.Fatalf("load seeded record: %v", err)
	}
	if !resp.CarriedOver || rec.Points != 120 || rec.RebirthCount != 2 {
		t.Fatalf("carried save not stored: carried=%v record=%+v", resp.CarriedOver, rec)
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"save":[1,2]}`))
	h.register(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if !strings.Contains(string(ctx.Response.Body()), "unreadable_save") {
		t.Fatalf("unexpected error body: %s", ctx.Response.Body())
	}
}

func TestKPI(t *testing.T) {
	ctx := &app.RequestContext{}
	Handler{}.kpi(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}

	rec := metricsinmem.NewRecorder()
	rec.RecordSuccess(ascent.IntentRest, ascent.ResultOK)
	ctx = &app.RequestContext{}
	Handler{KPI: rec}.kpi(context.Background(), ctx)
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["intent_total"] != float64(1) {
		t.Fatalf("unexpected kpi body: %s", ctx.Response.Body())
	}
}

func newTestHandler(t *testing.T) (Handler, string, string) {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxManager(store)
	creds := memory.NewProfileCredentialRepo(store)
	saves := memory.NewSaveRepo(store)
	runs := memory.NewRunRepo(store)
	events := memory.NewEventRepo(store)
	now := func() time.Time { return time.Unix(1700000000, 0).UTC() }

	h := Handler{
		RegisterUC: auth.RegisterUseCase{Credentials: creds, Saves: saves, TxManager: tx, Now: now},
		AuthUC:     auth.VerifyUseCase{Credentials: creds},
		PlayUC: play.UseCase{
			TxManager:  tx,
			Runs:       runs,
			Saves:      saves,
			Events:     events,
			Executions: memory.NewIntentExecutionRepo(store),
			Progression: ascent.ProgressionService{
				Dice:    rand.New(rand.NewPCG(7, 11)),
				Content: staticcontent.Default(),
			},
			Now: now,
		},
		StatusUC: status.UseCase{Runs: runs, Saves: saves, Content: staticcontent.Default()},
		ReplayUC: replay.UseCase{Events: events},
	}
	resp, err := h.RegisterUC.Execute(context.Background(), auth.RegisterRequest{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return h, resp.ProfileID, resp.ProfileKey
}

func authedRequest(profileID, key, body string) *app.RequestContext {
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(profileIDHeader, profileID)
	ctx.Request.Header.Set(profileKeyHeader, key)
	if body != "" {
		ctx.Request.SetBody([]byte(body))
	}
	return ctx
}

type fakeCredentialStore struct {
	cred ports.ProfileCredentialRecord
}

func (s fakeCredentialStore) Create(_ context.Context, _ ports.ProfileCredentialRecord) error {
	return nil
}

func (s fakeCredentialStore) GetByProfileID(_ context.Context, _ string) (ports.ProfileCredentialRecord, error) {
	if s.cred.ProfileID == "" {
		return ports.ProfileCredentialRecord{}, ports.ErrNotFound
	}
	return s.cred, nil
}

func hashForTest(salt []byte, key string) []byte {
	b := append(append([]byte{}, salt...), key...)
	sum := sha256.Sum256(b)
	return sum[:]
}
