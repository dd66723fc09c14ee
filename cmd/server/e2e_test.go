//go:build e2e

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type profileAuth struct {
	ID  string
	Key string
}

func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("intent requires profile headers", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/run/intent", profileAuth{}, map[string]any{})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	status, regBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/profile/register", profileAuth{}, map[string]any{})
	if status != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", status, string(regBody))
	}
	var reg map[string]any
	if err := json.Unmarshal(regBody, &reg); err != nil {
		t.Fatalf("unmarshal register: %v body=%s", err, string(regBody))
	}
	profile := profileAuth{ID: asString(reg["profile_id"]), Key: asString(reg["profile_key"])}
	if profile.ID == "" || profile.Key == "" {
		t.Fatalf("register returned no credentials: %s", string(regBody))
	}

	idempotencyKey := "remote-e2e-" + time.Now().UTC().Format("20060102150405")

	t.Run("intent status replay ops", func(t *testing.T) {
		intentReq := map[string]any{
			"idempotency_key": idempotencyKey,
			"intent":          map[string]any{"type": "start_run"},
		}
		status, firstBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/run/intent", profile, intentReq)
		if status != http.StatusOK {
			t.Fatalf("first intent status=%d body=%s", status, string(firstBody))
		}
		var first map[string]any
		if err := json.Unmarshal(firstBody, &first); err != nil {
			t.Fatalf("unmarshal first intent: %v body=%s", err, string(firstBody))
		}

		status, secondBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/run/intent", profile, intentReq)
		if status != http.StatusOK {
			t.Fatalf("second intent status=%d body=%s", status, string(secondBody))
		}
		var second map[string]any
		if err := json.Unmarshal(secondBody, &second); err != nil {
			t.Fatalf("unmarshal second intent: %v body=%s", err, string(secondBody))
		}
		if asMap(first["run"])["version"] != asMap(second["run"])["version"] || second["replayed"] != true {
			t.Fatalf("idempotency mismatch: first=%v second=%v", first["run"], second["run"])
		}

		status, craftBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/run/intent", profile, map[string]any{
			"intent": map[string]any{"type": "craft"},
		})
		if status != http.StatusOK {
			t.Fatalf("craft status=%d body=%s", status, string(craftBody))
		}

		status, statusBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/run/status", profile, map[string]any{})
		if status != http.StatusOK {
			t.Fatalf("status endpoint status=%d body=%s", status, string(statusBody))
		}
		var st map[string]any
		if err := json.Unmarshal(statusBody, &st); err != nil {
			t.Fatalf("unmarshal status response: %v body=%s", err, string(statusBody))
		}
		if len(asSlice(asMap(st["view"])["allowed_intents"])) == 0 {
			t.Fatalf("expected allowed_intents in status view, got=%v", st)
		}

		status, replayBody, err := doRequest(client, http.MethodGet, baseURL+"/api/run/replay?limit=20", profile, nil)
		if err != nil {
			t.Fatalf("replay request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("replay status=%d body=%s", status, string(replayBody))
		}
		var rep map[string]any
		if err := json.Unmarshal(replayBody, &rep); err != nil {
			t.Fatalf("unmarshal replay response: %v body=%s", err, string(replayBody))
		}
		if len(asSlice(rep["events"])) == 0 {
			t.Fatalf("expected replay events in response")
		}

		status, kpiBody, err := doRequest(client, http.MethodGet, baseURL+"/ops/kpi", profileAuth{}, nil)
		if err != nil {
			t.Fatalf("kpi request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(kpiBody))
		}
		var kpi map[string]any
		if err := json.Unmarshal(kpiBody, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(kpiBody))
		}
		if _, ok := kpi["intent_total"]; !ok {
			t.Fatalf("expected intent_total in kpi response")
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, auth profileAuth, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, auth, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, auth profileAuth, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if auth.ID != "" {
			req.Header.Set("X-Profile-ID", auth.ID)
			req.Header.Set("X-Profile-Key", auth.Key)
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
