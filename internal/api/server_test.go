package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/realitypatch/realitypatch/internal/agent"
	"github.com/realitypatch/realitypatch/internal/classify"
	"github.com/realitypatch/realitypatch/internal/model"
	"github.com/realitypatch/realitypatch/internal/orchestrate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedAgent struct {
	name       model.AgentName
	confidence float64
}

func (f *fixedAgent) Name() model.AgentName { return f.name }

func (f *fixedAgent) Analyze(_ context.Context, _ model.Claim) model.AgentOutcome {
	return model.AgentOutcome{
		Agent:      f.name,
		Status:     model.StatusSuccess,
		Confidence: f.confidence,
	}
}

func testRouter() *gin.Engine {
	agents := []agent.Agent{
		&fixedAgent{name: model.AgentClarity, confidence: 0.8},
		&fixedAgent{name: model.AgentProof, confidence: 0.75},
		&fixedAgent{name: model.AgentContextNet, confidence: 0.6},
		&fixedAgent{name: model.AgentMediaScan, confidence: 0.7},
	}
	orch := orchestrate.New(
		classify.NewWithPolicy(func(model.Claim) bool { return false }),
		agents,
		model.DefaultConfig().Agents,
	)
	return NewServer(orch).Router()
}

func postCheck(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestServer_Check_Success(t *testing.T) {
	w := postCheck(t, testRouter(), CheckRequest{Text: "The Earth is round"})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp CheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Decode response: %v", err)
	}
	if resp.Report == nil {
		t.Fatal("Expected a report")
	}
	if resp.Report.ClaimText != "The Earth is round" {
		t.Errorf("Unexpected claim text: %s", resp.Report.ClaimText)
	}
	if len(resp.Report.Outcomes) != 2 {
		t.Errorf("Expected clarity and proof outcomes, got %d", len(resp.Report.Outcomes))
	}
	if resp.Styled != "" {
		t.Error("Expected no styled summary when not requested")
	}
}

func TestServer_Check_Styled(t *testing.T) {
	w := postCheck(t, testRouter(), CheckRequest{Text: "The Earth is round", Styled: true})

	var resp CheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Decode response: %v", err)
	}
	if resp.Styled == "" {
		t.Error("Expected a styled summary")
	}
}

func TestServer_Check_EmptyRequest(t *testing.T) {
	w := postCheck(t, testRouter(), CheckRequest{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	var resp CheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("Expected an error message")
	}
}

func TestServer_Check_InvalidJSON(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}
