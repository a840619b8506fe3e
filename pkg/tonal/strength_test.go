package tonal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetStrengthScoreHistory(t *testing.T) {
	body := `[{"overall":625,"upper":600,"lower":700,"core":580},{"overall":620}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/strength-scores/history") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "5000" {
			t.Errorf("expected limit 5000, got %s", got)
		}
		if got := r.URL.Query().Get("endDate"); len(got) != 10 {
			t.Errorf("expected an endDate, got %q", got)
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	history, err := c.GetStrengthScoreHistory(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history.Raw() != body {
		t.Fatalf("expected history to be kept as-is, got %s", history.Raw())
	}
}

func TestGetStrengthScoreHistory_FailureIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	history, err := c.GetStrengthScoreHistory(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected failure to be absorbed, got %v", err)
	}
	if history.Raw() != "[]" {
		t.Fatalf("expected empty history, got %s", history.Raw())
	}
}

func TestGetCurrentStrengthScores(t *testing.T) {
	body := `[
		{"strengthBodyRegion":"Overall","score":625.4,"familyActivity":[
			{"strengthFamily":"Chest","score":580.6,"updatedAt":"2026-01-02T03:04:05Z"}
		]},
		{"strengthBodyRegion":"Lower","score":700.2,"familyActivity":[]}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/strength-scores/current") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	scores, err := c.GetCurrentStrengthScores(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores.IsZero() {
		t.Fatal("expected scores to be populated")
	}
	if scores.Raw.Raw() != body {
		t.Fatal("expected the raw payload to be kept as-is")
	}

	if got := scores.Parsed.Regions["Overall"]; got != 625.4 {
		t.Fatalf("expected Overall 625.4, got %v", got)
	}
	if got := scores.Parsed.Regions["Lower"]; got != 700.2 {
		t.Fatalf("expected Lower 700.2, got %v", got)
	}

	chest, ok := scores.Parsed.Muscles["Chest"]
	if !ok {
		t.Fatalf("expected Chest muscle, got %#v", scores.Parsed.Muscles)
	}
	if chest.Score != 581 {
		t.Fatalf("expected rounded score 581, got %d", chest.Score)
	}
	if chest.Region != "Overall" {
		t.Fatalf("expected region Overall, got %s", chest.Region)
	}
	if chest.UpdatedAt != "2026-01-02T03:04:05Z" {
		t.Fatalf("expected updatedAt to be kept, got %s", chest.UpdatedAt)
	}
}

func TestGetCurrentStrengthScores_FailureIsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	scores, err := c.GetCurrentStrengthScores(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected failure to be absorbed, got %v", err)
	}
	if !scores.IsZero() {
		t.Fatalf("expected zero scores, got %#v", scores)
	}
}

func TestGetCurrentStrengthScores_EmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	scores, err := c.GetCurrentStrengthScores(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scores.IsZero() {
		t.Fatalf("expected zero scores for an empty list, got %#v", scores)
	}
}

func TestStrengthScores_ZeroMarshalsEmptyObject(t *testing.T) {
	out, err := json.Marshal(StrengthScores{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "{}" {
		t.Fatalf("expected {}, got %s", out)
	}
}

func TestStrengthScores_MarshalKeepsRawAndParsed(t *testing.T) {
	scores := StrengthScores{
		Raw: NewDocument(`[{"strengthBodyRegion":"Overall","score":625}]`),
		Parsed: ParsedStrength{
			Regions: map[string]float64{"Overall": 625},
			Muscles: map[string]MuscleScore{},
		},
	}

	out, err := json.Marshal(scores)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), `"raw":[{"strengthBodyRegion"`) {
		t.Fatalf("expected raw payload in output, got %s", out)
	}
	if !strings.Contains(string(out), `"regions":{"Overall":625}`) {
		t.Fatalf("expected parsed regions in output, got %s", out)
	}
}
