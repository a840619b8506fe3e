package tonal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v6/users/userinfo" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"id":"u1","firstName":"Jane","lastName":"Doe"}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	userInfo, err := c.GetUserInfo(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := userInfo.Get("id").String(); got != "u1" {
		t.Fatalf("expected user id u1, got %s", got)
	}
}

func TestGetUserInfo_FailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(502)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	_, err := c.GetUserInfo(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != 502 {
		t.Fatalf("expected status 502, got %d", apiErr.StatusCode)
	}
}

func TestGetUserProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/profile") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"totalWorkouts":42}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	profile, err := c.GetUserProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := profile.Get("totalWorkouts").Int(); got != 42 {
		t.Fatalf("expected 42 total workouts, got %d", got)
	}
}

func TestGetUserProfile_RejectionIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	profile, err := c.GetUserProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected rejection to be absorbed, got %v", err)
	}
	if profile.Raw() != "{}" {
		t.Fatalf("expected empty profile, got %s", profile.Raw())
	}
}
