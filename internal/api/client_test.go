package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestClient points a gateway at a test server with retries disabled so
// failure-path tests return immediately.
func newTestClient(srv *httptest.Server) *Client {
	c := New(srv.URL)
	c.http.RetryMax = 0
	return c
}

func TestAccessTokenSendsClientCredentialsGrant(t *testing.T) {
	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/oauth/token" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"access_token":"tok-123","expires_in":3600,"token_type":"bearer"}`))
	}))
	defer srv.Close()

	token, err := newTestClient(srv).AccessToken(context.Background(), "cid1", "csec1")
	if err != nil {
		t.Fatalf("AccessToken failed: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("expected token tok-123, got %q", token)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("expected form-encoded body, got content type %q", gotContentType)
	}
	for _, want := range []string{"grant_type=client_credentials", "client_id=cid1", "client_secret=csec1"} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("expected body to contain %q, got %q", want, gotBody)
		}
	}
}

func TestAccessTokenInvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		_, err := newTestClient(srv).AccessToken(context.Background(), "bad", "creds")
		srv.Close()
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("status %d: expected ErrInvalidCredentials, got %v", status, err)
		}
	}
}

func TestAccessTokenOtherFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).AccessToken(context.Background(), "cid", "csec")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", authErr.StatusCode)
	}
	if !strings.Contains(authErr.Message, "upstream exploded") {
		t.Errorf("expected message to carry the body, got %q", authErr.Message)
	}
}

func TestBearerTokenHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).ListSites(context.Background(), "tok-abc"); err != nil {
		t.Fatalf("ListSites failed: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestGetSiteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetSite(context.Background(), "tok", 42)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nfErr.Resource != "site" || nfErr.ID != "42" {
		t.Errorf("expected site 42 in error, got %+v", nfErr)
	}
}

func TestGetSiteByCodeArrayFirstMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("code"); got != "abc123" {
			t.Errorf("expected code query abc123, got %q", got)
		}
		w.Write([]byte(`[{"id":7,"name":"first","url":"https://a","code":"abc123"},{"id":8,"name":"second","url":"https://b","code":"abc123"}]`))
	}))
	defer srv.Close()

	site, err := newTestClient(srv).GetSiteByCode(context.Background(), "tok", "abc123")
	if err != nil {
		t.Fatalf("GetSiteByCode failed: %v", err)
	}
	if site.ID != 7 {
		t.Errorf("expected first match (id 7), got %d", site.ID)
	}
}

func TestGetSiteByCodeEmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetSiteByCode(context.Background(), "tok", "nope")
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUpdateExperimentStatusMapsActionAndStripsStatus(t *testing.T) {
	tests := []struct {
		status string
		action string
	}{
		{ExperimentStatusActive, "ACTIVATE"},
		{ExperimentStatusPaused, "PAUSE"},
		{ExperimentStatusStopped, "STOP"},
		{ExperimentStatusDeactivated, "DEACTIVATE"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			var gotAction, gotBody string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPatch {
					t.Errorf("expected PATCH, got %s", r.Method)
				}
				gotAction = r.URL.Query().Get("action")
				body, _ := io.ReadAll(r.Body)
				gotBody = string(body)
				w.Write([]byte(`{"id":5,"name":"x","status":"` + tt.status + `","type":"CLASSIC","siteId":1}`))
			}))
			defer srv.Close()

			exp, err := newTestClient(srv).UpdateExperimentStatus(context.Background(), "tok", 5, tt.status)
			if err != nil {
				t.Fatalf("UpdateExperimentStatus failed: %v", err)
			}
			if gotAction != tt.action {
				t.Errorf("expected action %q, got %q", tt.action, gotAction)
			}
			if strings.Contains(gotBody, "status") {
				t.Errorf("expected status stripped from body, got %q", gotBody)
			}
			if exp.Status != tt.status {
				t.Errorf("expected status %q echoed back, got %q", tt.status, exp.Status)
			}
		})
	}
}

func TestAPIErrorSurfacesBodyVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"name is required","field":"name"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CreateGoal(context.Background(), "tok", CreateGoalRequest{Type: "CLICK", SiteID: 1})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", apiErr.StatusCode)
	}
	msg := apiErr.Error()
	if !strings.Contains(msg, "name is required") || !strings.Contains(msg, `"field":"name"`) {
		t.Errorf("expected message and raw body in error, got %q", msg)
	}
}
