package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIsValidSteamLogin(t *testing.T) {
	tests := []struct {
		login string
		want  bool
	}{
		{"player1", true},
		{"abc", true},
		{"a_b", true},
		{"ab", false},
		{"_player", false},
		{"player_", false},
		{"pl ayer", false},
		{"игрок", false},
		{"abcdefghijklmnopqrstuvwxyz0123456", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidSteamLogin(tt.login); got != tt.want {
			t.Errorf("IsValidSteamLogin(%q) = %v; want %v", tt.login, got, tt.want)
		}
	}
}

func TestCheckSteamLink(t *testing.T) {
	tests := []struct {
		link string
		want bool
	}{
		{"https://s.team/p/abcd-efg/HJKmnp12", true},
		{"http://s.team/p/abcd/efgh", true},
		{"s.team/p/abcd/efgh", true},
		{"https://steamcommunity.com/id/player", false},
		{"s.team/p/abcd", false},
		{"not a link", false},
		{"", false},
	}
	for _, tt := range tests {
		got := CheckSteamLink(tt.link)
		if got.Success != tt.want {
			t.Errorf("CheckSteamLink(%q).Success = %v; want %v", tt.link, got.Success, tt.want)
		}
		if !tt.want && got.Error != msgBadLink {
			t.Errorf("CheckSteamLink(%q).Error = %q", tt.link, got.Error)
		}
	}
}

func TestCheckLoginBadSyntaxSkipsNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	s := &SteamService{Client: srv.Client(), BaseURL: srv.URL + "/", Token: "key"}

	resp, err := s.CheckLogin(context.Background(), "_bad")
	if err != nil {
		t.Fatalf("CheckLogin() error: %v", err)
	}
	if resp.Success || resp.Error != msgBadLogin {
		t.Errorf("response = %+v", resp)
	}
	if calls != 0 {
		t.Errorf("external service called %d times for invalid login", calls)
	}
}

func TestCheckLoginReady(t *testing.T) {
	polls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/check_steam_login":
			if got := r.URL.Query().Get("steam_value"); got != "26" {
				t.Errorf("steam_value = %s", got)
			}
			fmt.Fprint(w, `{"success": true, "request_id": "req-77"}`)
		case "/get_steam_response":
			if got := r.URL.Query().Get("trans_id"); got != "req-77" {
				t.Errorf("trans_id = %s", got)
			}
			polls++
			if polls < 3 {
				fmt.Fprint(w, `{"status": "process"}`)
				return
			}
			fmt.Fprint(w, `{"status": "ready", "response": {"success": true}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	s := &SteamService{Client: srv.Client(), BaseURL: srv.URL + "/", Token: "key", RetryDelay: time.Millisecond}

	resp, err := s.CheckLogin(context.Background(), "player1")
	if err != nil {
		t.Fatalf("CheckLogin() error: %v", err)
	}
	if !resp.Success {
		t.Errorf("response = %+v", resp)
	}
	if polls != 3 {
		t.Errorf("polls = %d; want 3", polls)
	}
}

func TestCheckLoginGivesUpAfterMaxRetries(t *testing.T) {
	polls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/check_steam_login":
			fmt.Fprint(w, `{"success": true, "request_id": "req-1"}`)
		case "/get_steam_response":
			polls++
			fmt.Fprint(w, `{"status": "process"}`)
		}
	}))
	defer srv.Close()

	s := &SteamService{Client: srv.Client(), BaseURL: srv.URL + "/", Token: "key", RetryDelay: time.Microsecond}

	resp, err := s.CheckLogin(context.Background(), "player1")
	if err != nil {
		t.Fatalf("CheckLogin() error: %v", err)
	}
	if resp.Success || resp.Error != msgNoTopUp {
		t.Errorf("response = %+v", resp)
	}
	if polls != steamMaxRetries {
		t.Errorf("polls = %d; want %d", polls, steamMaxRetries)
	}
}

func TestCheckLoginStartRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false}`)
	}))
	defer srv.Close()

	s := &SteamService{Client: srv.Client(), BaseURL: srv.URL + "/", Token: "key"}

	resp, err := s.CheckLogin(context.Background(), "player1")
	if err != nil {
		t.Fatalf("CheckLogin() error: %v", err)
	}
	if resp.Success || resp.Error != msgBadLogin {
		t.Errorf("response = %+v", resp)
	}
}
