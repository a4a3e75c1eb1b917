package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
)

// webSession backs the overview client's recovery actions with a cookie jar
// shared with its HTTP client. Refresh replays a plain page load so the site
// hands out fresh cookies; Clear swaps the jar for an empty one.
type webSession struct {
	client *http.Client
}

func newWebSession() (*webSession, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &webSession{
		client: &http.Client{Jar: jar},
	}, nil
}

// Refresh implements ninja.CookieRefresher.
func (s *webSession) Refresh(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating refresh request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("refreshing cookies: %w", err)
	}
	return resp.Body.Close()
}

// Clear implements ninja.SessionStore.
func (s *webSession) Clear(_ context.Context) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("creating cookie jar: %w", err)
	}
	s.client.Jar = jar
	return nil
}
