package igdb

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/desertthunder/gamedex/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

// DefaultTokenURL is the Twitch client-credentials token endpoint.
const DefaultTokenURL = "https://id.twitch.tv/oauth2/token"

// refreshMargin is subtracted from a token's lifetime so a credential is
// never handed out moments before it expires server-side.
const refreshMargin = 60 * time.Second

// Credential is a bearer token with its expiry. Token and expiry are
// always replaced together.
type Credential struct {
	AccessToken string
	ExpiresAt   time.Time
}

// TokenSource caches the Twitch client-credentials token for the IGDB
// API. Constructed once per process and injected into [Client]; many
// goroutines may call [TokenSource.Token] concurrently.
//
// Refreshes are single-flight: one refresh proceeds while concurrent
// callers wait on its result. A failed refresh evicts any cached
// credential and propagates the error to every waiter.
type TokenSource struct {
	conf       *clientcredentials.Config
	httpClient *http.Client

	mu    sync.Mutex
	cur   *Credential
	group singleflight.Group
}

// NewTokenSource creates a TokenSource for the given Twitch application
// credentials. An empty tokenURL uses [DefaultTokenURL]; a nil client
// uses [http.DefaultClient].
func NewTokenSource(clientID, clientSecret, tokenURL string, client *http.Client) *TokenSource {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &TokenSource{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: client,
	}
}

// Token returns a valid access token, refreshing if the cache is empty
// or the cached credential expires within the refresh margin.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	if cred, ok := t.cached(); ok {
		return cred.AccessToken, nil
	}

	v, err, _ := t.group.Do("refresh", func() (any, error) {
		// A waiter may arrive after the refresh that it queued behind
		// already completed; reuse the fresh credential.
		if cred, ok := t.cached(); ok {
			return cred, nil
		}
		return t.refresh(ctx)
	})
	if err != nil {
		return "", err
	}

	return v.(*Credential).AccessToken, nil
}

// ForceRefresh evicts the cached credential and fetches a new one. Used
// by [Client] when the remote rejects a token that was valid at read
// time. Concurrent forced refreshes still collapse into one request.
func (t *TokenSource) ForceRefresh(ctx context.Context) (string, error) {
	t.Invalidate()
	return t.Token(ctx)
}

// Invalidate drops the cached credential.
func (t *TokenSource) Invalidate() {
	t.mu.Lock()
	t.cur = nil
	t.mu.Unlock()
}

func (t *TokenSource) cached() (*Credential, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cur == nil || !time.Now().Add(refreshMargin).Before(t.cur.ExpiresAt) {
		return nil, false
	}
	return t.cur, true
}

// refresh performs the client-credentials grant and replaces the cache
// atomically. On failure the stale credential is evicted so the next
// call retries from scratch.
func (t *TokenSource) refresh(ctx context.Context) (*Credential, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, t.httpClient)

	tok, err := t.conf.Token(ctx)
	if err != nil {
		t.Invalidate()
		return nil, fmt.Errorf("%w: token request: %v", shared.ErrAuthFailed, err)
	}

	cred := &Credential{AccessToken: tok.AccessToken, ExpiresAt: tok.Expiry}

	t.mu.Lock()
	t.cur = cred
	t.mu.Unlock()

	return cred, nil
}
