package indexing

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/wordsolverx/postermaker/internal/httpclient"
)

const (
	// Scope is the OAuth scope of the Indexing API.
	Scope = "https://www.googleapis.com/auth/indexing"
	// DefaultEndpoint is the urlNotifications publish method.
	DefaultEndpoint = "https://indexing.googleapis.com/v3/urlNotifications:publish"

	TypeUpdated = "URL_UPDATED"
	TypeDeleted = "URL_DELETED"

	requestTimeout = 30 * time.Second
)

var (
	// ErrNoCredentials means no service account key was found.
	ErrNoCredentials = errors.New("no google service account credentials")
	// ErrPermissionDenied is a 403: the service account does not own the
	// site in Search Console.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrRateLimited is a 429 that outlived the client's retries.
	ErrRateLimited = errors.New("rate limited")
)

// ServiceAccountKey returns the JSON key from the base64 value if set,
// otherwise from file.
func ServiceAccountKey(base64JSON, file string) ([]byte, error) {
	if base64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(base64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode service account json: %w", err)
		}
		return data, nil
	}
	if file == "" {
		return nil, ErrNoCredentials
	}
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCredentials
		}
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return data, nil
}

// TokenSource builds an OAuth token source for the Indexing scope from a
// service account key.
func TokenSource(ctx context.Context, key []byte) (oauth2.TokenSource, error) {
	conf, err := google.JWTConfigFromJSON(key, Scope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	return conf.TokenSource(ctx), nil
}

// Submitter announces URLs one at a time.
type Submitter struct {
	Endpoint string
	Logger   *slog.Logger
	client   *retryablehttp.Client
}

// NewSubmitter returns a Submitter whose requests carry tokens from ts.
// A nil ts sends unauthenticated requests.
func NewSubmitter(ctx context.Context, ts oauth2.TokenSource) *Submitter {
	client := httpclient.New(requestTimeout)
	if ts != nil {
		authed := oauth2.NewClient(ctx, ts)
		authed.Timeout = requestTimeout
		client.HTTPClient = authed
	}
	// Hand the last response back after retries so 429s can be classified.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &Submitter{Endpoint: DefaultEndpoint, client: client}
}

type notification struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Submit publishes one notification of the given type.
func (s *Submitter) Submit(ctx context.Context, pageURL, typ string) error {
	body, err := json.Marshal(notification{URL: pageURL, Type: typ})
	if err != nil {
		return err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("submit %s: %w", pageURL, ErrPermissionDenied)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("submit %s: %w", pageURL, ErrRateLimited)
	case resp.StatusCode/100 != 2:
		return fmt.Errorf("submit %s: status %d: %s", pageURL, resp.StatusCode, detail)
	}
	return nil
}

// Failure is one URL that could not be submitted.
type Failure struct {
	URL string
	Err error
}

// Summary counts the outcome of SubmitAll.
type Summary struct {
	Submitted int
	Failed    []Failure
}

// SubmitAll submits every URL as URL_UPDATED. Per-URL failures are logged
// and collected; only context cancellation stops the run early.
func (s *Submitter) SubmitAll(ctx context.Context, urls []string) (Summary, error) {
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}
	var sum Summary
	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		err := s.Submit(ctx, u, TypeUpdated)
		switch {
		case err == nil:
			sum.Submitted++
			log.Info("url submitted", "url", u)
			continue
		case errors.Is(err, ErrPermissionDenied):
			log.Error("permission denied, check Search Console ownership", "url", u)
		case errors.Is(err, ErrRateLimited):
			log.Warn("rate limited, try again later", "url", u)
		case ctx.Err() != nil:
			return sum, ctx.Err()
		default:
			log.Error("submit failed", "url", u, "err", err)
		}
		sum.Failed = append(sum.Failed, Failure{URL: u, Err: err})
	}
	return sum, nil
}
