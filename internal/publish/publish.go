// Package publish uploads rendered posters to social platforms.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/wordsolverx/postermaker/internal/httpclient"
)

// ErrNotConfigured means the platform lacks credentials or a target; the
// caller should skip it rather than fail the run.
var ErrNotConfigured = errors.New("publisher not configured")

const uploadTimeout = 60 * time.Second

// Post is one image post.
type Post struct {
	Topic       string
	Title       string
	Description string
	Link        string
	// BoardID is the Pinterest board; other platforms ignore it.
	BoardID     string
	Image       []byte
	ContentType string
}

// Receipt identifies a created post.
type Receipt struct {
	Platform string
	ID       string
	URL      string
}

// Publisher posts to one platform.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, post Post) (Receipt, error)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func clientOrDefault(c *retryablehttp.Client) *retryablehttp.Client {
	if c != nil {
		return c
	}
	return httpclient.New(uploadTimeout)
}

// apiResponse covers the success and error shapes of both platforms.
type apiResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (r apiResponse) errorMessage() string {
	if r.Error != nil && r.Error.Message != "" {
		return r.Error.Message
	}
	return r.Message
}

// do sends req and decodes the JSON reply. A reply without an id is an error.
func do(client *retryablehttp.Client, req *retryablehttp.Request, platform string) (string, error) {
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", platform, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%s response: %w", platform, err)
	}
	var out apiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%s response (status %d): %w", platform, resp.StatusCode, err)
	}
	if resp.StatusCode/100 != 2 || out.ID == "" {
		msg := out.errorMessage()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("%s rejected post (status %d): %s", platform, resp.StatusCode, msg)
	}
	return out.ID, nil
}
