package publish

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	pinterestAPI        = "https://api.pinterest.com"
	pinterestSandboxAPI = "https://api-sandbox.pinterest.com"

	pinTitleLimit       = 100
	pinDescriptionLimit = 500
)

// Pinterest creates image pins through the v5 API.
type Pinterest struct {
	Token   string
	Sandbox bool
	// BaseURL overrides the production and sandbox hosts.
	BaseURL string
	Client  *retryablehttp.Client
}

func (p *Pinterest) Name() string { return "pinterest" }

type pinMedia struct {
	SourceType  string `json:"source_type"`
	ContentType string `json:"content_type"`
	Data        string `json:"data"`
}

type pinRequest struct {
	BoardID     string   `json:"board_id"`
	MediaSource pinMedia `json:"media_source"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
}

func (p *Pinterest) baseURL() string {
	switch {
	case p.BaseURL != "":
		return p.BaseURL
	case p.Sandbox:
		return pinterestSandboxAPI
	}
	return pinterestAPI
}

func (p *Pinterest) Publish(ctx context.Context, post Post) (Receipt, error) {
	if p.Token == "" {
		return Receipt{}, fmt.Errorf("pinterest: access token missing: %w", ErrNotConfigured)
	}
	if post.BoardID == "" {
		return Receipt{}, fmt.Errorf("pinterest: board id missing for %s: %w", post.Topic, ErrNotConfigured)
	}
	contentType := post.ContentType
	if contentType == "" {
		contentType = "image/png"
	}

	body, err := json.Marshal(pinRequest{
		BoardID: post.BoardID,
		MediaSource: pinMedia{
			SourceType:  "image_base64",
			ContentType: contentType,
			Data:        base64.StdEncoding.EncodeToString(post.Image),
		},
		Title:       truncate(post.Title, pinTitleLimit),
		Description: truncate(post.Description, pinDescriptionLimit),
		Link:        post.Link,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("pinterest: encode pin: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, p.baseURL()+"/v5/pins", body)
	if err != nil {
		return Receipt{}, fmt.Errorf("pinterest: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.Token)
	req.Header.Set("Content-Type", "application/json")

	id, err := do(clientOrDefault(p.Client), req, p.Name())
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{Platform: p.Name(), ID: id, URL: "https://www.pinterest.com/pin/" + id + "/"}, nil
}
