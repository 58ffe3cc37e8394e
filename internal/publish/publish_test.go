package publish

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/wordsolverx/postermaker/internal/httpclient"
)

func testClient() *retryablehttp.Client {
	c := httpclient.New(5 * time.Second)
	c.RetryWaitMin = time.Millisecond
	c.RetryWaitMax = 5 * time.Millisecond
	return c
}

var png = []byte("\x89PNG\r\n\x1a\nfake")

func TestPinterestPublish(t *testing.T) {
	var got pinRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v5/pins" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"987"}`)
	}))
	defer srv.Close()

	p := &Pinterest{Token: "tok", BaseURL: srv.URL, Client: testClient()}
	rec, err := p.Publish(context.Background(), Post{
		Topic:       "wordle",
		Title:       strings.Repeat("t", 150),
		Description: strings.Repeat("d", 600),
		Link:        "https://wordsolverx.com/wordle-answer-for-january-17-2026",
		BoardID:     "924434329702687588",
		Image:       png,
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if rec.ID != "987" || rec.Platform != "pinterest" || rec.URL != "https://www.pinterest.com/pin/987/" {
		t.Errorf("receipt = %+v", rec)
	}
	if len(got.Title) != pinTitleLimit || len(got.Description) != pinDescriptionLimit {
		t.Errorf("title %d / description %d not truncated", len(got.Title), len(got.Description))
	}
	if got.BoardID != "924434329702687588" || got.MediaSource.SourceType != "image_base64" || got.MediaSource.ContentType != "image/png" {
		t.Errorf("pin = %+v", got)
	}
	if data, _ := base64.StdEncoding.DecodeString(got.MediaSource.Data); string(data) != string(png) {
		t.Error("image payload mismatch")
	}
}

func TestPinterestRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"code":1,"message":"Invalid board"}`)
	}))
	defer srv.Close()

	p := &Pinterest{Token: "tok", BaseURL: srv.URL, Client: testClient()}
	_, err := p.Publish(context.Background(), Post{BoardID: "1", Image: png})
	if err == nil || !strings.Contains(err.Error(), "Invalid board") {
		t.Errorf("err = %v, want rejection message", err)
	}
}

func TestPinterestNotConfigured(t *testing.T) {
	if _, err := (&Pinterest{}).Publish(context.Background(), Post{BoardID: "1"}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("missing token err = %v", err)
	}
	if _, err := (&Pinterest{Token: "x"}).Publish(context.Background(), Post{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("missing board err = %v", err)
	}
}

func TestPinterestHosts(t *testing.T) {
	if got := (&Pinterest{Sandbox: true}).baseURL(); got != pinterestSandboxAPI {
		t.Errorf("sandbox host = %s", got)
	}
	if got := (&Pinterest{}).baseURL(); got != pinterestAPI {
		t.Errorf("production host = %s", got)
	}
}

func TestFacebookPublish(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/964134700097059/photos" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		if r.FormValue("access_token") != "fb" || r.FormValue("published") != "true" {
			t.Errorf("form = %v", r.MultipartForm.Value)
		}
		if !strings.Contains(r.FormValue("message"), "#Quordle") {
			t.Errorf("message = %q", r.FormValue("message"))
		}
		file, header, err := r.FormFile("source")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != string(png) || header.Header.Get("Content-Type") != "image/png" {
			t.Errorf("source part = %q (%s)", data, header.Header.Get("Content-Type"))
		}
		io.WriteString(w, `{"id":"555_777","post_id":"555_777"}`)
	}))
	defer srv.Close()

	f := &Facebook{Token: "fb", PageID: "964134700097059", BaseURL: srv.URL, Client: testClient()}
	title := Title("Quordle", "March 3, 2026")
	rec, err := f.Publish(context.Background(), Post{
		Description: FacebookCaption(title, "Quordle", "https://wordsolverx.com/quordle-answer-for-march-03-2026"),
		Image:       png,
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if rec.ID != "555_777" || rec.URL != "https://www.facebook.com/555_777" {
		t.Errorf("receipt = %+v", rec)
	}
}

func TestFacebookGraphError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":{"message":"(#200) Permissions error","code":200}}`)
	}))
	defer srv.Close()

	f := &Facebook{Token: "fb", PageID: "1", BaseURL: srv.URL, Client: testClient()}
	_, err := f.Publish(context.Background(), Post{Image: png})
	if err == nil || !strings.Contains(err.Error(), "Permissions error") {
		t.Errorf("err = %v", err)
	}
}

func TestFacebookNotConfigured(t *testing.T) {
	if _, err := (&Facebook{PageID: "1"}).Publish(context.Background(), Post{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v", err)
	}
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, `{"id":"1"}`)
	}))
	defer srv.Close()

	p := &Pinterest{Token: "tok", BaseURL: srv.URL, Client: testClient()}
	if _, err := p.Publish(context.Background(), Post{BoardID: "b", Image: png}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func TestCopy(t *testing.T) {
	title := Title("Wordle", "January 17, 2026")
	if title != "Wordle Answer for January 17, 2026" {
		t.Errorf("Title = %q", title)
	}
	link := "https://wordsolverx.com/wordle-answer-for-january-17-2026"
	if got := PinDescription("Wordle", link); got != "Find today's Wordle answer and hints! Visit "+link {
		t.Errorf("PinDescription = %q", got)
	}
	want := "🎯 " + title + "\n\n🔗 " + link + "\n\n#Wordle #Wordle #WordGames #PuzzleGames"
	if got := FacebookCaption(title, "Wordle", link); got != want {
		t.Errorf("FacebookCaption = %q", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncate("🎯🎯🎯", 2); got != "🎯🎯" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}
