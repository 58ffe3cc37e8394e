package fonts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	tdfont "github.com/tdewolff/font"

	"github.com/wordsolverx/postermaker/internal/atomicfile"
	"github.com/wordsolverx/postermaker/internal/httpclient"
)

// DefaultGoogleCSSURL is the Google Fonts CSS2 endpoint.
const DefaultGoogleCSSURL = "https://fonts.googleapis.com/css2"

const downloadTimeout = 15 * time.Second

// fontURLRe extracts the font file URL from a CSS2 response, e.g.
// url(https://fonts.gstatic.com/s/inter/v18/xxx.woff2)
var fontURLRe = regexp.MustCompile(`url\((https?://[^)]+)\)`)

// ParseGoogleSpec splits "google:Family:Weight".
func ParseGoogleSpec(spec string) (family, weight string, ok bool) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 || parts[0] != "google" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// Google downloads a family from Google Fonts and caches the SFNT bytes in
// CacheDir, so the network is only touched on the first run.
type Google struct {
	Family   string
	Weight   string
	CacheDir string
	// CSSURL overrides DefaultGoogleCSSURL.
	CSSURL string
	Client *retryablehttp.Client
}

func (g *Google) cacheFile() string {
	return filepath.Join(g.CacheDir, fmt.Sprintf("%s-%s.ttf", strings.ReplaceAll(g.Family, " ", "_"), g.Weight))
}

func (g *Google) Load(ctx context.Context) ([]byte, error) {
	if g.CacheDir != "" {
		if data, err := os.ReadFile(g.cacheFile()); err == nil {
			return data, nil
		}
	}

	client := g.Client
	if client == nil {
		client = httpclient.New(downloadTimeout)
	}
	cssBase := g.CSSURL
	if cssBase == "" {
		cssBase = DefaultGoogleCSSURL
	}
	cssURL := fmt.Sprintf("%s?family=%s:wght@%s", cssBase, url.QueryEscape(g.Family), g.Weight)

	cssBody, err := fetch(ctx, client, cssURL, 1<<20)
	if err != nil {
		return nil, fmt.Errorf("fetch google fonts css for %s wght@%s: %w", g.Family, g.Weight, err)
	}
	matches := fontURLRe.FindSubmatch(cssBody)
	if matches == nil {
		return nil, fmt.Errorf("no font URL in google fonts css for %s wght@%s", g.Family, g.Weight)
	}
	fontURL := string(matches[1])

	data, err := fetch(ctx, client, fontURL, 10<<20)
	if err != nil {
		return nil, fmt.Errorf("download font file: %w", err)
	}
	data, err = toSFNT(fontURL, data)
	if err != nil {
		return nil, err
	}

	if g.CacheDir != "" {
		// A failed cache write only costs a re-download next run.
		_ = atomicfile.Write(g.cacheFile(), data, 0o644)
	}
	return data, nil
}

func fetch(ctx context.Context, client *retryablehttp.Client, target string, limit int64) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	// A modern user agent makes Google serve WOFF2, which toSFNT converts.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", target, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// toSFNT converts WOFF2 data to SFNT and passes anything else through.
func toSFNT(name string, data []byte) ([]byte, error) {
	if !isWOFF2(name, data) {
		return data, nil
	}
	sfnt, err := tdfont.ToSFNT(data)
	if err != nil {
		return nil, fmt.Errorf("convert woff2 to sfnt: %w", err)
	}
	return sfnt, nil
}

// isWOFF2 checks the extension and the "wOF2" magic.
func isWOFF2(name string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(name), ".woff2") {
		return true
	}
	return len(data) >= 4 && string(data[:4]) == "wOF2"
}
