package content

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Fetcher retrieves a text resource by its site-relative path
// (e.g. "/artwork_info.txt").
type Fetcher interface {
	Fetch(ctx context.Context, resourcePath string) (string, error)
}

// HTTPFetcher fetches resources from a remote origin.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with a bounded client.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, resourcePath string) (string, error) {
	url := strings.TrimRight(f.BaseURL, "/") + "/" + strings.TrimLeft(resourcePath, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "text/plain")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	return decodeText(resp.Body)
}

// DirFetcher reads resources from a directory tree.
type DirFetcher struct {
	FS fs.FS
}

func (f *DirFetcher) Fetch(ctx context.Context, resourcePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := strings.TrimPrefix(path.Clean("/"+resourcePath), "/")
	file, err := f.FS.Open(name)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", name, err)
	}
	defer file.Close()

	return decodeText(file)
}

// decodeText reads UTF-8 text, dropping a leading byte order mark and
// normalising line endings to "\n".
func decodeText(r io.Reader) (string, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}
