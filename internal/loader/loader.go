// Package loader fetches dataset text by name from files, HTTP, or
// spreadsheets.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrLoadFailure matches every error returned by a Loader.
var ErrLoadFailure = errors.New("loader: load failed")

// LoadError wraps the underlying IO or network error for one name.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loader: cannot load %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoadFailure }

// Loader yields the raw text of a named dataset.
type Loader interface {
	LoadText(ctx context.Context, name string) (string, error)
}

// DefaultExt is appended to names without an extension.
const DefaultExt = ".csv"

func withExt(name string) string {
	if path.Ext(name) == "" {
		return name + DefaultExt
	}
	return name
}

// FileLoader reads datasets from a directory.
type FileLoader struct {
	Dir string
}

func (l FileLoader) LoadText(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &LoadError{Name: name, Err: err}
	}
	p := withExt(name)
	if !filepath.IsAbs(p) {
		p = filepath.Join(l.Dir, p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", &LoadError{Name: name, Err: err}
	}
	return string(data), nil
}

// HTTPLoader fetches BaseURL/data/<name>.csv.
type HTTPLoader struct {
	BaseURL string
	Client  *http.Client
}

// DefaultTimeout bounds one HTTP load when no client is configured.
const DefaultTimeout = 15 * time.Second

func (l HTTPLoader) LoadText(ctx context.Context, name string) (string, error) {
	u, err := url.JoinPath(l.BaseURL, "data", withExt(name))
	if err != nil {
		return "", &LoadError{Name: name, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", &LoadError{Name: name, Err: err}
	}

	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &LoadError{Name: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &LoadError{Name: name, Err: fmt.Errorf("GET %s: %s", u, resp.Status)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &LoadError{Name: name, Err: err}
	}
	return string(body), nil
}

// Resolver picks a loader from the shape of the name: spreadsheets go to
// Workbook, everything else to HTTP when a base URL is set, else Files.
type Resolver struct {
	Files    FileLoader
	HTTP     *HTTPLoader
	Workbook WorkbookLoader
}

// New builds a Resolver over dir, an optional base URL, and the sheet
// used for spreadsheets (empty for the first sheet).
func New(dir, baseURL, sheet string) *Resolver {
	r := &Resolver{
		Files:    FileLoader{Dir: dir},
		Workbook: WorkbookLoader{Dir: dir, Sheet: sheet},
	}
	if baseURL != "" {
		r.HTTP = &HTTPLoader{BaseURL: baseURL}
	}
	return r
}

func (r *Resolver) LoadText(ctx context.Context, name string) (string, error) {
	switch {
	case IsWorkbook(name):
		return r.Workbook.LoadText(ctx, name)
	case r.HTTP != nil:
		return r.HTTP.LoadText(ctx, name)
	default:
		return r.Files.LoadText(ctx, name)
	}
}

// IsWorkbook reports whether name refers to an xlsx spreadsheet.
func IsWorkbook(name string) bool {
	return strings.EqualFold(path.Ext(name), ".xlsx")
}
