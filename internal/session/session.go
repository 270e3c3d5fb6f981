// Package session keeps the console session cookie across CLI invocations.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	faashttp "github.com/fivetwenty-io/faas-client/internal/http"
)

// Cookie is the persisted form of one session cookie.
type Cookie struct {
	Name     string     `yaml:"name"`
	Value    string     `yaml:"value"`
	Path     string     `yaml:"path,omitempty"`
	Domain   string     `yaml:"domain,omitempty"`
	Expires  *time.Time `yaml:"expires,omitempty"`
	Secure   bool       `yaml:"secure,omitempty"`
	HTTPOnly bool       `yaml:"http_only,omitempty"`
}

func (c Cookie) expired(now time.Time) bool {
	return c.Expires != nil && !c.Expires.After(now)
}

// File is the on-disk layout of the session file.
type File struct {
	Endpoint string    `yaml:"endpoint"`
	SavedAt  time.Time `yaml:"saved_at"`
	Cookies  []Cookie  `yaml:"cookies"`
}

// Jar is an http.CookieJar that remembers every cookie the backend sets so
// they can be written back to disk. Lookups are served by a standard jar.
type Jar struct {
	mu       sync.Mutex
	jar      http.CookieJar
	endpoint string
	cookies  map[string]Cookie
}

// NewJar creates an empty jar for endpoint.
func NewJar(endpoint string) *Jar {
	return &Jar{
		jar:      faashttp.NewCookieJar(),
		endpoint: endpoint,
		cookies:  make(map[string]Cookie),
	}
}

func cookieKey(name, path string) string {
	return name + ";" + path
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar.SetCookies(u, cookies)

	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()

	for _, cookie := range cookies {
		path := cookie.Path
		if path == "" {
			path = "/"
		}

		key := cookieKey(cookie.Name, path)

		if cookie.MaxAge < 0 || (!cookie.Expires.IsZero() && !cookie.Expires.After(now)) {
			delete(j.cookies, key)
			continue
		}

		stored := Cookie{
			Name:     cookie.Name,
			Value:    cookie.Value,
			Path:     path,
			Domain:   cookie.Domain,
			Secure:   cookie.Secure,
			HTTPOnly: cookie.HttpOnly,
		}

		switch {
		case cookie.MaxAge > 0:
			expires := now.Add(time.Duration(cookie.MaxAge) * time.Second)
			stored.Expires = &expires
		case !cookie.Expires.IsZero():
			expires := cookie.Expires
			stored.Expires = &expires
		}

		j.cookies[key] = stored
	}
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

// Endpoint returns the API endpoint the session belongs to.
func (j *Jar) Endpoint() string {
	return j.endpoint
}

// Empty reports whether the jar holds no live cookie.
func (j *Jar) Empty() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()

	for _, cookie := range j.cookies {
		if !cookie.expired(now) {
			return false
		}
	}

	return true
}

func (j *Jar) snapshot() []Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	cookies := make([]Cookie, 0, len(j.cookies))

	for _, cookie := range j.cookies {
		if !cookie.expired(now) {
			cookies = append(cookies, cookie)
		}
	}

	return cookies
}

func (j *Jar) restore(cookies []Cookie) error {
	target, err := url.Parse(j.endpoint)
	if err != nil {
		return fmt.Errorf("parsing session endpoint: %w", err)
	}

	now := time.Now()
	httpCookies := make([]*http.Cookie, 0, len(cookies))

	for _, cookie := range cookies {
		if cookie.expired(now) {
			continue
		}

		httpCookie := &http.Cookie{
			Name:     cookie.Name,
			Value:    cookie.Value,
			Path:     cookie.Path,
			Domain:   cookie.Domain,
			Secure:   cookie.Secure,
			HttpOnly: cookie.HTTPOnly,
		}

		if cookie.Expires != nil {
			httpCookie.Expires = *cookie.Expires
		}

		httpCookies = append(httpCookies, httpCookie)
	}

	j.SetCookies(target, httpCookies)

	return nil
}

// Store reads and writes the session file.
type Store struct {
	mutex sync.Mutex
	path  string
}

// NewStore creates a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns $HOME/.faas/session.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.SessionFileName), nil
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns a jar for endpoint primed with the saved cookies. A missing
// file, or one saved for another endpoint, yields an empty jar.
func (s *Store) Load(endpoint string) (*Jar, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	jar := NewJar(endpoint)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return jar, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var file File

	err = yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}

	if file.Endpoint != endpoint {
		return jar, nil
	}

	err = jar.restore(file.Cookies)
	if err != nil {
		return nil, err
	}

	return jar, nil
}

// Save writes the jar's live cookies.
func (s *Store) Save(jar *Jar) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	file := File{
		Endpoint: jar.Endpoint(),
		SavedAt:  time.Now().UTC(),
		Cookies:  jar.snapshot(),
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("encoding session file: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(s.path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	err = os.WriteFile(s.path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}

	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *Store) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}

	return nil
}
