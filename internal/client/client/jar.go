package client

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// Jar is a cookie jar that can be emptied in one step. Credentials are
// server-issued cookies, so resetting the jar is how a session is cleared.
type Jar struct {
	mu  sync.RWMutex
	jar *cookiejar.Jar
}

func NewJar() *Jar {
	return &Jar{jar: newCookieJar()}
}

func newCookieJar() *cookiejar.Jar {
	// cookiejar.New never returns an error
	j, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return j
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	j.jar.SetCookies(u, cookies)
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.jar.Cookies(u)
}

// Reset drops every stored cookie.
func (j *Jar) Reset() {
	j.mu.Lock()
	j.jar = newCookieJar()
	j.mu.Unlock()
}

// SavedCookie is the persisted form of a session cookie.
type SavedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Export returns the cookies the jar would send to u.
func (j *Jar) Export(u *url.URL) []SavedCookie {
	cookies := j.Cookies(u)
	out := make([]SavedCookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, SavedCookie{Name: c.Name, Value: c.Value})
	}
	return out
}

// Import restores previously exported cookies for u.
func (j *Jar) Import(u *url.URL, saved []SavedCookie) {
	if len(saved) == 0 {
		return
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, s := range saved {
		cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value, Path: "/"})
	}
	j.SetCookies(u, cookies)
}
