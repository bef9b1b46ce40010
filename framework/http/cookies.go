package http

import (
	"net/http"
	"sync"
	"time"
)

// foreverMinutes is five years, Laravel's definition of "forever".
const foreverMinutes = 60 * 24 * 365 * 5

// CookieJar queues cookies for attachment to an outgoing response —
// mirrors Laravel's Cookie facade queue. Queued cookies persist in the
// jar until Attach writes them to a response.
type CookieJar struct {
	mu     sync.Mutex
	queued map[string]*http.Cookie

	// defaults applied by Queue
	path   string
	domain string
	secure bool
}

// NewCookieJar creates an empty jar with path defaulting to "/".
func NewCookieJar() *CookieJar {
	return &CookieJar{
		queued: make(map[string]*http.Cookie),
		path:   "/",
	}
}

// WithDefaults sets the path/domain/secure attributes applied to cookies
// queued by name.
//
//	// Laravel: Cookie::setDefaultPathAndDomain($path, $domain, $secure)
func (j *CookieJar) WithDefaults(path, domain string, secure bool) *CookieJar {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.path, j.domain, j.secure = path, domain, secure
	return j
}

// Queue queues a cookie that expires after the given number of minutes.
// minutes <= 0 queues a session cookie.
//
//	// Laravel: Cookie::queue('theme', 'dark', 120)
func (j *CookieJar) Queue(name, value string, minutes int) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     j.path,
		Domain:   j.domain,
		Secure:   j.secure,
		HttpOnly: true,
	}
	if minutes > 0 {
		c.Expires = time.Now().Add(time.Duration(minutes) * time.Minute)
		c.MaxAge = minutes * 60
	}
	j.QueueCookie(c)
}

// QueueCookie queues a fully specified cookie. Re-queueing a name
// replaces the prior cookie.
func (j *CookieJar) QueueCookie(c *http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.queued[c.Name] = c
}

// Forever queues a cookie lasting five years.
//
//	// Laravel: Cookie::forever('remember', $token)
func (j *CookieJar) Forever(name, value string) {
	j.Queue(name, value, foreverMinutes)
}

// Expire queues an already-expired cookie, instructing the browser to
// delete it.
//
//	// Laravel: Cookie::expire('theme')
func (j *CookieJar) Expire(name string) {
	j.QueueCookie(&http.Cookie{
		Name:    name,
		Value:   "",
		Path:    j.path,
		Domain:  j.domain,
		MaxAge:  -1,
		Expires: time.Unix(1, 0),
	})
}

// Queued returns the queued cookie for name, or nil.
func (j *CookieJar) Queued(name string) *http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.queued[name]
}

// HasQueued returns true if a cookie is queued under name.
func (j *CookieJar) HasQueued(name string) bool {
	return j.Queued(name) != nil
}

// Unqueue removes a queued cookie without sending it.
func (j *CookieJar) Unqueue(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.queued, name)
}

// Attach writes every queued cookie to w and empties the jar.
func (j *CookieJar) Attach(w http.ResponseWriter) {
	j.mu.Lock()
	queued := j.queued
	j.queued = make(map[string]*http.Cookie)
	j.mu.Unlock()

	for _, c := range queued {
		http.SetCookie(w, c)
	}
}
