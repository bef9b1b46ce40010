package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-foundation/framework/http"
)

func TestCookieJar_QueueSetsExpiry(t *testing.T) {
	jar := gohttp.NewCookieJar()
	jar.Queue("theme", "dark", 120)

	c := jar.Queued("theme")
	require.NotNil(t, c)
	assert.Equal(t, "dark", c.Value)
	assert.Equal(t, 120*60, c.MaxAge)
	assert.WithinDuration(t, time.Now().Add(120*time.Minute), c.Expires, time.Minute)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
}

func TestCookieJar_SessionCookieHasNoExpiry(t *testing.T) {
	jar := gohttp.NewCookieJar()
	jar.Queue("flash", "saved", 0)

	c := jar.Queued("flash")
	require.NotNil(t, c)
	assert.Zero(t, c.MaxAge)
	assert.True(t, c.Expires.IsZero())
}

func TestCookieJar_RequeueReplaces(t *testing.T) {
	jar := gohttp.NewCookieJar()
	jar.Queue("theme", "dark", 60)
	jar.Queue("theme", "light", 60)

	assert.Equal(t, "light", jar.Queued("theme").Value)
}

func TestCookieJar_ForeverLastsYears(t *testing.T) {
	jar := gohttp.NewCookieJar()
	jar.Forever("remember", "tok")

	c := jar.Queued("remember")
	require.NotNil(t, c)
	assert.Greater(t, c.Expires.Year(), time.Now().Year()+3)
}

func TestCookieJar_ExpireQueuesDeletion(t *testing.T) {
	jar := gohttp.NewCookieJar()
	jar.Expire("theme")

	c := jar.Queued("theme")
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.Expires.Before(time.Now()))
}

func TestCookieJar_UnqueueDropsWithoutSending(t *testing.T) {
	jar := gohttp.NewCookieJar()
	jar.Queue("theme", "dark", 60)
	jar.Unqueue("theme")

	assert.False(t, jar.HasQueued("theme"))
}

func TestCookieJar_AttachWritesAndEmpties(t *testing.T) {
	jar := gohttp.NewCookieJar()
	jar.Queue("a", "1", 60)
	jar.Queue("b", "2", 60)

	rec := httptest.NewRecorder()
	jar.Attach(rec)

	assert.Len(t, rec.Result().Cookies(), 2)
	assert.False(t, jar.HasQueued("a"))
	assert.False(t, jar.HasQueued("b"))
}

func TestCookieJar_WithDefaultsAppliedToQueued(t *testing.T) {
	jar := gohttp.NewCookieJar().WithDefaults("/app", "example.com", true)
	jar.Queue("theme", "dark", 60)

	c := jar.Queued("theme")
	require.NotNil(t, c)
	assert.Equal(t, "/app", c.Path)
	assert.Equal(t, "example.com", c.Domain)
	assert.True(t, c.Secure)
}

func TestCookieJar_QueueCookiePassthrough(t *testing.T) {
	jar := gohttp.NewCookieJar()
	jar.QueueCookie(&http.Cookie{Name: "raw", Value: "v", SameSite: http.SameSiteStrictMode})

	c := jar.Queued("raw")
	require.NotNil(t, c)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}
