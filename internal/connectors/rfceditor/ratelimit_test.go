package rfceditor

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_WaitAllowsFirstRequest(t *testing.T) {
	r := NewRateLimiter(1)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.NoError(t, r.Wait(ctx))
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	r := NewRateLimiter(0.01)
	assert.NoError(t, r.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Error(t, r.Wait(ctx))
}

func TestRateLimiter_ObserveRetryAfterSeconds(t *testing.T) {
	now := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)
	r := NewRateLimiter(10)
	r.now = func() time.Time { return now }

	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	resp.Header.Set(HeaderRetryAfter, "30")
	r.Observe(resp)

	assert.Equal(t, now.Add(30*time.Second), r.PauseUntil())
}

func TestRateLimiter_ObserveCapsPause(t *testing.T) {
	now := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)
	r := NewRateLimiter(10)
	r.now = func() time.Time { return now }

	resp := &http.Response{StatusCode: http.StatusServiceUnavailable, Header: http.Header{}}
	resp.Header.Set(HeaderRetryAfter, "86400")
	r.Observe(resp)

	assert.Equal(t, now.Add(maxPause), r.PauseUntil())
}

func TestRateLimiter_ObserveIgnoresOtherResponses(t *testing.T) {
	r := NewRateLimiter(10)

	r.Observe(nil)
	r.Observe(&http.Response{StatusCode: http.StatusOK, Header: http.Header{HeaderRetryAfter: []string{"10"}}})
	r.Observe(&http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}})

	assert.True(t, r.PauseUntil().IsZero())
}

func TestRateLimiter_WaitHonoursPause(t *testing.T) {
	r := NewRateLimiter(1000)
	r.pauseUntil = time.Now().Add(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

	d, ok := parseRetryAfter("5", now)
	assert.True(t, ok)
	assert.Equal(t, 5*time.Second, d)

	d, ok = parseRetryAfter(now.Add(time.Minute).Format(http.TimeFormat), now)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, d)

	_, ok = parseRetryAfter("soon", now)
	assert.False(t, ok)

	_, ok = parseRetryAfter("-1", now)
	assert.False(t, ok)
}
