//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrent_PageRequests verifies that concurrent page requests are all
// served correctly and that the random draw covers the whole catalog.
func TestConcurrent_PageRequests(t *testing.T) {
	contents := integrationQuotes()
	stack := newServiceStack(t, contents)

	server := httptest.NewServer(stack.engine)
	defer server.Close()

	const (
		numGoroutines      = 50
		requestsPerRoutine = 4
	)

	var wg sync.WaitGroup

	var failures int32

	quoteHits := make([]int32, len(contents))
	client := &http.Client{Timeout: 10 * time.Second}

	for range numGoroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range requestsPerRoutine {
				resp, err := client.Get(server.URL + "/")
				if err != nil {
					atomic.AddInt32(&failures, 1)
					continue
				}

				body, err := io.ReadAll(resp.Body)
				resp.Body.Close()

				if err != nil || resp.StatusCode != http.StatusOK {
					atomic.AddInt32(&failures, 1)
					continue
				}

				matched := false
				for i, content := range contents {
					if strings.Contains(string(body), template.HTMLEscapeString(content)) {
						atomic.AddInt32(&quoteHits[i], 1)
						matched = true
						break
					}
				}

				if !matched {
					atomic.AddInt32(&failures, 1)
				}
			}
		}()
	}

	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&failures), "every concurrent page request should succeed")

	// 200 draws over 5 quotes; each quote should have been served at least once.
	for i := range quoteHits {
		assert.Positive(t, atomic.LoadInt32(&quoteHits[i]), "quote %d never served", i+1)
	}
}

// TestConcurrent_MixedRoutes verifies that the page, API and probe routes can
// be hit simultaneously without interference.
func TestConcurrent_MixedRoutes(t *testing.T) {
	stack := newServiceStack(t, integrationQuotes())

	server := httptest.NewServer(stack.engine)
	defer server.Close()

	paths := []string{"/", "/api/v1/quotes/random", "/api/v1/quotes", "/-/live"}

	var wg sync.WaitGroup

	var failures int32

	const iterations = 10

	client := &http.Client{Timeout: 10 * time.Second}

	for range iterations {
		for _, path := range paths {
			wg.Add(1)

			go func(path string) {
				defer wg.Done()

				resp, err := client.Get(server.URL + path)
				if err != nil {
					atomic.AddInt32(&failures, 1)
					return
				}
				defer resp.Body.Close()

				if resp.StatusCode != http.StatusOK {
					atomic.AddInt32(&failures, 1)
				}
			}(path)
		}
	}

	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&failures), "no route should fail under mixed load")
}

// TestConcurrent_SharedService verifies that a single service instance is safe
// for concurrent use without going through HTTP.
func TestConcurrent_SharedService(t *testing.T) {
	stack := newServiceStack(t, integrationQuotes())

	const (
		numGoroutines     = 20
		callsPerGoroutine = 50
	)

	var wg sync.WaitGroup

	results := make(chan error, numGoroutines*callsPerGoroutine)

	for range numGoroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ctx := context.Background()

			for i := range callsPerGoroutine {
				if i%2 == 0 {
					quote, err := stack.service.RandomQuote(ctx)
					if err == nil && quote.Content == "" {
						err = errors.New("empty quote content")
					}
					results <- err

					continue
				}

				quotes, err := stack.service.ListQuotes(ctx)
				if err == nil && len(quotes) != 5 {
					err = errors.New("unexpected catalog size")
				}
				results <- err
			}
		}()
	}

	wg.Wait()
	close(results)

	for err := range results {
		assert.NoError(t, err, "no errors expected when sharing the service across goroutines")
	}
}

// TestConcurrent_ClientCancellation verifies that a disconnecting client
// cancels the request context seen by handlers.
func TestConcurrent_ClientCancellation(t *testing.T) {
	stack := newServiceStack(t, integrationQuotes())

	var startedRequests, completedRequests int32

	// Probe route on the same engine so the full middleware chain applies.
	stack.engine.GET("/it/slow", func(c *gin.Context) {
		atomic.AddInt32(&startedRequests, 1)
		select {
		case <-c.Request.Context().Done():
			// Client went away.
		case <-time.After(5 * time.Second):
			atomic.AddInt32(&completedRequests, 1)
			c.Status(http.StatusOK)
		}
	})

	server := httptest.NewServer(stack.engine)
	defer server.Close()

	const numGoroutines = 10

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	var cancelledCount int32

	client := &http.Client{}

	for range numGoroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/it/slow", nil)
			if err != nil {
				return
			}

			resp, err := client.Do(req)
			if err != nil {
				atomic.AddInt32(&cancelledCount, 1)
				return
			}
			resp.Body.Close()
		}()
	}

	// Let the requests reach the handler, then cancel them all.
	time.Sleep(100 * time.Millisecond)
	cancel()

	wg.Wait()

	assert.Equal(t, int32(numGoroutines), atomic.LoadInt32(&cancelledCount), "all requests should be cancelled")
	assert.Zero(t, atomic.LoadInt32(&completedRequests), "no request should run to completion")
}

// TestConcurrent_RandomDistributionViaAPI draws quotes through the API under
// concurrency and verifies the draws cover the catalog.
func TestConcurrent_RandomDistributionViaAPI(t *testing.T) {
	contents := integrationQuotes()
	stack := newServiceStack(t, contents)

	server := httptest.NewServer(stack.engine)
	defer server.Close()

	const numDraws = 300

	var wg sync.WaitGroup

	ids := make(chan string, numDraws)
	client := &http.Client{Timeout: 10 * time.Second}

	for range numDraws {
		wg.Add(1)

		go func() {
			defer wg.Done()

			resp, err := client.Get(server.URL + "/api/v1/quotes/random")
			if err != nil {
				ids <- ""
				return
			}
			defer resp.Body.Close()

			var quote struct {
				ID string `json:"id"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
				ids <- ""
				return
			}

			ids <- quote.ID
		}()
	}

	wg.Wait()
	close(ids)

	counts := make(map[string]int)
	for id := range ids {
		require.NotEmpty(t, id, "every draw should return a quote")
		counts[id]++
	}

	assert.Len(t, counts, len(contents), "every catalog quote should be drawn at least once")

	for id, count := range counts {
		assert.Positive(t, count, "quote %s never drawn", id)
	}
}
