package iowiki_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/internal/iowiki"
	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lionPage = `{"batchcomplete":true,"query":{"pages":[{"pageid":1,` +
	`"ns":0,"title":"Panthera leo","revisions":[{"slots":{"main":` +
	`{"contentmodel":"wikitext","contentformat":"text/x-wiki","content":` +
	`"== Vernacular names ==\n{{VN\n|de=Löwe\n|en=Lion\n|fr=Lion\n}}"}}}]}]}}`

const noVNPage = `{"query":{"pages":[{"pageid":2,"ns":0,"title":"Pantherinae",` +
	`"revisions":[{"slots":{"main":{"content":"== Taxonavigation =="}}}]}]}}`

const missingPage = `{"query":{"pages":[{"ns":0,"title":"Felis nemo",` +
	`"missing":true}]}}`

func newServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		assert.Equal(t, "query", q.Get("action"))
		assert.Equal(t, "revisions", q.Get("prop"))
		assert.Equal(t, "*", q.Get("rvslots"))
		assert.Equal(t, "content", q.Get("rvprop"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "2", q.Get("formatversion"))
		assert.Equal(t, "gntree-test", r.Header.Get("User-Agent"))

		switch q.Get("titles") {
		case "Panthera leo":
			w.Write([]byte(lionPage))
		case "Pantherinae":
			w.Write([]byte(noVNPage))
		case "Felis nemo":
			w.Write([]byte(missingPage))
		case "Broken":
			w.Write([]byte(`{"query":`))
		case "Forbidden":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}
	return httptest.NewServer(http.HandlerFunc(handler))
}

func newClient(url string) *iowiki.Client {
	return iowiki.New(config.VernacularConfig{
		APIURL:    url,
		Timeout:   5,
		UserAgent: "gntree-test",
	})
}

func TestFetch(t *testing.T) {
	var calls atomic.Int32
	ts := newServer(t, &calls)
	defer ts.Close()
	c := newClient(ts.URL)
	ctx := context.Background()

	tests := []struct {
		msg   string
		name  string
		res   string
		found bool
	}{
		{"found", "Panthera leo", "Lion", true},
		{"no vernacular template", "Pantherinae", "", false},
		{"missing page", "Felis nemo", "", false},
	}

	for _, v := range tests {
		res, found, err := c.Fetch(ctx, v.name)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.found, found, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchErrors(t *testing.T) {
	var calls atomic.Int32
	ts := newServer(t, &calls)
	defer ts.Close()
	c := newClient(ts.URL)
	ctx := context.Background()

	t.Run("bad json", func(t *testing.T) {
		_, _, err := c.Fetch(ctx, "Broken")
		require.Error(t, err)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr))
		assert.Equal(t, errcode.WikiResponseError, gnErr.Code)
	})

	t.Run("client error is not retried", func(t *testing.T) {
		calls.Store(0)
		_, _, err := c.Fetch(ctx, "Forbidden")
		require.Error(t, err)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr))
		assert.Equal(t, errcode.WikiRequestError, gnErr.Code)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("server error is retried", func(t *testing.T) {
		calls.Store(0)
		_, _, err := c.Fetch(ctx, "Unavailable")
		require.Error(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestFetchRecovers(t *testing.T) {
	var calls atomic.Int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(lionPage))
	}
	ts := httptest.NewServer(http.HandlerFunc(handler))
	defer ts.Close()

	c := newClient(ts.URL)
	res, found, err := c.Fetch(context.Background(), "Panthera leo")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Lion", res)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchCanceled(t *testing.T) {
	var calls atomic.Int32
	ts := newServer(t, &calls)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newClient(ts.URL)
	_, found, err := c.Fetch(ctx, "Panthera leo")
	assert.Error(t, err)
	assert.False(t, found)
}
