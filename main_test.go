package main //nolint:testpackage

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dommiloo/dlist/metrics"
)

func TestBuildServerAddr(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		addr, err := buildServerAddr("2242")
		require.NoError(t, err)
		assert.Equal(t, "localhost:2242", addr)
	})

	t.Run("not a number", func(t *testing.T) {
		t.Parallel()

		_, err := buildServerAddr("zero")
		require.Error(t, err)
	})

	t.Run("below range", func(t *testing.T) {
		t.Parallel()

		_, err := buildServerAddr("80")
		require.ErrorIs(t, err, errUnsupportedPortRange)
	})

	t.Run("above range", func(t *testing.T) {
		t.Parallel()

		_, err := buildServerAddr("70000")
		require.ErrorIs(t, err, errUnsupportedPortRange)
	})
}

func TestParseValues(t *testing.T) {
	t.Parallel()

	values, err := parseValues([]string{"1", "-2", "30"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, -2, 30}, values)

	_, err = parseValues([]string{"1", "x"})
	require.Error(t, err)
}

func TestServerEndpoints(t *testing.T) { //nolint:paralleltest
	reg := prometheus.NewRegistry()
	metrics.Init(reg)

	srv := newServer(reg)
	ts := httptest.NewServer(srv.Handler())

	defer ts.Close()

	post := func(t *testing.T, path, body string) *http.Response {
		t.Helper()

		res, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)

		return res
	}

	get := func(t *testing.T, path string) *http.Response {
		t.Helper()

		res, err := http.Get(ts.URL + path)
		require.NoError(t, err)

		return res
	}

	t.Run("pop on empty list reports underflow", func(t *testing.T) {
		res := post(t, "/pop-front", "")
		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)

		var pop popResponse
		require.NoError(t, json.NewDecoder(res.Body).Decode(&pop))

		assert.False(t, pop.Ok)
		assert.Contains(t, pop.Err, "pop_front")
		assert.Nil(t, pop.Value)
		assert.Equal(t, 0, pop.Size)
	})

	t.Run("push at both ends", func(t *testing.T) {
		for _, body := range []string{`{"value":1}`, `{"value":2}`} {
			res := post(t, "/push-back", body)
			res.Body.Close()
			require.Equal(t, http.StatusOK, res.StatusCode)
		}

		res := post(t, "/push-front", `{"value":0}`)
		defer res.Body.Close()

		var push pushResponse
		require.NoError(t, json.NewDecoder(res.Body).Decode(&push))

		assert.True(t, push.Ok)
		assert.Equal(t, 3, push.Size)
	})

	t.Run("status reflects the list", func(t *testing.T) {
		res := get(t, "/status")
		defer res.Body.Close()

		var status statusResponse
		require.NoError(t, json.NewDecoder(res.Body).Decode(&status))

		assert.True(t, status.Ok)
		assert.Equal(t, 3, status.Size)
		assert.False(t, status.Empty)

		require.NotNil(t, status.Front)
		require.NotNil(t, status.Back)
		assert.Equal(t, 0, *status.Front)
		assert.Equal(t, 2, *status.Back)
	})

	t.Run("print both directions", func(t *testing.T) {
		res := get(t, "/print")
		body, err := io.ReadAll(res.Body)
		res.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, "[head] 0 1 2 [null]\n", string(body))

		res = get(t, "/print?reverse=1")
		body, err = io.ReadAll(res.Body)
		res.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, "[tail] 2 1 0 [null]\n", string(body))
	})

	t.Run("pop from both ends", func(t *testing.T) {
		res := post(t, "/pop-front", "")

		var pop popResponse
		err := json.NewDecoder(res.Body).Decode(&pop)
		res.Body.Close()
		require.NoError(t, err)

		assert.True(t, pop.Ok)
		require.NotNil(t, pop.Value)
		assert.Equal(t, 0, *pop.Value)
		assert.Equal(t, 2, pop.Size)

		res = post(t, "/pop-back", "")
		defer res.Body.Close()

		require.NoError(t, json.NewDecoder(res.Body).Decode(&pop))

		assert.True(t, pop.Ok)
		require.NotNil(t, pop.Value)
		assert.Equal(t, 2, *pop.Value)
		assert.Equal(t, 1, pop.Size)
	})

	t.Run("method not allowed", func(t *testing.T) {
		res := get(t, "/push-back")
		res.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

		res = post(t, "/status", "")
		res.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		res := get(t, "/metrics")
		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)

		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "dlist_push_back_total")
		assert.Contains(t, string(body), "dlist_underflow_total")
	})
}

func TestDemo(t *testing.T) { //nolint:paralleltest
	require.NoError(t, runDemo(t.Context()))
}
