package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDebugServer_DisabledWithoutAddress(t *testing.T) {
	assert.Nil(t, newDebugServer(""))
}

func TestNewDebugServer_ServesPprof(t *testing.T) {
	srv := newDebugServer("127.0.0.1:6060")
	require.NotNil(t, srv)
	assert.Equal(t, "127.0.0.1:6060", srv.Addr)

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/goroutine?debug=1", "/debug/pprof/cmdline"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
