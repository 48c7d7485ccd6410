package ddns_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ddns "porkbun-ddns"
)

func TestHealthchecksPing(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(b)
		io.WriteString(w, "OK")
	}))
	defer srv.Close()

	p := ddns.NewHealthchecks(srv.URL)
	err := p.Ping(context.Background(), "some-uuid", "no change")
	require.NoError(t, err)
	assert.Equal(t, "/some-uuid", gotPath)
	assert.Equal(t, "no change", gotBody)
}

func TestHealthchecksPingIgnoresResponseStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := ddns.NewHealthchecks(srv.URL)
	assert.NoError(t, p.Ping(context.Background(), "gone-uuid", "updated"))
}

func TestHealthchecksConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := ddns.NewHealthchecks(srv.URL)
	err := p.Ping(context.Background(), "some-uuid", "no change")
	var nerr *ddns.NetworkError
	require.ErrorAs(t, err, &nerr)
}
