package ddns_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ddns "porkbun-ddns"
)

var testCreds = ddns.Credentials{APIKey: "pk1_key", SecretAPIKey: "sk1_secret"}

func TestPorkbunUpdateARecord(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, &gotBody))
		io.WriteString(w, `{"status":"SUCCESS"}`)
	}))
	defer srv.Close()

	p := ddns.NewPorkbun(srv.URL)
	err := p.UpdateARecord(context.Background(), "dyn.example.com", testCreds, "5.6.7.8")
	require.NoError(t, err)

	assert.Equal(t, "/dns/editByNameType/dyn.example.com/A/", gotPath)
	assert.Equal(t, "pk1_key", gotBody["apikey"])
	assert.Equal(t, "sk1_secret", gotBody["secretapikey"])
	assert.Equal(t, "5.6.7.8", gotBody["content"])
	assert.Equal(t, float64(600), gotBody["ttl"])
}

func TestPorkbunUpdateRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"status":"ERROR","message":"Edit error: We were unable to edit the DNS record."}`)
	}))
	defer srv.Close()

	p := ddns.NewPorkbun(srv.URL)
	err := p.UpdateARecord(context.Background(), "dyn.example.com", testCreds, "5.6.7.8")
	require.ErrorIs(t, err, ddns.ErrUpdateRejected)

	var rejected *ddns.UpdateRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusBadRequest, rejected.StatusCode)
}

func TestPorkbunNon200IsRejectedEvenWhenBodyLooksFine(t *testing.T) {
	// only the status code decides; the body is never read
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		io.WriteString(w, `{"status":"SUCCESS"}`)
	}))
	defer srv.Close()

	p := ddns.NewPorkbun(srv.URL)
	err := p.UpdateARecord(context.Background(), "dyn.example.com", testCreds, "5.6.7.8")
	require.ErrorIs(t, err, ddns.ErrUpdateRejected)
}

func TestPorkbunConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := ddns.NewPorkbun(srv.URL)
	err := p.UpdateARecord(context.Background(), "dyn.example.com", testCreds, "5.6.7.8")
	var nerr *ddns.NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.NotErrorIs(t, err, ddns.ErrUpdateRejected)
}
