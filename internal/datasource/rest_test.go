package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestREST_SelectSendsKeyAndOrder(t *testing.T) {
	var gotPath, gotSelect, gotOrder, gotKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSelect = r.URL.Query().Get("select")
		gotOrder = r.URL.Query().Get("order")
		gotKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":2,"name":"Bangalore"},{"id":1,"name":"Goa"}]`))
	}))
	defer srv.Close()

	c, err := NewREST(srv.URL+"/", "anon-key")
	require.NoError(t, err)

	var rows []row
	err = c.Select(context.Background(), Query{Table: "regions", OrderBy: "name"}, &rows)
	require.NoError(t, err)

	assert.Equal(t, "/rest/v1/regions", gotPath)
	assert.Equal(t, "*", gotSelect)
	assert.True(t, strings.HasPrefix(gotOrder, "name.asc"), "order=%s", gotOrder)
	assert.Equal(t, "anon-key", gotKey)
	assert.Equal(t, "Bearer anon-key", gotAuth)
	assert.Equal(t, []row{{2, "Bangalore"}, {1, "Goa"}}, rows)
}

func TestREST_SelectDescending(t *testing.T) {
	var gotOrder string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrder = r.URL.Query().Get("order")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := NewREST(srv.URL, "k")
	require.NoError(t, err)

	var rows []row
	require.NoError(t, c.Select(context.Background(), Query{Table: "ads", OrderBy: "priority", Descending: true}, &rows))
	assert.True(t, strings.HasPrefix(gotOrder, "priority.desc"), "order=%s", gotOrder)
}

func TestREST_SelectWithoutOrder(t *testing.T) {
	var hasOrder bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasOrder = r.URL.Query()["order"]
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := NewREST(srv.URL, "k")
	require.NoError(t, err)

	var rows []row
	require.NoError(t, c.Select(context.Background(), Query{Table: "ads"}, &rows))
	assert.False(t, hasOrder)
	assert.Empty(t, rows)
}

func TestREST_SelectReportsBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"PGRST301","message":"JWT expired"}`))
	}))
	defer srv.Close()

	c, err := NewREST(srv.URL, "k")
	require.NoError(t, err)

	var rows []row
	err = c.Select(context.Background(), Query{Table: "ads"}, &rows)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "PGRST301")
	assert.Contains(t, err.Error(), "JWT expired")
	assert.Nil(t, rows)
}

func TestREST_SelectHonoursCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewREST(srv.URL, "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var rows []row
	err = c.Select(ctx, Query{Table: "ads"}, &rows)
	require.Error(t, err)
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestREST_RejectsBadInput(t *testing.T) {
	_, err := NewREST("ftp://example.com", "k")
	assert.Error(t, err)

	_, err = NewREST("https://example.com", "")
	assert.Error(t, err)

	c, err := NewREST("https://example.com", "k")
	require.NoError(t, err)

	var rows []row
	err = c.Select(context.Background(), Query{Table: "ads;drop"}, &rows)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	err = c.Select(context.Background(), Query{Table: "ads"}, rows)
	assert.ErrorIs(t, err, ErrInvalidDestination)
}
