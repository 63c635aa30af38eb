package miro

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sperrors "github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/httputil"
	"github.com/matzehuels/stickypack/pkg/pack"
)

// fakeMiro serves the handful of endpoints the client uses.
type fakeMiro struct {
	mu       sync.Mutex
	notes    []stickyRequest
	tags     []tagResponse
	attached map[string][]string
	items    map[string]string
	failNext int
}

func newFakeMiro(t *testing.T) (*fakeMiro, *httptest.Server) {
	t.Helper()
	f := &fakeMiro{attached: map[string][]string{}, items: map[string]string{}}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v2/boards/{board}/sticky_notes", func(w http.ResponseWriter, r *http.Request) {
		var req stickyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.notes = append(f.notes, req)
		id := "note-" + strconv.Itoa(len(f.notes))
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id":%q,"type":"sticky_note"}`, id)
	})

	mux.HandleFunc("POST /v2/boards/{board}/items/{item}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		item := r.PathValue("item")
		f.attached[item] = append(f.attached[item], r.URL.Query().Get("tag_id"))
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /v2/boards/{board}/items/{item}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failNext > 0 {
			f.failNext--
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		body, ok := f.items[r.PathValue("item")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"item not found"}`)
			return
		}
		fmt.Fprint(w, body)
	})

	mux.HandleFunc("GET /v2/boards/{board}/tags", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		end := min(offset+limit, len(f.tags))
		page := []tagResponse{}
		if offset < end {
			page = f.tags[offset:end]
		}
		json.NewEncoder(w).Encode(tagsResponse{Data: page, Total: len(f.tags), Offset: offset})
	})

	mux.HandleFunc("POST /v2/boards/{board}/tags", func(w http.ResponseWriter, r *http.Request) {
		var req tagRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		tag := tagResponse{ID: "tag-" + strconv.Itoa(len(f.tags)+1), Title: req.Title}
		f.tags = append(f.tags, tag)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(tag)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func newClient(t *testing.T, srv *httptest.Server, cfg Config) *Client {
	t.Helper()
	cfg.BaseURL = srv.URL + "/v2"
	if cfg.BoardID == "" {
		cfg.BoardID = "b1"
	}
	cfg.Token = "token"
	c, err := New(cfg, WithHTTPOptions(
		httputil.WithHTTPClient(srv.Client()),
		httputil.WithRateLimit(0, 0),
		httputil.WithRetry(httputil.Policy{Attempts: 3}),
	))
	require.NoError(t, err)
	return c
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{Token: "t"})
	assert.True(t, sperrors.Is(err, sperrors.ErrCodeInvalidConfig))

	_, err = New(Config{BoardID: "b"})
	assert.True(t, sperrors.Is(err, sperrors.ErrCodeUnauthorized))

	c, err := New(Config{BoardID: "b", Token: "t"})
	require.NoError(t, err)
	vp, _ := c.Viewport(context.Background())
	assert.Equal(t, 1000.0, vp.Width)
}

func TestCreateStickyNote(t *testing.T) {
	f, srv := newFakeMiro(t)
	c := newClient(t, srv, Config{})

	spec := pack.StickySpec{
		X: 100, Y: 50, Width: 200,
		Shape: pack.ShapeRectangle, FillColor: pack.ColorCyan,
		Content: "Pack: 1", TagIDs: []string{"tag-a", "tag-b"},
	}
	note, err := c.CreateStickyNote(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, "note-1", note.ID)
	assert.Equal(t, "Pack: 1", note.Content)

	require.Len(t, f.notes, 1)
	req := f.notes[0]
	assert.Equal(t, "Pack: 1", req.Data.Content)
	assert.Equal(t, "rectangle", req.Data.Shape)
	assert.Equal(t, "cyan", req.Style.FillColor)
	assert.Equal(t, 100.0, req.Position.X)
	require.NotNil(t, req.Geometry.Width)
	assert.Equal(t, 200.0, *req.Geometry.Width)
	assert.Equal(t, []string{"tag-a", "tag-b"}, f.attached["note-1"])
}

func TestTagsPagination(t *testing.T) {
	f, srv := newFakeMiro(t)
	for i := range 120 {
		f.tags = append(f.tags, tagResponse{ID: strconv.Itoa(i), Title: "t" + strconv.Itoa(i)})
	}
	c := newClient(t, srv, Config{})

	tags, err := c.Tags(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 120)
	assert.Equal(t, "t119", tags[119].Title)
}

func TestCreateTag(t *testing.T) {
	_, srv := newFakeMiro(t)
	c := newClient(t, srv, Config{})

	tag, err := c.CreateTag(context.Background(), "Ada")
	require.NoError(t, err)
	assert.Equal(t, pack.Tag{ID: "tag-1", Title: "Ada"}, tag)

	tags, err := c.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []pack.Tag{tag}, tags)
}

func TestSelection(t *testing.T) {
	f, srv := newFakeMiro(t)
	f.items["s1"] = `{"id":"s1","type":"sticky_note","position":{"x":10,"y":20},"geometry":{"width":300,"height":300},"data":{"shape":"square"}}`
	f.items["f1"] = `{"id":"f1","type":"frame","position":{"x":0,"y":0}}`
	f.failNext = 1
	c := newClient(t, srv, Config{Selection: []string{"s1", "gone", "f1"}})

	items, err := c.Selection(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	r, ok := items[0].Rect()
	require.True(t, ok)
	assert.Equal(t, 10.0, r.X)
	assert.Equal(t, 300.0, r.Width)
	require.NotNil(t, r.Shape)
	assert.Equal(t, pack.ShapeSquare, *r.Shape)

	_, ok = items[1].Rect()
	assert.False(t, ok, "frame without geometry has no rect")
}

func TestCreatePackThroughClient(t *testing.T) {
	f, srv := newFakeMiro(t)
	c := newClient(t, srv, Config{
		OnlineUsers: []pack.OnlineUser{{ID: "u1", Name: "Ada"}, {ID: "u2", Name: "Grace"}},
	})

	cfg := pack.DefaultConfig()
	cfg.Packs, cfg.Stickies = 2, 2
	cfg.TagStrategy = pack.TagOnlineUsersPerPack
	ref := pack.Rect{Width: 100, Height: 100}

	o := pack.NewOrchestrator(c, pack.WithTagDedup())
	res, err := o.CreatePack(context.Background(), pack.Request{Config: &cfg, Reference: &ref})
	require.NoError(t, err)
	assert.Len(t, res.Notes, 4)
	assert.Len(t, f.notes, 4)
	assert.Len(t, f.tags, 2)
}
