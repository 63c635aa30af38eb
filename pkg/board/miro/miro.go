// Package miro implements pack.Host on top of the Miro REST API (v2).
//
// The REST API has no notion of the viewer's viewport, current selection
// or online collaborators. Those are supplied through [Config] instead:
// selection is a list of item ids fetched on demand, viewport and roster are
// static. Select and ZoomTo are client-side operations with no REST
// equivalent and are logged only.
package miro

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"

	sperrors "github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/httputil"
	"github.com/matzehuels/stickypack/pkg/pack"
)

// DefaultBaseURL is the Miro REST API root.
const DefaultBaseURL = "https://api.miro.com/v2"

// tagPageSize is the largest page the tags endpoint accepts.
const tagPageSize = 50

// Config describes the board to drive.
type Config struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
	BoardID string `toml:"board_id"`

	// Selection lists the ids of the items treated as selected.
	Selection []string `toml:"selection"`

	Viewport    pack.Rect         `toml:"viewport"`
	OnlineUsers []pack.OnlineUser `toml:"online_users"`

	// RateLimit caps requests per second; zero means 10.
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// Client is a pack.Host backed by one Miro board.
type Client struct {
	api    *httputil.Client
	cfg    Config
	logger *log.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	logger *log.Logger
	http   []httputil.ClientOption
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithHTTPOptions passes options to the underlying REST client.
func WithHTTPOptions(opts ...httputil.ClientOption) Option {
	return func(o *clientOptions) { o.http = append(o.http, opts...) }
}

// New returns a Client for cfg.BoardID.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BoardID == "" {
		return nil, sperrors.New(sperrors.ErrCodeInvalidConfig, "miro board id is required")
	}
	if cfg.Token == "" {
		return nil, sperrors.New(sperrors.ErrCodeUnauthorized, "miro access token is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 10
	}
	if cfg.Burst == 0 {
		cfg.Burst = 5
	}
	if cfg.Viewport.Width == 0 || cfg.Viewport.Height == 0 {
		cfg.Viewport = pack.Rect{Width: 1000, Height: 1000}
	}

	o := clientOptions{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	httpOpts := append([]httputil.ClientOption{
		httputil.WithBearer(cfg.Token),
		httputil.WithRateLimit(cfg.RateLimit, cfg.Burst),
	}, o.http...)

	api, err := httputil.NewClient(cfg.BaseURL, httpOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{api: api, cfg: cfg, logger: o.logger.WithPrefix("miro")}, nil
}

func (c *Client) boardPath(format string, args ...any) string {
	return "boards/" + url.PathEscape(c.cfg.BoardID) + "/" + fmt.Sprintf(format, args...)
}

// Selection fetches every configured item. Items that no longer exist are
// skipped.
func (c *Client) Selection(ctx context.Context) ([]pack.Item, error) {
	items := make([]pack.Item, 0, len(c.cfg.Selection))
	for _, id := range c.cfg.Selection {
		var it itemResponse
		err := c.api.Get(ctx, c.boardPath("items/%s", url.PathEscape(id)), &it)
		if sperrors.Is(err, sperrors.ErrCodeNotFound) {
			c.logger.Debug("selected item not found", "id", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, it.toItem())
	}
	return items, nil
}

func (c *Client) OnlineUsers(context.Context) ([]pack.OnlineUser, error) {
	return append([]pack.OnlineUser(nil), c.cfg.OnlineUsers...), nil
}

func (c *Client) Viewport(context.Context) (pack.Rect, error) {
	return c.cfg.Viewport, nil
}

// CreateStickyNote creates the note and then attaches each tag with a
// separate request.
func (c *Client) CreateStickyNote(ctx context.Context, spec pack.StickySpec) (pack.StickyNote, error) {
	var created itemResponse
	if err := c.api.Post(ctx, c.boardPath("sticky_notes"), newStickyRequest(spec), &created); err != nil {
		return pack.StickyNote{}, err
	}
	for _, tagID := range spec.TagIDs {
		path := c.boardPath("items/%s", url.PathEscape(created.ID)) + "?tag_id=" + url.QueryEscape(tagID)
		if err := c.api.Post(ctx, path, nil, nil); err != nil {
			return pack.StickyNote{}, fmt.Errorf("attach tag %s to %s: %w", tagID, created.ID, err)
		}
	}
	return pack.StickyNote{ID: created.ID, StickySpec: spec}, nil
}

func (c *Client) Select(_ context.Context, ids []string) error {
	c.logger.Debug("select is not available over REST", "items", len(ids))
	return nil
}

func (c *Client) ZoomTo(_ context.Context, notes []pack.StickyNote) error {
	c.logger.Debug("zoom is not available over REST", "items", len(notes))
	return nil
}

// Tags lists every tag on the board, following pagination.
func (c *Client) Tags(ctx context.Context) ([]pack.Tag, error) {
	var tags []pack.Tag
	for offset := 0; ; {
		var page tagsResponse
		path := c.boardPath("tags") + "?limit=" + strconv.Itoa(tagPageSize) + "&offset=" + strconv.Itoa(offset)
		if err := c.api.Get(ctx, path, &page); err != nil {
			return nil, err
		}
		for _, t := range page.Data {
			tags = append(tags, pack.Tag{ID: t.ID, Title: t.Title})
		}
		offset += len(page.Data)
		if len(page.Data) == 0 || offset >= page.Total {
			return tags, nil
		}
	}
}

func (c *Client) CreateTag(ctx context.Context, title string) (pack.Tag, error) {
	var t tagResponse
	if err := c.api.Post(ctx, c.boardPath("tags"), tagRequest{Title: title}, &t); err != nil {
		return pack.Tag{}, err
	}
	return pack.Tag{ID: t.ID, Title: t.Title}, nil
}

var _ pack.Host = (*Client)(nil)
