// Package gameapi is the HTTP client for the Corporate Warfare game API.
// Responses are cached per operation family; a not-found answer is
// reported as (nil, nil) and never cached.
package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/corporatewarfare/cwbot/internal/infrastructure/cache"
	"github.com/corporatewarfare/cwbot/internal/shared/config"
	apperrors "github.com/corporatewarfare/cwbot/internal/shared/errors"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

const (
	defaultTimeout = 10 * time.Second
	// Maximum response body size (4MB); a sync batch answer can be large.
	maxResponseSize = 4 << 20
	userAgent       = "cwbot"
)

type Client struct {
	baseURL    string
	siteURL    string
	httpClient *http.Client
	store      cache.Store
	limiter    *rate.Limiter
	ttl        config.CacheTTLConfig
	group      singleflight.Group
	logger     logger.Interface
}

func NewClient(cfg config.APIConfig, store cache.Store, logger logger.Interface) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if store == nil {
		store = cache.NewMemoryStore(cfg.CacheCapacity)
	}

	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		siteURL:    strings.TrimRight(cfg.SiteURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		limiter:    rate.NewLimiter(limit, burst),
		ttl:        cfg.TTL,
		logger:     logger,
	}
}

func (c *Client) FetchProfile(ctx context.Context, profileID int64) (*Profile, error) {
	path := "/profile/" + strconv.FormatInt(profileID, 10)
	return getCached[Profile](ctx, c, "profile:"+strconv.FormatInt(profileID, 10), path, c.ttl.Profile)
}

func (c *Client) FetchCorporation(ctx context.Context, corporationID int64) (*Corporation, error) {
	path := "/corporation/" + strconv.FormatInt(corporationID, 10)
	return getCached[Corporation](ctx, c, "corporation:"+strconv.FormatInt(corporationID, 10), path, c.ttl.Corporation)
}

func (c *Client) FetchLeaderboard(ctx context.Context, page int, sort LeaderboardSort, pageSize int) (*Leaderboard, error) {
	if page < 1 {
		page = 1
	}
	if !sort.IsValid() {
		sort = SortNetWorth
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(pageSize))
	q.Set("sort", string(sort))

	key := fmt.Sprintf("leaderboard:%s:%d:%d", sort, page, pageSize)
	return getCached[Leaderboard](ctx, c, key, "/leaderboard?"+q.Encode(), c.ttl.Leaderboard)
}

func (c *Client) FetchGameTime(ctx context.Context) (*GameTime, error) {
	return getCached[GameTime](ctx, c, "time", "/time", c.ttl.GameTime)
}

func (c *Client) FetchState(ctx context.Context, code string) (*State, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	return getCached[State](ctx, c, "state:"+code, "/states/"+url.PathEscape(code), c.ttl.Market)
}

func (c *Client) FetchCommodities(ctx context.Context) ([]Commodity, error) {
	list, err := getCached[[]Commodity](ctx, c, "market:commodities", "/market/commodities", c.ttl.Market)
	if err != nil || list == nil {
		return nil, err
	}
	return *list, nil
}

// SyncUsers sends one batch of guild members for account matching. It is
// never cached.
func (c *Client) SyncUsers(ctx context.Context, guildID string, batch []SyncMember) (*SyncResult, error) {
	body, err := json.Marshal(struct {
		GuildID string       `json:"guild_id"`
		Users   []SyncMember `json:"users"`
	}{GuildID: guildID, Users: batch})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sync batch: %w", err)
	}

	data, found, err := c.do(ctx, http.MethodPost, "/discord/sync", body)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewUpstreamError("The game API does not support member sync.")
	}

	var result SyncResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, apperrors.NewUpstreamError("Unexpected response from the game API.", err.Error())
	}
	return &result, nil
}

// ProfileURL links to the public profile page for slug.
func (c *Client) ProfileURL(slug string) string {
	return c.siteURL + "/profile/" + url.PathEscape(slug)
}

func (c *Client) CorporationURL(id int64) string {
	return c.siteURL + "/corporation/" + strconv.FormatInt(id, 10)
}

// getCached serves key from the store or fetches path, collapsing concurrent
// misses for one key into a single request. Each caller decodes its own copy.
func getCached[T any](ctx context.Context, c *Client, key, path string, ttl time.Duration) (*T, error) {
	if data, ok := c.cached(ctx, key); ok {
		return decode[T](data)
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if data, ok := c.cached(ctx, key); ok {
			return data, nil
		}

		data, found, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil || !found {
			return nil, err
		}

		if err := c.store.Set(ctx, key, data, ttl); err != nil {
			c.logger.Warnw("failed to cache game api response", "key", key, "error", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	data, _ := v.([]byte)
	if data == nil {
		return nil, nil
	}
	return decode[T](data)
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warnw("failed to read game api cache", "key", key, "error", err)
		return nil, false
	}
	return data, ok
}

func decode[T any](data []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, apperrors.NewUpstreamError("Unexpected response from the game API.", err.Error())
	}
	return &v, nil
}

// do performs one request. found is false on a 404.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (data []byte, found bool, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, fmt.Errorf("game api rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("game api request failed", "method", method, "path", path, "error", err)
		return nil, false, apperrors.NewUpstreamError("The game API is unavailable.", err.Error())
	}
	defer resp.Body.Close()

	c.logger.Debugw("game api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, apperrors.NewUpstreamError("The game API returned an error.",
			fmt.Sprintf("%s %s: status %d", method, path, resp.StatusCode))
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, false, apperrors.NewUpstreamError("The game API is unavailable.", err.Error())
	}
	return data, true, nil
}
