package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Parâmetros fixos usados em toda consulta de odds
const (
	Region      = "us"
	MarketH2H   = "h2h"
	OddsFormat  = "decimal"
	DateFormat  = "iso"
	sportsPath  = "/v4/sports"
	oddsPath    = "/v4/sports/{sport}/odds"
	usageWindow = 2 * time.Second
)

type Options struct {
	BaseURL string // ex: https://api.the-odds-api.com
	APIKey  string
	Timeout time.Duration
}

// Client encapsula o acesso HTTP ao provedor de odds.
// A API key fica só no servidor; o corpo das respostas é devolvido sem alteração.
type Client struct {
	http   *resty.Client
	apiKey string
	log    *zap.Logger

	Usage UsageRecorder // opcional
}

func New(opts Options, log *zap.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: hc, apiKey: opts.APIKey, log: log}
}

// Odds busca as odds h2h (decimal, datas ISO) de um sport
func (c *Client) Odds(ctx context.Context, sport string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	req := c.http.R().
		SetContext(ctx).
		SetPathParam("sport", sport).
		SetQueryParams(map[string]string{
			"apiKey":     c.apiKey,
			"regions":    Region,
			"markets":    MarketH2H,
			"oddsFormat": OddsFormat,
			"dateFormat": DateFormat,
		})
	return c.do(req, oddsPath)
}

// Sports lista os sports disponíveis no provedor
func (c *Client) Sports(ctx context.Context) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("apiKey", c.apiKey)
	return c.do(req, sportsPath)
}

// SportKeys devolve só as chaves (ex: "basketball_nba") dos sports listados
func (c *Client) SportKeys(ctx context.Context) ([]string, error) {
	body, err := c.Sports(ctx)
	if err != nil {
		return nil, err
	}
	var sports []struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(body, &sports); err != nil {
		return nil, fmt.Errorf("decode sports: %w", ErrMalformedResponse)
	}
	keys := make([]string, 0, len(sports))
	for _, s := range sports {
		if s.Key != "" {
			keys = append(keys, s.Key)
		}
	}
	return keys, nil
}

func (c *Client) do(req *resty.Request, path string) ([]byte, error) {
	res, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("odds api request %s: %w", path, err)
	}

	c.recordUsage(req.Context(), path, res)

	body := res.Body()
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return nil, newAPIError(res.StatusCode(), body)
	}
	if !json.Valid(body) {
		return nil, ErrMalformedResponse
	}
	return body, nil
}

func (c *Client) recordUsage(ctx context.Context, path string, res *resty.Response) {
	if c.Usage == nil {
		return
	}
	u, ok := parseUsage(res.Header())
	if !ok {
		return
	}
	u.Endpoint = path
	u.ObservedAt = time.Now().UTC()

	// não deixa o cancelamento do request derrubar o registro de cota
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), usageWindow)
	defer cancel()
	if err := c.Usage.RecordUsage(rctx, u); err != nil {
		c.log.Warn("record odds api usage failed", zap.Error(err))
	}
}
