package feed

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// HTTPFetcher 请求 `<URL>?s=K1,K2&f=l1`，响应每行一个价格，顺序与排序后的 key 一致。
// 例如：
//
//	707.88
//	N/A
//	93.74
type HTTPFetcher struct {
	URL    string
	Field  string
	Client *http.Client
}

// NewHTTPFetcher 创建带超时的抓取器
func NewHTTPFetcher(endpoint string, timeout time.Duration) *HTTPFetcher {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &HTTPFetcher{
		URL:    endpoint,
		Field:  "l1",
		Client: &http.Client{Timeout: timeout, Transport: transport},
	}
}

func (h *HTTPFetcher) Name() string { return "HTTPFetcher" }

func (h *HTTPFetcher) Fetch(ctx context.Context, keys []string) (map[string]float64, error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	u, err := url.Parse(h.URL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	q.Set("s", strings.Join(sorted, ","))
	field := h.Field
	if field == "" {
		field = "l1"
	}
	q.Set("f", field)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	out := make(map[string]float64, len(sorted))
	sc := bufio.NewScanner(resp.Body)
	for i := 0; i < len(sorted) && sc.Scan(); i++ {
		out[sorted[i]] = parsePrice(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return out, nil
}

func parsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "N/A" {
		return math.NaN()
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return p
}
