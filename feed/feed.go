// Package feed 定期从行情源抓取价格并重写报价文件。
// 报价文件本身就是关注列表：每次抓取的 key 集合取自文件当前内容。
package feed

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"basket-pricer-go/market"
	"basket-pricer-go/metrics"
)

// Fetcher 行情源
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, keys []string) (map[string]float64, error)
}

// Feed 报价文件的写入方
type Feed struct {
	Path    string
	Fetcher Fetcher
	Delay   time.Duration // 上一次完成到下一次开始的间隔
	Log     *zap.Logger
	Now     func() time.Time
}

// Once 读取 key -> 抓取 -> 加锁写回，返回写入的报价数量。
// 行情源没有返回的 key 以 NaN 写回，保证它留在关注列表中。
func (f *Feed) Once(ctx context.Context) (int, error) {
	keys := market.LoadQuotes(f.Path, f.log()).Keys()
	if len(keys) == 0 {
		return 0, fmt.Errorf("no quote keys in %s", f.Path)
	}
	prices, err := f.Fetcher.Fetch(ctx, keys)
	if err != nil {
		return 0, fmt.Errorf("fetch from %s: %w", f.Fetcher.Name(), err)
	}
	quotes := make([]market.Quote, 0, len(keys))
	for _, k := range keys {
		p, ok := prices[k]
		if !ok {
			p = math.NaN()
		}
		quotes = append(quotes, market.Quote{Key: k, Price: p})
	}
	if err := market.SaveQuotes(f.Path, quotes, f.Fetcher.Name(), f.now()); err != nil {
		return 0, err
	}
	return len(quotes), nil
}

// Run 立即执行一次，之后每隔 Delay 执行一次，直到 ctx 取消。
// 单次失败只记录日志，下一个周期继续。
func (f *Feed) Run(ctx context.Context) error {
	delay := f.Delay
	if delay <= 0 {
		delay = time.Minute
	}
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			start := f.now()
			n, err := f.Once(ctx)
			if err != nil {
				metrics.FeedFetchErrors.Inc()
				f.log().Error("feed update failed", zap.String("path", f.Path), zap.Error(err))
			} else {
				f.log().Info("feed updated",
					zap.String("path", f.Path),
					zap.String("source", f.Fetcher.Name()),
					zap.Int("quotes", n),
					zap.Duration("took", f.now().Sub(start)),
				)
			}
			timer.Reset(delay)
		}
	}
}

func (f *Feed) log() *zap.Logger {
	if f.Log == nil {
		return zap.NewNop()
	}
	return f.Log
}

func (f *Feed) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}
