// Package metrics provides Prometheus metrics for the basket pricer
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 数据源标签
const (
	SourceBasket = "basket"
	SourceQuotes = "quotes"
)

// 监听事件分类标签
const (
	EventRelevant = "relevant"
	EventIgnored  = "ignored"
	EventOverflow = "overflow"
)

var (
	ValuationTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "basket_valuation_total",
		Help: "最近一次估值的组合总值（含 NaN 时为 NaN）",
	})
	Holdings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "basket_holdings",
		Help: "最近一次估值的持仓数量",
	})
	HoldingsNaN = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "basket_holdings_nan",
		Help: "最近一次估值中结果为 NaN 的持仓数量",
	})
	Quotes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "basket_quotes",
		Help: "最近一次读取的报价数量",
	})
	ValuationRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "basket_valuation_runs_total",
		Help: "估值执行次数",
	})
	ValuationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "basket_valuation_duration_seconds",
		Help:    "单次估值（含读文件）耗时",
		Buckets: prometheus.DefBuckets,
	})
	RevaluationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "basket_revaluation_errors_total",
		Help: "监听模式下重估失败次数",
	})
	ParseErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_parse_errors_total",
		Help: "无法解析的输入行数量",
	}, []string{"source"})
	SourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_source_errors_total",
		Help: "输入文件不可用（打开/加锁/读取失败）次数",
	}, []string{"source"})
	WatchEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_watch_events_total",
		Help: "文件监听事件数量",
	}, []string{"result"})
	FeedFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "basket_feed_fetch_errors_total",
		Help: "行情抓取或写入失败次数",
	})
)

// UpdateValuationMetrics 更新估值相关 gauge
func UpdateValuationMetrics(total float64, holdings, nan, quotes int) {
	ValuationTotal.Set(total)
	Holdings.Set(float64(holdings))
	HoldingsNaN.Set(float64(nan))
	Quotes.Set(float64(quotes))
	ValuationRuns.Inc()
}

// StartMetricsServer 启动Prometheus指标服务器，addr 为空时不启动。
// onErr 在监听失败时回调。
func StartMetricsServer(addr string, onErr func(error)) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && onErr != nil {
			onErr(err)
		}
	}()
	return srv
}
