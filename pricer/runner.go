// Package pricer 串联一次完整的重估：读组合 -> 读报价 -> 估值 -> 输出报表 -> 更新指标。
package pricer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"basket-pricer-go/basket"
	"basket-pricer-go/infrastructure/logger"
	"basket-pricer-go/market"
	"basket-pricer-go/measure"
	"basket-pricer-go/metrics"
	"basket-pricer-go/report"
	"basket-pricer-go/valuation"
	"basket-pricer-go/watch"
)

// Runner 绑定一对组合/报价文件的重估流程。
type Runner struct {
	BasketPath string
	QuotePath  string
	Engine     *valuation.Engine
	Measure    measure.Measure
	Out        io.Writer // 报表输出，nil 时不输出
	Report     report.Options
	Log        *logger.Logger
	Now        func() time.Time
}

// Revaluate 执行一次重估。文件读取问题已在存储层降级为空集合并记录，
// 这里只有报表写出失败才返回错误。
func (r *Runner) Revaluate(ctx context.Context) (valuation.Result, error) {
	if r.Engine == nil || r.Measure == nil {
		return nil, errors.New("runner not initialized")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := r.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithFields(map[string]interface{}{
		"basket": r.BasketPath,
		"quotes": r.QuotePath,
	})

	start := time.Now()
	b := basket.Load(r.BasketPath, log.Logger)
	q := market.LoadQuotes(r.QuotePath, log.Logger)
	res := r.Engine.Valuate(b, q, r.Measure)
	took := time.Since(start)

	st := res.Stats()
	metrics.UpdateValuationMetrics(st.Total, st.Count, st.NaN, q.Len())
	metrics.ValuationDuration.Observe(took.Seconds())
	log.LogValuation(st.Count, st.NaN, st.Total, took)

	if r.Out == nil {
		return res, nil
	}
	wd, _ := os.Getwd()
	h := report.Header{
		Time:       r.now(),
		WorkDir:    wd,
		BasketPath: r.BasketPath,
		QuotePath:  r.QuotePath,
	}
	if err := report.Write(r.Out, h, res, r.Report); err != nil {
		return res, fmt.Errorf("write report: %w", err)
	}
	return res, nil
}

// Follow 监听两个输入文件，发生变化时重估，直到 ctx 取消或订阅失效。
func (r *Runner) Follow(ctx context.Context) error {
	log := r.Log
	if log == nil {
		log = logger.Nop()
	}
	w, err := watch.New(r.BasketPath, r.QuotePath, log.Logger)
	if err != nil {
		return err
	}
	return w.Run(ctx, func(ctx context.Context) error {
		_, err := r.Revaluate(ctx)
		return err
	})
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
