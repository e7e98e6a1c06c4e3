package valuation

import (
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"basket-pricer-go/basket"
	"basket-pricer-go/market"
	"basket-pricer-go/measure"
)

// Config 引擎配置
type Config struct {
	Workers int // 并发计算的 goroutine 上限，<=0 时取 GOMAXPROCS
}

// Engine 估值引擎：每个持仓独立计算，彼此之间没有共享可变状态。
type Engine struct {
	workers int
	log     *zap.Logger
}

// NewEngine 创建估值引擎
func NewEngine(cfg Config, log *zap.Logger) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{workers: cfg.Workers, log: log}
}

// Workers 返回并发上限
func (e *Engine) Workers() int { return e.workers }

// Valuate 对组合中每个持仓并发执行 m.Calculate，结果条数恒等于持仓数。
// 计算失败（包括 measure panic）以 NaN 表示，不会缺项。
// 快照在整个计算期间只读；一次估值不可取消。
func (e *Engine) Valuate(b basket.Basket, q market.Snapshot, m measure.Measure) Result {
	holdings := basket.New(b...)
	values := make([]float64, len(holdings))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, h := range holdings {
		i, h := i, h
		g.Go(func() error {
			// 每个 goroutine 只写自己的下标
			values[i] = e.calculate(h, q, m)
			return nil
		})
	}
	// 闭包恒返回 nil，measure 的 panic 已在 calculate 中转为 NaN
	_ = g.Wait()

	res := make(Result, len(holdings))
	for i, h := range holdings {
		res[h] = values[i]
	}
	return res
}

func (e *Engine) calculate(h basket.Holding, q market.Snapshot, m measure.Measure) (v float64) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("measure panicked", zap.Stringer("holding", h), zap.Any("panic", r))
			v = math.NaN()
		}
	}()
	return m.Calculate(h, q)
}
