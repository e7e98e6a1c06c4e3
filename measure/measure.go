// Package measure 定义估值公式。引擎只依赖 Measure 接口，新增公式不需要改动引擎。
package measure

import (
	"fmt"
	"math"

	"basket-pricer-go/basket"
	"basket-pricer-go/market"
)

// Measure 基于持仓定义和行情快照计算一个数值，失败时返回 NaN。
// 实现必须是纯函数，会被多个 goroutine 并发调用。
type Measure interface {
	Calculate(h basket.Holding, q market.Snapshot) float64
}

// Func 把普通函数适配为 Measure
type Func func(h basket.Holding, q market.Snapshot) float64

func (f Func) Calculate(h basket.Holding, q market.Snapshot) float64 { return f(h, q) }

// PriceMeasure value = quantity * price
type PriceMeasure struct{}

func (PriceMeasure) Calculate(h basket.Holding, q market.Snapshot) float64 {
	quote, ok := q.Quote(h.QuoteKey)
	if !ok {
		return math.NaN()
	}
	return h.Quantity * quote.Price
}

// ByName 根据配置名返回公式
func ByName(name string) (Measure, error) {
	switch name {
	case "", "price":
		return PriceMeasure{}, nil
	default:
		return nil, fmt.Errorf("unknown measure %q", name)
	}
}
