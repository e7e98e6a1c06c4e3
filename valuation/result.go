package valuation

import (
	"math"
	"sort"

	"basket-pricer-go/basket"
)

// Result 持仓 -> 计算值。key 是完整的持仓身份，同名不同 quote 的持仓不会合并。
type Result map[basket.Holding]float64

// Entry Result 的一条记录
type Entry struct {
	Holding basket.Holding
	Value   float64
}

// Stats 汇总统计
type Stats struct {
	Count int
	NaN   int
	Total float64
}

// Sorted 按显示名排序（同名再按 quote key、数量），用于展示
func (r Result) Sorted() []Entry {
	out := make([]Entry, 0, len(r))
	for h, v := range r {
		out = append(out, Entry{Holding: h, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Holding, out[j].Holding
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.QuoteKey != b.QuoteKey {
			return a.QuoteKey < b.QuoteKey
		}
		return a.Quantity < b.Quantity
	})
	return out
}

// Total 全部结果之和，任一 NaN 使总和为 NaN。
// 按固定顺序累加，同一结果多次求和得到相同的值。
func (r Result) Total() float64 {
	return r.Stats().Total
}

// Stats 计算条数、NaN 条数和总和
func (r Result) Stats() Stats {
	var s Stats
	for _, e := range r.Sorted() {
		s.Count++
		if math.IsNaN(e.Value) {
			s.NaN++
		}
		s.Total += e.Value
	}
	return s
}
