// Package report 渲染估值结果：按显示名排序的明细行和一行合计。
// 数字格式通过 Options 逐次传入，不使用包级格式状态。
package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"basket-pricer-go/valuation"
)

// Options 数字格式
type Options struct {
	Grouping string // 千分位分隔符
	Decimal  string // 小数点
	NaN      string // NaN 的显示文本
	Inf      string // 无穷大的显示文本，负无穷前加 "-"
}

// DefaultOptions #,###,##0.00
func DefaultOptions() Options {
	return Options{Grouping: ",", Decimal: ".", NaN: "NaN", Inf: "Inf"}
}

// Header 报表头信息
type Header struct {
	Time       time.Time
	WorkDir    string
	BasketPath string
	QuotePath  string
}

// Write 输出报表
func Write(w io.Writer, h Header, r valuation.Result, opt Options) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Valuation date-time:    %s\n", h.Time.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(bw, "Current directory:      %s\n", h.WorkDir)
	fmt.Fprintf(bw, "Basket definition file: %s\n", h.BasketPath)
	fmt.Fprintf(bw, "Market data file:       %s\n", h.QuotePath)
	fmt.Fprintln(bw)

	for _, e := range r.Sorted() {
		fmt.Fprintf(bw, "%-9s %15s\n", e.Holding.Name, FormatAmount(e.Value, opt))
	}
	fmt.Fprintln(bw, "----")
	fmt.Fprintf(bw, "TOTALS    %15s\n", FormatAmount(r.Total(), opt))
	fmt.Fprintln(bw)
	return bw.Flush()
}

// FormatAmount 两位小数（银行家舍入）并按千分位分组
func FormatAmount(v float64, opt Options) string {
	switch {
	case math.IsNaN(v):
		return opt.NaN
	case math.IsInf(v, 1):
		return opt.Inf
	case math.IsInf(v, -1):
		return "-" + opt.Inf
	}
	s := decimal.NewFromFloat(v).StringFixedBank(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg && strings.Trim(s, "0.") != "" {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(opt.Grouping)
		}
		b.WriteRune(c)
	}
	b.WriteString(opt.Decimal)
	b.WriteString(frac)
	return b.String()
}
