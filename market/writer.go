package market

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// SaveQuotes 在独占建议锁下重写报价文件：注释头、空行、每行一个 `key value`。
// 先加锁再截断，读方不会看到被截断了一半的文件。
func SaveQuotes(path string, quotes []Quote, origin string, now time.Time) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open quotes: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close quotes: %w", cerr)
		}
	}()

	if err := lockExclusive(f); err != nil {
		return fmt.Errorf("lock quotes: %w", err)
	}
	defer unlock(f)

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate quotes: %w", err)
	}

	sorted := append([]Quote(nil), quotes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "################################")
	fmt.Fprintln(w, "# Market Data File")
	fmt.Fprintf(w, "# Origin: %s\n", origin)
	fmt.Fprintf(w, "# Timestamp: %s\n", now.Format(time.RFC3339))
	fmt.Fprintln(w, "#")
	fmt.Fprintln(w, "# Syntax: quote_name quote_value")
	fmt.Fprintln(w, "################################")
	fmt.Fprintln(w)
	for _, q := range sorted {
		fmt.Fprintf(w, "%-10s %s\n", q.Key, FormatPrice(q.Price))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write quotes: %w", err)
	}
	return nil
}

// FormatPrice 以 5 位小数输出价格，NaN/Inf 输出 ParseFloat 能读回的文本。
func FormatPrice(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return strconv.FormatFloat(p, 'f', -1, 64)
	}
	return decimal.NewFromFloat(p).StringFixed(5)
}
