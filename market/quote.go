package market

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var errMissingPrice = errors.New("missing price")

// Quote 单个报价，Price 为 NaN 表示“已知该 key 但没有可用价格”。
type Quote struct {
	Key   string
	Price float64
}

// Valid 价格是否可用于计算
func (q Quote) Valid() bool {
	return !math.IsNaN(q.Price)
}

// ParseQuote 解析 `key value` 格式的一行。
// 价格缺失或无法解析时仍返回 Price=NaN 的报价，同时返回非 nil 的 *ParseError，
// 调用方据此记录日志但不丢弃该行。
func ParseQuote(line string) (Quote, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Quote{}, &ParseError{Text: line, Err: errors.New("empty line")}
	}
	q := Quote{Key: fields[0], Price: math.NaN()}
	if len(fields) < 2 {
		return q, &ParseError{Text: line, Err: errMissingPrice}
	}
	price, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return q, &ParseError{Text: line, Err: err}
	}
	q.Price = price
	return q, nil
}
