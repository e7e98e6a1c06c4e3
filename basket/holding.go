// Package basket 读取组合定义文件：每行一个持仓 `quoteKey quantity displayName`。
package basket

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"basket-pricer-go/market"
)

var errTooFewFields = errors.New("expected: quote_name quantity name")

// Holding 组合中的一个持仓。
// 结构体可比较，直接作为估值结果 map 的 key；三个字段共同构成身份。
type Holding struct {
	Name     string
	QuoteKey string
	Quantity float64
}

func (h Holding) String() string {
	return fmt.Sprintf("Holding[name=%s,quote=%s,quantity=%g]", h.Name, h.QuoteKey, h.Quantity)
}

// Parse 解析一行 `quoteKey quantity displayName [忽略...]`
func Parse(line string) (Holding, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Holding{}, &market.ParseError{Text: line, Err: errTooFewFields}
	}
	qty, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Holding{}, &market.ParseError{Text: line, Err: err}
	}
	return Holding{Name: fields[2], QuoteKey: fields[0], Quantity: qty}, nil
}
