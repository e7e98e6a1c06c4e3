package basket

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"basket-pricer-go/market"
	"basket-pricer-go/metrics"
)

// Basket 去重后的持仓集合，保持文件中的首次出现顺序。
type Basket []Holding

// New 按集合语义构建：三个字段完全相同的持仓只保留一个。
func New(holdings ...Holding) Basket {
	seen := make(map[Holding]struct{}, len(holdings))
	out := make(Basket, 0, len(holdings))
	for _, h := range holdings {
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

// Load 读取组合文件。单行解析失败只记录日志并跳过；
// 文件不可读时记录错误并返回空组合，保证监听循环不会因为文件抖动退出。
// 组合文件只读，不加锁。
func Load(path string, log *zap.Logger) Basket {
	if log == nil {
		log = zap.NewNop()
	}
	holdings, err := read(path, log)
	if err != nil {
		metrics.SourceErrors.WithLabelValues(metrics.SourceBasket).Inc()
		log.Error("basket source unavailable", zap.String("path", path), zap.Error(err))
		return Basket{}
	}
	return New(holdings...)
}

func read(path string, log *zap.Logger) ([]Holding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open basket: %w", err)
	}
	defer f.Close()

	var holdings []Holding
	err = market.ScanRecords(f, func(lineNo int, line string, lerr error) {
		h, err := Holding{}, lerr
		if err == nil {
			h, err = Parse(line)
		}
		if err != nil {
			var pe *market.ParseError
			if errors.As(err, &pe) {
				pe.File, pe.Line = path, lineNo
			}
			metrics.ParseErrors.WithLabelValues(metrics.SourceBasket).Inc()
			log.Warn("basket line dropped", zap.Error(err))
			return
		}
		holdings = append(holdings, h)
	})
	if err != nil {
		return nil, fmt.Errorf("read basket: %w", err)
	}
	return holdings, nil
}
