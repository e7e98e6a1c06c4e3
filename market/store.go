package market

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"basket-pricer-go/metrics"
)

// LoadQuotes 在共享建议锁保护下读取报价文件并构建快照。
// 文件无法打开/加锁/读取时记录错误并返回空快照，不向调用方抛错；
// 单行价格无法解析时该 key 仍以 NaN 价格保留。
func LoadQuotes(path string, log *zap.Logger) Snapshot {
	if log == nil {
		log = zap.NewNop()
	}
	quotes, err := readQuotes(path, log)
	if err != nil {
		metrics.SourceErrors.WithLabelValues(metrics.SourceQuotes).Inc()
		log.Error("quote source unavailable", zap.String("path", path), zap.Error(err))
		return NewSnapshot()
	}
	return NewSnapshot(quotes...)
}

func readQuotes(path string, log *zap.Logger) ([]Quote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quotes: %w", err)
	}
	defer f.Close()

	if err := lockShared(f); err != nil {
		return nil, fmt.Errorf("lock quotes: %w", err)
	}
	defer unlock(f)

	var quotes []Quote
	err = ScanRecords(f, func(lineNo int, line string, lerr error) {
		if lerr != nil {
			// 超长行取不到可靠的 key，整行丢弃
			var pe *ParseError
			if errors.As(lerr, &pe) {
				pe.File = path
			}
			metrics.ParseErrors.WithLabelValues(metrics.SourceQuotes).Inc()
			log.Warn("quote line dropped", zap.Error(lerr))
			return
		}
		q, perr := ParseQuote(line)
		var pe *ParseError
		if errors.As(perr, &pe) {
			pe.File, pe.Line = path, lineNo
			metrics.ParseErrors.WithLabelValues(metrics.SourceQuotes).Inc()
			log.Warn("quote line unusable, price set to NaN", zap.Error(pe))
		}
		quotes = append(quotes, q)
	})
	if err != nil {
		return nil, fmt.Errorf("read quotes: %w", err)
	}
	return quotes, nil
}
