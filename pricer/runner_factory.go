package pricer

import (
	"io"

	"basket-pricer-go/config"
	"basket-pricer-go/infrastructure/logger"
	"basket-pricer-go/measure"
	"basket-pricer-go/report"
	"basket-pricer-go/valuation"
)

// BuildRunner 基于配置组装 Runner
func BuildRunner(cfg config.AppConfig, basketPath, quotePath string, out io.Writer, log *logger.Logger) (*Runner, error) {
	m, err := measure.ByName(cfg.Valuation.Measure)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{
		BasketPath: basketPath,
		QuotePath:  quotePath,
		Engine:     valuation.NewEngine(valuation.Config{Workers: cfg.Valuation.Workers}, log.Logger),
		Measure:    m,
		Out:        out,
		Report: report.Options{
			Grouping: cfg.Report.Grouping,
			Decimal:  cfg.Report.Decimal,
			NaN:      cfg.Report.NaN,
			Inf:      cfg.Report.Inf,
		},
		Log: log,
	}, nil
}
