package market

import "fmt"

// ParseError 描述输入文件中无法解析的一行。
// 行级错误只记录日志，不会中断整个文件的读取。
type ParseError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("parse %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("%s:%d: parse %q: %v", e.File, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
