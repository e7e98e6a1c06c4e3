package market

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// MaxLineLength 单行最大字节数，超出的行整体作为解析错误上报。
const MaxLineLength = 64 * 1024

// ErrLineTooLong 行长度超过 MaxLineLength
var ErrLineTooLong = errors.New("line too long")

// ScanRecords 逐行读取文本文件，去掉首尾空白，跳过空行和 `#` 注释行。
// fn 收到的 lineNo 从 1 开始，对应原文件行号。
// 超长行以 *ParseError（Err 为 ErrLineTooLong）交给 fn，line 为空，后续行照常读取。
// 只有底层读取失败才返回错误。
func ScanRecords(r io.Reader, fn func(lineNo int, line string, err error)) error {
	br := bufio.NewReaderSize(r, MaxLineLength)
	n := 0
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		n++
		if isPrefix {
			head := strings.TrimSpace(string(chunk))
			if err := skipRest(br); err != nil {
				return err
			}
			if strings.HasPrefix(head, "#") {
				continue
			}
			fn(n, "", &ParseError{Line: n, Text: preview(head), Err: ErrLineTooLong})
			continue
		}
		line := strings.TrimSpace(string(chunk))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fn(n, line, nil)
	}
}

// skipRest 丢弃当前超长行剩余的部分
func skipRest(br *bufio.Reader) error {
	for {
		_, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !isPrefix {
			return nil
		}
	}
}

func preview(s string) string {
	const limit = 32
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
