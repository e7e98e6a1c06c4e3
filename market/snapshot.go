package market

import "sort"

// Snapshot 某一时刻的全部报价，构建后只读，可被多个 goroutine 并发查询。
type Snapshot struct {
	quotes map[string]Quote
}

// NewSnapshot 按顺序构建快照，重复 key 以最后一次出现为准。
func NewSnapshot(quotes ...Quote) Snapshot {
	m := make(map[string]Quote, len(quotes))
	for _, q := range quotes {
		m[q.Key] = q
	}
	return Snapshot{quotes: m}
}

// Quote 查询报价，未知 key 返回 ok=false。
func (s Snapshot) Quote(key string) (Quote, bool) {
	q, ok := s.quotes[key]
	return q, ok
}

// Quotes 返回全部报价（按 key 排序的副本）
func (s Snapshot) Quotes() []Quote {
	out := make([]Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Keys 返回排序后的全部 key
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.quotes))
	for k := range s.quotes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s Snapshot) Len() int { return len(s.quotes) }
