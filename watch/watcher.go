// Package watch 监听组合文件和报价文件所在目录，相关文件被创建或修改时触发重估。
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"basket-pricer-go/metrics"
)

// ErrSubscriptionLost 订阅失效（事件通道关闭或被监听目录消失），监听循环终止且不重试。
var ErrSubscriptionLost = errors.New("watch subscription lost")

// State 监听器状态
type State int32

const (
	// StateIdle 未订阅
	StateIdle State = iota
	// StateWatching 已订阅，等待事件
	StateWatching
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateWatching:
		return "WATCHING"
	default:
		return "UNKNOWN"
	}
}

// Watcher 文件变更监听器
type Watcher struct {
	basketPath string
	quotePath  string
	dirs       []string
	log        *zap.Logger
	state      atomic.Int32
	notify     func(state string)
}

// New 解析两个文件的绝对路径及其父目录；两个文件在同一目录时只订阅一次。
func New(basketPath, quotePath string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b, err := filepath.Abs(basketPath)
	if err != nil {
		return nil, fmt.Errorf("resolve basket path: %w", err)
	}
	q, err := filepath.Abs(quotePath)
	if err != nil {
		return nil, fmt.Errorf("resolve quote path: %w", err)
	}
	dirs := []string{filepath.Dir(b)}
	if qd := filepath.Dir(q); !sameDir(dirs[0], qd) {
		dirs = append(dirs, qd)
	}
	return &Watcher{
		basketPath: b,
		quotePath:  q,
		dirs:       dirs,
		log:        log,
		notify:     sdNotify,
	}, nil
}

// Dirs 返回被订阅的目录
func (w *Watcher) Dirs() []string {
	return append([]string(nil), w.dirs...)
}

// State 当前状态
func (w *Watcher) State() State {
	return State(w.state.Load())
}

// Run 订阅目录并阻塞等待事件，直到 ctx 取消或订阅失效。
// 一批事件中只要有一个指向组合/报价文件，就同步调用一次 onChange；
// onChange 返回前不会读取下一批事件，所以两次重估不会重叠。
// onChange 的错误只记录，不会终止循环。
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.log.Info("watcher set on directory", zap.String("dir", dir))
	}

	w.state.Store(int32(StateWatching))
	defer w.state.Store(int32(StateIdle))
	w.notify(daemon.SdNotifyReady)
	defer w.notify(daemon.SdNotifyStopping)
	w.log.Info("watcher started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped", zap.Error(ctx.Err()))
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return ErrSubscriptionLost
			}
			batch, open := drain(event, fw.Events)
			relevant, lost := w.classify(batch)
			if lost || !open {
				w.log.Error("watch subscription lost", zap.Strings("dirs", w.dirs))
				return ErrSubscriptionLost
			}
			if !relevant {
				continue
			}
			if err := onChange(ctx); err != nil {
				metrics.RevaluationErrors.Inc()
				w.log.Error("revaluation failed", zap.Error(err))
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return ErrSubscriptionLost
			}
			w.handleError(err)
		}
	}
}

// drain 取出通道中已经排队的事件，与 first 组成一批。
func drain(first fsnotify.Event, events <-chan fsnotify.Event) ([]fsnotify.Event, bool) {
	batch := []fsnotify.Event{first}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return batch, false
			}
			batch = append(batch, ev)
		default:
			return batch, true
		}
	}
}

// classify 判断一批事件是否需要重估，以及是否有被监听目录本身被删除/移走。
func (w *Watcher) classify(batch []fsnotify.Event) (relevant, lost bool) {
	for _, ev := range batch {
		if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
			for _, dir := range w.dirs {
				if filepath.Clean(ev.Name) == dir {
					lost = true
				}
			}
		}
		if (ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)) && w.isWatchedFile(ev.Name) {
			metrics.WatchEvents.WithLabelValues(metrics.EventRelevant).Inc()
			relevant = true
			continue
		}
		metrics.WatchEvents.WithLabelValues(metrics.EventIgnored).Inc()
	}
	return relevant, lost
}

// isWatchedFile 用文件身份（os.SameFile）而不是字符串比较，兼容符号链接和相对路径。
func (w *Watcher) isWatchedFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	for _, target := range []string{w.basketPath, w.quotePath} {
		if ti, err := os.Stat(target); err == nil && os.SameFile(info, ti) {
			return true
		}
	}
	return false
}

func (w *Watcher) handleError(err error) {
	if errors.Is(err, fsnotify.ErrEventOverflow) {
		// 溢出不视为相关事件
		metrics.WatchEvents.WithLabelValues(metrics.EventOverflow).Inc()
		w.log.Warn("watch event queue overflow, events dropped")
		return
	}
	w.log.Warn("watcher error", zap.Error(err))
}

func sameDir(a, b string) bool {
	if a == b {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// sdNotify 在 systemd 下报告就绪/停止状态，非 systemd 环境为空操作。
func sdNotify(state string) {
	_, _ = daemon.SdNotify(false, state)
}
