package config

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce 同一文件两次事件的最小间隔
const reloadDebounce = 100 * time.Millisecond

// RulesWatcher 监听配置目录，规则文件变化时发出文件路径
// 事件在后台 goroutine 中收集，主循环通过 Events 通道逐帧消费
type RulesWatcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewRulesWatcher 创建监听器
// 参数:
//   - dirs: 要监听的目录列表
func NewRulesWatcher(dirs ...string) (*RulesWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &RulesWatcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close 停止监听
func (w *RulesWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll 非阻塞地取出一个变化的文件路径
func (w *RulesWatcher) Poll() (string, bool) {
	select {
	case path := <-w.Events:
		return path, true
	case err := <-w.Errors:
		log.Printf("[RulesWatcher] Watch error: %v", err)
		return "", false
	default:
		return "", false
	}
}

func (w *RulesWatcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isRulesFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < reloadDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// isRulesFile 只关心 YAML 规则文件
func isRulesFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
