package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow 编辑器保存时常常连续触发多个事件；
// 最后一个事件之后安静 debounceWindow 才通知
const debounceWindow = 100 * time.Millisecond

// ErrEmptyTuning 重载时读到空文件（通常是编辑器写到一半）
var ErrEmptyTuning = errors.New("tuning file is empty")

// FileWatcher 监听单个配置文件的变化
//
// 监听的是文件所在目录，因为很多编辑器通过 rename 替换文件。
// Events 在文件被写入/创建/替换后收到文件路径。
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewFileWatcher 开始监听 path
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	fw := &FileWatcher{
		watcher: w,
		path:    abs,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	fw.wg.Add(1)
	go fw.run()
	return fw, nil
}

// Close 停止监听并关闭通道，可重复调用
func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.closeCh)
		err = fw.watcher.Close()
		fw.wg.Wait()
		close(fw.Events)
		close(fw.Errors)
	})
	return err
}

func (fw *FileWatcher) run() {
	defer fw.wg.Done()

	timer := time.NewTimer(debounceWindow)
	timer.Stop()
	defer timer.Stop()
	// fire 为 nil 时没有待发送的通知
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != fw.path {
				continue
			}
			timer.Reset(debounceWindow)
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case fw.Events <- fw.path:
			case <-fw.closeCh:
				return
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case fw.Errors <- err:
			default:
			}
		case <-fw.closeCh:
			return
		}
	}
}

// TuningReloader 将文件变化转换为新的 CoinBurstConfig
//
// Poll 在帧回调中调用，非阻塞；只有成功解析的配置才会返回。
type TuningReloader struct {
	watcher *FileWatcher
	path    string
	onError func(error)
}

// NewTuningReloader 监听调参文件；onError 接收解析或监听错误（可为 nil）
func NewTuningReloader(path string, onError func(error)) (*TuningReloader, error) {
	w, err := NewFileWatcher(path)
	if err != nil {
		return nil, err
	}
	return &TuningReloader{watcher: w, path: path, onError: onError}, nil
}

// Poll 返回最新一次成功重载的配置；没有变化时返回 nil
func (r *TuningReloader) Poll() *CoinBurstConfig {
	var latest *CoinBurstConfig
	for {
		select {
		case _, ok := <-r.watcher.Events:
			if !ok {
				return latest
			}
			cfg, err := loadReloadedTuning(r.path)
			if err != nil {
				r.reportError(err)
				continue
			}
			latest = cfg
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return latest
			}
			r.reportError(err)
		default:
			return latest
		}
	}
}

// Close 停止监听
func (r *TuningReloader) Close() error {
	return r.watcher.Close()
}

// loadReloadedTuning 与 LoadCoinBurstConfig 相同，但拒绝空内容：
// 启动时空文件表示全部默认值，重载时更可能是截断的写入
func loadReloadedTuning(path string) (*CoinBurstConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coin burst config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("reload %s: %w", path, ErrEmptyTuning)
	}
	return ParseCoinBurstConfig(data)
}

func (r *TuningReloader) reportError(err error) {
	if r.onError != nil {
		r.onError(err)
	}
}
