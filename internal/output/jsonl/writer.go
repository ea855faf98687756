// Package jsonl 实现分析报告的异步 JSONL 写入。
// 成交、配对与摘要记录经带缓冲的 channel 投递，
// JSON 编码与文件 I/O 在后台 goroutine 完成。
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

type reqType int

const (
	reqWrite reqType = iota
	reqFlush
	reqClose
)

type request struct {
	typ  reqType
	val  any
	done chan error
}

// Writer 异步 JSONL 写入器
// Write 只负责投递，编码失败的记录静默跳过，不阻塞报告生成。
type Writer struct {
	// path 输出文件路径
	path string
	// ch 请求通道
	ch chan request

	closeOnce sync.Once
	closeErr  error
	closed    int32

	sendMu sync.Mutex

	wg sync.WaitGroup
}

// NewWriter 创建 JSONL 写入器
// 参数 path: 输出文件路径（目录不存在时自动创建）
// 参数 bufferSize: 投递缓冲区大小（channel 容量）
func NewWriter(path string, bufferSize int) (*Writer, error) {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("打开输出文件失败: %w", err)
	}

	w := &Writer{
		path: path,
		ch:   make(chan request, bufferSize),
	}

	w.wg.Add(1)
	go w.loop(f)

	return w, nil
}

// Write 异步写入一条 JSONL 记录
func (w *Writer) Write(v any) error {
	if w == nil {
		return fmt.Errorf("writer 为空")
	}
	if atomic.LoadInt32(&w.closed) == 1 {
		return fmt.Errorf("writer 已关闭")
	}
	w.sendMu.Lock()
	defer w.sendMu.Unlock()
	if atomic.LoadInt32(&w.closed) == 1 {
		return fmt.Errorf("writer 已关闭")
	}
	w.ch <- request{typ: reqWrite, val: v}
	return nil
}

// Flush 强制 flush 文件缓冲区
func (w *Writer) Flush() error {
	if w == nil {
		return nil
	}
	if atomic.LoadInt32(&w.closed) == 1 {
		return nil
	}
	w.sendMu.Lock()
	defer w.sendMu.Unlock()
	if atomic.LoadInt32(&w.closed) == 1 {
		return nil
	}
	done := make(chan error, 1)
	w.ch <- request{typ: reqFlush, done: done}
	return <-done
}

// Close 关闭写入器（会先 flush）
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.closeOnce.Do(func() {
		atomic.StoreInt32(&w.closed, 1)
		w.sendMu.Lock()
		defer w.sendMu.Unlock()
		done := make(chan error, 1)
		w.ch <- request{typ: reqClose, done: done}
		w.closeErr = <-done
		close(w.ch)
	})
	w.wg.Wait()
	return w.closeErr
}

func (w *Writer) loop(f *os.File) {
	defer w.wg.Done()
	defer f.Close()

	bw := bufio.NewWriterSize(f, 1<<20) // 1MB buffer
	reply := func(err error, done chan error) {
		if done != nil {
			done <- err
		}
	}

	for req := range w.ch {
		switch req.typ {
		case reqWrite:
			b, err := json.Marshal(req.val)
			if err != nil {
				continue
			}
			if _, err := bw.Write(b); err != nil {
				continue
			}
			if err := bw.WriteByte('\n'); err != nil {
				continue
			}
		case reqFlush:
			reply(bw.Flush(), req.done)
		case reqClose:
			reply(bw.Flush(), req.done)
			return
		}
	}
}
