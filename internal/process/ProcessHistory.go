/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package process

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"isokml/pkg/logger"
)

// ProcessHistory 记录已成功转换的输入（内容哈希 -> 输出文档路径），用于 --skip-processed。
// 记录文件每行一条：<sha256>\t<输出路径>。
type ProcessHistory struct {
	processedFile string
	processed     map[string]string
	mu            sync.RWMutex
}

// NewProcessHistory 创建 ProcessHistory 并加载已有记录。processedFile 为空时只在内存中记录。
func NewProcessHistory(processedFile string) (*ProcessHistory, error) {
	h := &ProcessHistory{
		processedFile: processedFile,
		processed:     make(map[string]string),
	}
	if processedFile == "" {
		return h, nil
	}
	if err := h.load(); err != nil {
		return nil, err
	}
	logger.Log().Debug("ProcessHistory 初始化完成", "file", processedFile, "count", h.Len())
	return h, nil
}

// Lookup 返回哈希对应的输出路径。
func (h *ProcessHistory) Lookup(hash string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out, ok := h.processed[hash]
	return out, ok
}

// Len 返回记录条数。
func (h *ProcessHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.processed)
}

// Record 记录一次成功转换并追加到记录文件。已存在相同记录时不重复写入。
func (h *ProcessHistory) Record(hash, output string) error {
	if hash == "" {
		return errors.New("哈希不能为空")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.processed[hash]; ok && prev == output {
		return nil
	}
	if h.processedFile != "" {
		f, err := os.OpenFile(h.processedFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("无法打开 %s 进行写入: %w", h.processedFile, err)
		}
		defer f.Close()
		if _, err := fmt.Fprintf(f, "%s\t%s\n", hash, output); err != nil {
			return fmt.Errorf("无法写入 %s: %w", h.processedFile, err)
		}
	}
	h.processed[hash] = output
	logger.Log().Debug("记录已处理文件", "hash", hash, "output", output)
	return nil
}

// load 读取记录文件，后出现的记录覆盖先前的。旧格式（仅哈希）同样接受。
func (h *ProcessHistory) load() error {
	file, err := os.Open(h.processedFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("无法打开 %s: %w", h.processedFile, err)
	}
	defer file.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		hash, output, _ := strings.Cut(line, "\t")
		h.processed[hash] = output
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("读取 %s 失败: %w", h.processedFile, err)
	}
	return nil
}
