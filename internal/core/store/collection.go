package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrInvalidRecord 写入前的结构校验失败
var ErrInvalidRecord = errors.New("invalid record")

// Record 集合元素在写入边界上自校验
type Record interface {
	Validate() error
}

// Collection 一个具名 JSON 数组集合的类型化句柄。
//
// 读取宽松：文件缺失或整体不是 JSON 数组时视为空集合（记 Warn，不返回错误）；
// 单条解码或校验失败的元素会被跳过。I/O 错误照常返回。
type Collection[T Record] struct {
	name    string
	backend Backend
	log     *zap.Logger
}

func NewCollection[T Record](b Backend, name string, l *zap.Logger) *Collection[T] {
	if l == nil {
		l = zap.NewNop()
	}
	return &Collection[T]{name: name, backend: b, log: l.With(zap.String("collection", name))}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) Load() ([]T, error) {
	data, err := c.backend.Read(c.name)
	observe(c.name, "load", err)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.name, err)
	}
	items, _ := c.decode(data)
	return items, nil
}

// Save 整体覆盖写；有任意一条校验失败则什么都不写
func (c *Collection[T]) Save(records []T) error {
	data, err := c.encodeRecords(records)
	if err == nil {
		err = c.backend.Write(c.name, data)
	}
	observe(c.name, "save", err)
	if err != nil {
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}

// Append 在同一把排他锁内完成 读取-追加-写回。
// 在原始元素层面追加，已有元素（包括无法解码的）原样保留。
func (c *Collection[T]) Append(record T) error {
	if err := record.Validate(); err != nil {
		observe(c.name, "append", err)
		return fmt.Errorf("append %s: %w: %v", c.name, ErrInvalidRecord, err)
	}
	item, err := json.Marshal(record)
	if err != nil {
		observe(c.name, "append", err)
		return fmt.Errorf("append %s: %w", c.name, err)
	}

	err = c.backend.Update(c.name, func(current []byte) ([]byte, error) {
		raw := c.decodeRaw(current)
		raw = append(raw, item)
		return encode(raw)
	})
	observe(c.name, "append", err)
	if err != nil {
		return fmt.Errorf("append %s: %w", c.name, err)
	}
	return nil
}

// Update 通用读-改-写。fn 只看到能通过校验的记录；
// 无法解码的原始元素保留在结果前部，不会因为一次改写而丢失。
func (c *Collection[T]) Update(fn func(records []T) ([]T, error)) error {
	err := c.backend.Update(c.name, func(current []byte) ([]byte, error) {
		items, skipped := c.decode(current)
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		if err := validateAll(next); err != nil {
			return nil, err
		}
		raw := make([]json.RawMessage, 0, len(skipped)+len(next))
		raw = append(raw, skipped...)
		for _, r := range next {
			b, err := json.Marshal(r)
			if err != nil {
				return nil, err
			}
			raw = append(raw, b)
		}
		return encode(raw)
	})
	observe(c.name, "update", err)
	if err != nil {
		return fmt.Errorf("update %s: %w", c.name, err)
	}
	return nil
}

func (c *Collection[T]) decodeRaw(data []byte) []json.RawMessage {
	if len(bytes.TrimSpace(data)) == 0 {
		return []json.RawMessage{}
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// TODO: 提供显式的损坏上报模式，而不是静默当作空集合
		c.log.Warn("malformed collection treated as empty", zap.Error(err))
		malformedTotal.WithLabelValues(c.name, "collection").Inc()
		return []json.RawMessage{}
	}
	if raw == nil {
		raw = []json.RawMessage{}
	}
	return raw
}

func (c *Collection[T]) decode(data []byte) (items []T, skipped []json.RawMessage) {
	raw := c.decodeRaw(data)
	items = make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			c.log.Warn("skip undecodable record", zap.Int("index", i), zap.Error(err))
			malformedTotal.WithLabelValues(c.name, "record").Inc()
			skipped = append(skipped, r)
			continue
		}
		if err := v.Validate(); err != nil {
			c.log.Warn("skip invalid record", zap.Int("index", i), zap.Error(err))
			malformedTotal.WithLabelValues(c.name, "record").Inc()
			skipped = append(skipped, r)
			continue
		}
		items = append(items, v)
	}
	return items, skipped
}

func (c *Collection[T]) encodeRecords(records []T) ([]byte, error) {
	if err := validateAll(records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return encode(records)
}

func validateAll[T Record](records []T) error {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %v", ErrInvalidRecord, i, err)
		}
	}
	return nil
}

// encode 两空格缩进，不转义 HTML 字符
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
