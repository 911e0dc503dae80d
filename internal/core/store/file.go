package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// FileBackend 每个集合对应 dir 下的 <name>.json，用 flock(2) 做建议锁。
// 锁只约束同样走 FileBackend 的进程（api / admin / catalogctl 共用一个目录）。
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("store: empty data dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) Dir() string { return b.dir }

func (b *FileBackend) path(name string) string { return filepath.Join(b.dir, name+".json") }

// Read 文件不存在时返回 nil, nil
func (b *FileBackend) Read(name string) ([]byte, error) {
	f, err := os.Open(b.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	if err := lock(f, unix.LOCK_SH); err != nil {
		return nil, fmt.Errorf("lock %s: %w", name, err)
	}
	defer unlock(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (b *FileBackend) Write(name string, data []byte) error {
	return b.exclusive(name, func(f *os.File) error {
		return overwrite(f, data)
	})
}

func (b *FileBackend) Update(name string, fn func(current []byte) ([]byte, error)) error {
	return b.exclusive(name, func(f *os.File) error {
		current, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return overwrite(f, next)
	})
}

// exclusive 先加锁再截断，O_TRUNC 会在拿到锁之前清空文件
func (b *FileBackend) exclusive(name string, fn func(f *os.File) error) error {
	f, err := os.OpenFile(b.path(name), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	if err := lock(f, unix.LOCK_EX); err != nil {
		return fmt.Errorf("lock %s: %w", name, err)
	}
	defer unlock(f)

	return fn(f)
}

func overwrite(f *os.File, data []byte) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate %s: %w", f.Name(), err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek %s: %w", f.Name(), err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", f.Name(), err)
	}
	return f.Sync()
}

func lock(f *os.File, how int) error {
	for {
		err := unix.Flock(int(f.Fd()), how)
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}

func unlock(f *os.File) { _ = unix.Flock(int(f.Fd()), unix.LOCK_UN) }
