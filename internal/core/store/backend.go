package store

// Backend 按集合名存取原始 JSON 字节。
// Update 的读-改-写必须处于同一个排他临界区内，否则并发追加会丢记录。
type Backend interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	Update(name string, fn func(current []byte) ([]byte, error)) error
}
