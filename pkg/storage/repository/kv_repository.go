package repository

// KVRepository stores raw JSON values per client and key.
type KVRepository interface {
	Get(clientID, key string) ([]byte, bool, error)
	Set(clientID, key string, value []byte) error
	Remove(clientID, key string) error
}

// Bucket is one client's view of a KVRepository.
type Bucket interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}
