package repositoryImp

import "agniro/pkg/storage/repository"

type bucket struct {
	kv       repository.KVRepository
	clientID string
}

// Scope binds kv to a single client.
func Scope(kv repository.KVRepository, clientID string) repository.Bucket {
	return &bucket{kv: kv, clientID: clientID}
}

func (b *bucket) Get(key string) ([]byte, bool, error) { return b.kv.Get(b.clientID, key) }
func (b *bucket) Set(key string, value []byte) error    { return b.kv.Set(b.clientID, key, value) }
func (b *bucket) Remove(key string) error               { return b.kv.Remove(b.clientID, key) }
