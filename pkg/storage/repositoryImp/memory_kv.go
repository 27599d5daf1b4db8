package repositoryImp

import (
	"sync"

	"agniro/pkg/storage/repository"
)

type memoryKV struct {
	mu   sync.Mutex
	data map[string]map[string][]byte
}

// NewMemory returns a process-local KVRepository.
func NewMemory() repository.KVRepository {
	return &memoryKV{data: map[string]map[string][]byte{}}
}

func (r *memoryKV) Get(clientID, key string) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[clientID][key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (r *memoryKV) Set(clientID, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data[clientID] == nil {
		r.data[clientID] = map[string][]byte{}
	}
	r.data[clientID][key] = append([]byte(nil), value...)
	return nil
}

func (r *memoryKV) Remove(clientID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data[clientID], key)
	return nil
}
