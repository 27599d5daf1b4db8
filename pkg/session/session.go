// Package session keeps one set of repositories per client so that each
// client's collections are loaded from storage once and then shared by
// concurrent requests.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	articleRepo "agniro/pkg/article/repository"
	articleRepoImp "agniro/pkg/article/repositoryImp"
	cropRepo "agniro/pkg/crop/repository"
	cropRepoImp "agniro/pkg/crop/repositoryImp"
	"agniro/pkg/middleware"
	storageRepo "agniro/pkg/storage/repository"
	kv "agniro/pkg/storage/repositoryImp"
	videoRepo "agniro/pkg/video/repository"
	videoRepoImp "agniro/pkg/video/repositoryImp"
)

type Session struct {
	ClientID string
	Crops    cropRepo.CropRepository
	Articles articleRepo.ArticleRepository
	Videos   videoRepo.VideoRepository

	lastSeen time.Time
	inUse    int
}

type Registry struct {
	kv  storageRepo.KVRepository
	log *zap.Logger
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(store storageRepo.KVRepository, log *zap.Logger, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{kv: store, log: log, now: now, sessions: map[string]*Session{}}
}

// For returns the client's session, loading its repositories on first use.
func (r *Registry) For(clientID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(clientID)
}

// Hold returns the client's session pinned against eviction until release
// is called. Two sessions for one client would each write back their own
// copy of the collections.
func (r *Registry) Hold(clientID string) (s *Session, release func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s = r.load(clientID)
	s.inUse++
	var once sync.Once
	return s, func() {
		once.Do(func() {
			r.mu.Lock()
			s.inUse--
			s.lastSeen = r.now()
			r.mu.Unlock()
		})
	}
}

// Middleware holds the session of the request's client while the handler
// runs. It must be installed after the client middleware.
func (r *Registry) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, release := r.Hold(middleware.ClientID(c))
			defer release()
			return next(c)
		}
	}
}

func (r *Registry) load(clientID string) *Session {
	if s, ok := r.sessions[clientID]; ok {
		s.lastSeen = r.now()
		return s
	}
	bucket := kv.Scope(r.kv, clientID)
	log := r.log.With(zap.String("client", clientID))
	s := &Session{
		ClientID: clientID,
		Crops:    cropRepoImp.New(bucket, log, r.now),
		Articles: articleRepoImp.New(bucket, log, r.now),
		Videos:   videoRepoImp.New(bucket, log, r.now),
		lastSeen: r.now(),
	}
	r.sessions[clientID] = s
	log.Debug("session loaded")
	return s
}

// FromContext resolves the session of the client identified by the
// client middleware.
func (r *Registry) FromContext(c echo.Context) *Session {
	return r.For(middleware.ClientID(c))
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Evict drops sessions unused for longer than idle. Held sessions stay.
// Stored data is kept; the next request reloads it.
func (r *Registry) Evict(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-idle)
	n := 0
	for id, s := range r.sessions {
		if s.inUse == 0 && s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Start evicts idle sessions every interval until ctx is done. The returned
// channel is closed once the janitor has stopped.
func (r *Registry) Start(ctx context.Context, every, idle time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := r.Evict(idle); n > 0 {
					r.log.Info("evicted idle sessions", zap.Int("count", n))
				}
			}
		}
	}()
	return done
}
