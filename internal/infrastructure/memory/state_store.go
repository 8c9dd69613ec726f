// Package memory implementa StateStore en memoria, para desarrollo local y tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/autoparts-storefront/internal/domain/repository"
)

var _ repository.StateStore = (*StateStore)(nil)

type session struct {
	values    map[string]string
	touchedAt time.Time
}

// StateStore guarda las sesiones en un mapa protegido por mutex.
// Si ttl > 0 una goroutine elimina las sesiones inactivas hasta que se llame Close.
type StateStore struct {
	mu        sync.RWMutex
	sessions  map[string]*session
	ttl       time.Duration
	now       func() time.Time
	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewStateStore construye el store. ttl <= 0 desactiva la expiración.
func NewStateStore(ttl time.Duration) *StateStore {
	s := &StateStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		s.wg.Add(1)
		go s.cleanupLoop()
	}
	return s
}

// Get obtiene el valor de una clave de la sesión.
func (s *StateStore) Get(_ context.Context, sessionID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok || s.expired(sess) {
		return "", false, nil
	}
	v, ok := sess.values[key]
	return v, ok, nil
}

// Set guarda el valor y marca actividad en la sesión.
func (s *StateStore) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || s.expired(sess) {
		sess = &session{values: make(map[string]string)}
		s.sessions[sessionID] = sess
	}
	sess.values[key] = value
	sess.touchedAt = s.now()
	return nil
}

// Delete elimina las claves indicadas.
func (s *StateStore) Delete(_ context.Context, sessionID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		for _, k := range keys {
			delete(sess.values, k)
		}
	}
	return nil
}

// Clear elimina la sesión completa.
func (s *StateStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len devuelve la cantidad de sesiones vivas.
func (s *StateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sess := range s.sessions {
		if !s.expired(sess) {
			n++
		}
	}
	return n
}

// Close detiene la limpieza en segundo plano.
func (s *StateStore) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
}

func (s *StateStore) expired(sess *session) bool {
	return s.ttl > 0 && s.now().Sub(sess.touchedAt) > s.ttl
}

func (s *StateStore) cleanupLoop() {
	defer s.wg.Done()
	interval := s.ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.purge()
		case <-s.stop:
			return
		}
	}
}

func (s *StateStore) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
		}
	}
}
