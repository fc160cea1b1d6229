package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryStore guarda as sessões em memória. É o equivalente servidor do
// localStorage da aba: sobrevive a navegações, não sobrevive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionData
	ttl      time.Duration
}

type sessionData struct {
	values   map[string]json.RawMessage
	lastSeen time.Time
}

// NewMemoryStore cria o store com expiração por inatividade.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*sessionData),
		ttl:      ttl,
	}

	go s.cleanup()
	return s
}

func (s *MemoryStore) Put(ctx context.Context, sid, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("erro ao serializar %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sid]
	if !ok {
		sess = &sessionData{values: make(map[string]json.RawMessage)}
		s.sessions[sid] = sess
	}

	sess.values[key] = raw
	sess.lastSeen = time.Now()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, sid, key string, dest any) (bool, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sid]
	if !ok {
		s.mu.Unlock()
		return false, nil
	}

	raw, ok := sess.values[key]
	sess.lastSeen = time.Now()
	s.mu.Unlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// Conteúdo podre não pode derrubar a view: o caller trata como ausente.
		return false, fmt.Errorf("erro ao desserializar %s: %w", key, err)
	}

	return true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sid, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sid]; ok {
		delete(sess.values, key)
	}
	return nil
}

func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for sid, sess := range s.sessions {
			if now.Sub(sess.lastSeen) > s.ttl {
				delete(s.sessions, sid)
			}
		}
		s.mu.Unlock()
	}
}
