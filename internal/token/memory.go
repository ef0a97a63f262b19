package token

import "sync"

// MemoryRepository is a map-backed store used by tests and by callers that
// operate outside an HTTP exchange.
type MemoryRepository struct {
	mu      sync.Mutex
	access  string
	refresh string
	user    User
	hasUser bool
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) AccessToken() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.access
}

func (r *MemoryRepository) RefreshToken() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refresh
}

func (r *MemoryRepository) User() (User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user, r.hasUser
}

func (r *MemoryRepository) SetTokens(access, refresh string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.access = access
	r.refresh = refresh
}

func (r *MemoryRepository) SetUser(u User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = u
	r.hasUser = true
}

func (r *MemoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.access = ""
	r.refresh = ""
	r.user = User{}
	r.hasUser = false
}
