package authcache

import (
	"github.com/dmitrymomot/chatkit/core/cache"
)

// AuthCache fronts the authentication flow with three independent bounded
// caches: validated-token results, user records, and an email-to-user-id
// index. Each namespace is a separate cache instance, so eviction pressure in
// one cannot starve another.
//
// T is the shape of a cached token-validation result and U the shape of a
// user record; both are opaque to the cache itself.
type AuthCache[T, U any] struct {
	tokens *cache.Cache[string, T]
	users  *cache.Cache[string, U]
	emails *cache.Cache[string, string]
}

// New creates an AuthCache from the given configuration, failing fast on
// invalid sizes or TTLs.
func New[T, U any](cfg Config) (*AuthCache[T, U], error) {
	tokens, err := cache.New[string, T](cfg.TokenCacheSize, cfg.TokenCacheTTL)
	if err != nil {
		return nil, err
	}
	users, err := cache.New[string, U](cfg.UserCacheSize, cfg.UserCacheTTL)
	if err != nil {
		return nil, err
	}
	emails, err := cache.New[string, string](cfg.EmailIndexSize, cfg.EmailIndexTTL)
	if err != nil {
		return nil, err
	}
	return &AuthCache[T, U]{tokens: tokens, users: users, emails: emails}, nil
}

// Token returns the cached validation result for a token.
func (a *AuthCache[T, U]) Token(token string) (T, bool) {
	return a.tokens.Get(token)
}

// SetToken caches a token-validation result under the namespace default TTL.
func (a *AuthCache[T, U]) SetToken(token string, result T) {
	a.tokens.Set(token, result)
}

// InvalidateToken drops a single token, e.g. on logout.
func (a *AuthCache[T, U]) InvalidateToken(token string) bool {
	return a.tokens.Delete(token)
}

// User returns the cached user record for an id.
func (a *AuthCache[T, U]) User(id string) (U, bool) {
	return a.users.Get(id)
}

// SetUser caches a user record and, when email is non-empty, indexes the
// email to the id for reverse lookups.
func (a *AuthCache[T, U]) SetUser(id, email string, user U) {
	a.users.Set(id, user)
	if email != "" {
		a.emails.Set(email, id)
	}
}

// UserByEmail resolves an email through the index and returns the cached
// record. A stale index entry whose user record was evicted reads as a miss.
func (a *AuthCache[T, U]) UserByEmail(email string) (U, bool) {
	id, ok := a.emails.Get(email)
	if !ok {
		var zero U
		return zero, false
	}
	return a.users.Get(id)
}

// InvalidateUser removes a user record and any email index entries pointing
// at it. Used when the underlying record changes or the account is disabled.
func (a *AuthCache[T, U]) InvalidateUser(id string, emails ...string) bool {
	removed := a.users.Delete(id)
	for _, email := range emails {
		a.emails.Delete(email)
	}
	return removed
}

// InvalidateAllTokens drops every cached token validation. Called on
// security events such as a signing-key rotation.
func (a *AuthCache[T, U]) InvalidateAllTokens() {
	a.tokens.Clear()
}

// InvalidateAll wipes all three namespaces.
func (a *AuthCache[T, U]) InvalidateAll() {
	a.tokens.Clear()
	a.users.Clear()
	a.emails.Clear()
}

// Prune evicts expired entries from every namespace and returns the total
// removed. Intended for a periodic maintenance ticker.
func (a *AuthCache[T, U]) Prune() int {
	return a.tokens.Prune() + a.users.Prune() + a.emails.Prune()
}

// Stats aggregates per-namespace cache metrics.
type Stats struct {
	Tokens cache.Stats
	Users  cache.Stats
	Emails cache.Stats
}

// Stats returns metrics for each namespace.
func (a *AuthCache[T, U]) Stats() Stats {
	return Stats{
		Tokens: a.tokens.Stats(),
		Users:  a.users.Stats(),
		Emails: a.emails.Stats(),
	}
}
