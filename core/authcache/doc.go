// Package authcache applies the bounded cache to the authentication flow,
// short-circuiting repeated token validations and user lookups before they
// reach the persistence layer.
//
// Three independent namespaces are maintained: validated-token results keyed
// by token, user records keyed by user id, and an email-to-id index for
// reverse lookups. Mass invalidation (InvalidateAllTokens, InvalidateAll)
// supports security events like credential rotation, where every cached
// validation must be revoked at once.
//
// The cached shapes are type parameters; what a "token result" or "user
// record" looks like is the caller's concern, not the cache's:
//
//	type TokenClaims struct {
//		UserID    string
//		ExpiresAt time.Time
//	}
//
//	ac, err := authcache.New[TokenClaims, *User](cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ac.SetToken(rawToken, claims)
//	ac.SetUser(user.ID, user.Email, user)
//
//	if claims, ok := ac.Token(rawToken); ok {
//		// skip signature verification and the user store round trip
//	}
package authcache
