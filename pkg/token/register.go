package token

import (
	"strings"
	"sync"

	"github.com/tidwall/btree"
)

// registry holds dynamically registered tokens.
// Dynamic tokens start after maxBuiltin (999) and are kept ordered by value
// so All() can list them without sorting.
var registry = struct {
	sync.RWMutex
	next     Token
	names    btree.Map[Token, string]
	keywords map[string]Token
}{
	next:     maxBuiltin,
	keywords: make(map[string]Token),
}

// Register registers a new dynamic token with the given name.
// This is used by dialects to register dialect-specific keywords
// like ILIKE or REGEXP.
//
// Registering a name twice returns the same token. Safe for concurrent use.
func Register(name string) Token {
	key := strings.ToUpper(name)

	registry.Lock()
	defer registry.Unlock()

	if t, ok := registry.keywords[key]; ok {
		return t
	}
	registry.next++
	t := registry.next
	registry.names.Set(t, key)
	registry.keywords[key] = t
	return t
}

// getDynamicName returns the name of a dynamic token.
func getDynamicName(t Token) (string, bool) {
	if !t.IsDynamic() {
		return "", false
	}
	registry.RLock()
	defer registry.RUnlock()
	return registry.names.Get(t)
}

// LookupDynamicKeyword returns the token for a dynamic keyword.
// Returns Invalid and false if the keyword is not registered.
func LookupDynamicKeyword(name string) (Token, bool) {
	registry.RLock()
	defer registry.RUnlock()
	if t, ok := registry.keywords[strings.ToUpper(name)]; ok {
		return t, true
	}
	return Invalid, false
}

// RegisteredTokens returns a copy of all registered dynamic tokens.
func RegisteredTokens() map[Token]string {
	registry.RLock()
	defer registry.RUnlock()
	result := make(map[Token]string, registry.names.Len())
	registry.names.Scan(func(t Token, name string) bool {
		result[t] = name
		return true
	})
	return result
}

func dynamicList() []Token {
	registry.RLock()
	defer registry.RUnlock()
	result := make([]Token, 0, registry.names.Len())
	registry.names.Scan(func(t Token, _ string) bool {
		result = append(result, t)
		return true
	})
	return result
}
