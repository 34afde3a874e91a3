package opensearch

import (
	"sync"
)

// Resolver maps per-invocation connection overrides onto cached clients.
// Clients are created on first use and reused for the process lifetime;
// the cache is keyed by cluster URL and username so invocations against
// distinct clusters never share credentials.
type Resolver struct {
	defaults Conn

	mu      sync.Mutex
	clients map[string]*Client
}

func NewResolver(defaults Conn) *Resolver {
	return &Resolver{
		defaults: defaults,
		clients:  make(map[string]*Client),
	}
}

// Resolve returns a client for the target cluster. Empty override fields
// fall back to the configured defaults, except that default credentials are
// never sent to a cluster other than the default one.
func (r *Resolver) Resolve(override Conn) (API, error) {
	conn := r.connFor(override)

	key := conn.URL + "|" + conn.Username

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients[key]; ok {
		return c, nil
	}
	c, err := NewClient(conn)
	if err != nil {
		return nil, err
	}
	r.clients[key] = c
	return c, nil
}

// connFor merges an override with the defaults. An override pointing at a
// different URL starts from a bare connection so the default username,
// password, and TLS relaxation stay scoped to the default cluster.
func (r *Resolver) connFor(override Conn) Conn {
	conn := r.defaults
	if override.URL != "" && override.URL != r.defaults.URL {
		conn = Conn{URL: override.URL}
	}
	if override.Username != "" {
		conn.Username = override.Username
		conn.Password = override.Password
	}
	return conn
}
