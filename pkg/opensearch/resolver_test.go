package opensearch

import (
	"testing"
)

func TestResolverCachesClientsPerCluster(t *testing.T) {
	r := NewResolver(Conn{URL: "https://default:9200", Username: "admin", Password: "admin"})

	a, err := r.Resolve(Conn{})
	if err != nil {
		t.Fatalf("resolve default: %v", err)
	}
	b, err := r.Resolve(Conn{})
	if err != nil {
		t.Fatalf("resolve default again: %v", err)
	}
	if a != b {
		t.Error("expected the same cached client for the default cluster")
	}

	c, err := r.Resolve(Conn{URL: "https://other:9200"})
	if err != nil {
		t.Fatalf("resolve override: %v", err)
	}
	if c == a {
		t.Error("expected a distinct client for an overridden cluster URL")
	}
	if c.(*Client).URL() != "https://other:9200" {
		t.Errorf("override client has URL %q", c.(*Client).URL())
	}
}

func TestResolverCredentialOverrideGetsOwnClient(t *testing.T) {
	r := NewResolver(Conn{URL: "https://default:9200", Username: "admin", Password: "admin"})

	a, err := r.Resolve(Conn{})
	if err != nil {
		t.Fatalf("resolve default: %v", err)
	}
	b, err := r.Resolve(Conn{Username: "readonly", Password: "pw"})
	if err != nil {
		t.Fatalf("resolve with credentials: %v", err)
	}
	if a == b {
		t.Error("distinct credentials must not share a cached client")
	}
}

func TestConnForScopesDefaultCredentialsToDefaultCluster(t *testing.T) {
	r := NewResolver(Conn{URL: "https://default:9200", Username: "admin", Password: "secret", Insecure: true})

	t.Run("no override keeps defaults", func(t *testing.T) {
		got := r.connFor(Conn{})
		if got.Username != "admin" || got.Password != "secret" || !got.Insecure {
			t.Errorf("defaults not applied: %+v", got)
		}
	})

	t.Run("same URL keeps defaults", func(t *testing.T) {
		got := r.connFor(Conn{URL: "https://default:9200"})
		if got.Username != "admin" || got.Password != "secret" {
			t.Errorf("defaults not applied for default URL: %+v", got)
		}
	})

	t.Run("different URL gets no default credentials", func(t *testing.T) {
		got := r.connFor(Conn{URL: "https://other:9200"})
		if got.Username != "" || got.Password != "" {
			t.Errorf("default credentials sent to non-default cluster: %+v", got)
		}
		if got.Insecure {
			t.Error("TLS relaxation must not carry over to a non-default cluster")
		}
	})

	t.Run("different URL with explicit credentials", func(t *testing.T) {
		got := r.connFor(Conn{URL: "https://other:9200", Username: "alice", Password: "pw"})
		if got.Username != "alice" || got.Password != "pw" {
			t.Errorf("explicit credentials not applied: %+v", got)
		}
	})
}
