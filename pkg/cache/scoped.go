package cache

// ScopedKeyer wraps a Keyer with a prefix so several owners can share one
// backend without seeing each other's entries.
//
//	ownerKeyer := NewScopedKeyer(NewDefaultKeyer(), "owner:ada:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DocumentKey generates a prefixed document key.
func (k *ScopedKeyer) DocumentKey(store, name string) string {
	return k.prefix + k.inner.DocumentKey(store, name)
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(docHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
