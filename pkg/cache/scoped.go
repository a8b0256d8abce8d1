package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments or tenants can share one backend.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "kintree:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey returns the inner key with the prefix prepended.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// IconKey returns the inner key with the prefix prepended.
func (k *ScopedKeyer) IconKey(opts IconKeyOpts) string {
	return k.prefix + k.inner.IconKey(opts)
}
