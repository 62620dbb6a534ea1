package cache

// ScopedKeyer wraps a Keyer with a prefix so separate projects sharing one
// cache directory do not see each other's entries.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "curriculum-2024:")
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
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ReportKey generates a prefixed report key.
func (k *ScopedKeyer) ReportKey(treeHash, linkHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(treeHash, linkHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(reportKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(reportKey, opts)
}
