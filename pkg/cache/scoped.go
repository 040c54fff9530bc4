package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or
// releases can share one backend without colliding.
//
// Example usage:
//
//	// One keyspace per release
//	keyer := NewScopedKeyer(NewDefaultKeyer(), buildinfo.Version+":")
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

// RecipeKey generates a prefixed recipe key.
func (k *ScopedKeyer) RecipeKey(recipeHash string) string {
	return k.prefix + k.inner.RecipeKey(recipeHash)
}

// ShapeKey generates a prefixed shape key.
func (k *ScopedKeyer) ShapeKey(kind string, opts ShapeKeyOpts) string {
	return k.prefix + k.inner.ShapeKey(kind, opts)
}

// ComposeKey generates a prefixed compose key.
func (k *ScopedKeyer) ComposeKey(recipeHash string) string {
	return k.prefix + k.inner.ComposeKey(recipeHash)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(gridHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(gridHash, opts)
}
