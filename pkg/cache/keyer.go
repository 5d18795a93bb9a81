package cache

// RankKeyOpts are the options that change a ranking result.
type RankKeyOpts struct {
	Paths int `json:"paths"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string `json:"format"`
	Paths       int    `json:"paths,omitempty"`
	RenderPaths bool   `json:"render_paths,omitempty"`
	Highlight   bool   `json:"highlight,omitempty"`
	HideScores  bool   `json:"hide_scores,omitempty"`
}

// Keyer derives cache keys from a graph hash and options.
type Keyer interface {
	RankKey(graphHash string, opts RankKeyOpts) string
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "rank:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RankKey returns the key for a ranking of graphHash.
func (DefaultKeyer) RankKey(graphHash string, opts RankKeyOpts) string {
	return hashKey("rank", graphHash, opts)
}

// ArtifactKey returns the key for a rendering of graphHash.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer. The CLI scopes keys by
// release so that an upgrade never serves output of an older renderer.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (the default keyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RankKey returns the prefixed ranking key.
func (k *ScopedKeyer) RankKey(graphHash string, opts RankKeyOpts) string {
	return k.prefix + k.inner.RankKey(graphHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
