package cache

// ShapeKeyOpts holds everything besides the kind that changes a rendered
// shape.
type ShapeKeyOpts struct {
	Params     map[string]any
	Decorator  string
	DecorArgs  map[string]any
	Transforms []string
}

// ArtifactKeyOpts selects an exported rendition of a grid.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer derives cache keys.
type Keyer interface {
	// RecipeKey keys the output of a recipe by the hash of its canonical JSON.
	RecipeKey(recipeHash string) string
	// ShapeKey keys a single rendered shape.
	ShapeKey(kind string, opts ShapeKeyOpts) string
	// ComposeKey keys a composed shape recipe by the hash of its canonical JSON.
	ComposeKey(recipeHash string) string
	// ArtifactKey keys an exported artifact by the hash of the grid text.
	ArtifactKey(gridHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "type:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RecipeKey implements Keyer.
func (DefaultKeyer) RecipeKey(recipeHash string) string {
	return hashKey(KeyTypeRecipe, recipeHash)
}

// ShapeKey implements Keyer. Map params are hashed through encoding/json,
// which sorts keys, so equal params give equal keys.
func (DefaultKeyer) ShapeKey(kind string, opts ShapeKeyOpts) string {
	return hashKey(KeyTypeShape, kind, opts.Params, opts.Decorator, opts.DecorArgs, opts.Transforms)
}

// ComposeKey implements Keyer.
func (DefaultKeyer) ComposeKey(recipeHash string) string {
	return hashKey(KeyTypeCompose, recipeHash)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(gridHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, gridHash, opts.Format)
}
