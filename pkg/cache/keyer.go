package cache

// Keyer builds cache keys for the pipeline stages. Keys must be stable:
// identical inputs always produce identical keys, and any option that
// changes stage output must be part of the key.
type Keyer interface {
	// PlanKey generates a key for a generated plan document.
	// inputHash identifies the building inputs (footprints + heights).
	PlanKey(inputHash string, opts PlanKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	// planHash identifies the plan document the artifact was rendered from.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// PlanKeyOpts captures every generation option that affects plan output.
type PlanKeyOpts struct {
	Seed          int64
	DoorDensity   float64
	WindowDensity float64
	EdgeSpacing   float64
	DoorSpacing   float64
	WindowSpacing float64
	CornerWidth   float64

	// Extra flows into property bundles, so it changes plan output.
	// JSON encoding sorts map keys, keeping the hash stable.
	Extra map[string]string
}

// ArtifactKeyOpts captures every render option that affects artifact bytes.
type ArtifactKeyOpts struct {
	Format     string
	Style      string
	Scale      float64
	Floor      int
	ShowLabels bool
	ShowGrid   bool
}

// DefaultKeyer is the standard key builder.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key builder.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key for a generated plan document.
func (k *DefaultKeyer) PlanKey(inputHash string, opts PlanKeyOpts) string {
	return hashKey("plan", inputHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
