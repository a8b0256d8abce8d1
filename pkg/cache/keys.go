package cache

// Keyer derives cache keys for rendered outputs.
type Keyer interface {
	// ArtifactKey keys one rendered artifact of a layout document.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	// IconKey keys a standalone person icon.
	IconKey(opts IconKeyOpts) string
}

// ArtifactKeyOpts lists every input besides the layout that changes an
// artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Scale    float64 `json:"scale"`
	OffsetX  float64 `json:"offset_x"`
	OffsetY  float64 `json:"offset_y"`
	Styled   bool    `json:"styled"`
	PNGScale float64 `json:"png_scale,omitempty"`
}

// IconKeyOpts identifies a person icon.
type IconKeyOpts struct {
	Format   string  `json:"format"`
	Size     float64 `json:"size"`
	Gender   string  `json:"gender"`
	Child    bool    `json:"child"`
	Deceased bool    `json:"deceased"`
	Styled   bool    `json:"styled"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// IconKey returns "icon:<hash>".
func (DefaultKeyer) IconKey(opts IconKeyOpts) string {
	return hashKey("icon", opts)
}
