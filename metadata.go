package pare

// Wire identity of each model. Versions are bumped whenever the layout
// changes; a version number is never reused for an incompatible layout.
const (
	singleModelName = "lzma_single_file"
	multiModelName  = "lzma_multi_stream"

	formatVersion = 1
)

// Metadata is the archive metadata document: written once at encode start,
// validated once at decode start, immutable thereafter.
type Metadata struct {
	Model   string `json:"model"`
	Version int    `json:"version"`
}
