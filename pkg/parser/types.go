package parser

import (
	"github.com/wonderfulspam/setup-smith/pkg/value"
)

// Setup is one saved car setup: the parsed JSON tree plus what is known
// about where it came from.
type Setup struct {
	// ID labels the setup in comparison output, usually the file name.
	ID string `json:"id" yaml:"id"`
	// Path is the file the setup was read from, empty for in-memory setups.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Model is the car model identifier declared by the file's carName.
	Model        string       `json:"model" yaml:"model"`
	Temperatures Temperatures `json:"temperatures" yaml:"temperatures"`
	Root         value.Value  `json:"-" yaml:"-"`
}

// Temperatures are read from the file name, e.g. "quali a27 t33.json".
type Temperatures struct {
	Ambient *int `json:"ambient,omitempty" yaml:"ambient,omitempty"`
	Track   *int `json:"track,omitempty" yaml:"track,omitempty"`
}

// New wraps an in-memory tree. The model is taken from the root's carName
// when it is not given.
func New(id, model string, root value.Value) *Setup {
	if model == "" {
		model = modelOf(root)
	}
	return &Setup{
		ID:           id,
		Model:        model,
		Root:         root,
		Temperatures: ParseTemperatures(id),
	}
}
