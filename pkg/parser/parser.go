package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wonderfulspam/setup-smith/pkg/value"
)

// ModelKey is the top-level key naming the car a setup belongs to.
const ModelKey = "carName"

var ErrRootNotMap = errors.New("setup root is not a map")

// Parse decodes a setup document. Setup files are JSON; documents that are
// not valid JSON are retried as YAML so hand-written setups work too.
func Parse(id string, data []byte) (*Setup, error) {
	raw, err := decodeJSON(data)
	if err != nil {
		if yamlErr := yaml.Unmarshal(data, &raw); yamlErr != nil {
			return nil, fmt.Errorf("failed to parse setup as JSON or YAML: %w", errors.Join(err, yamlErr))
		}
	}

	root, err := value.FromInterface(raw)
	if err != nil {
		return nil, fmt.Errorf("converting setup: %w", err)
	}
	if root.Kind() != value.KindMap {
		return nil, fmt.Errorf("%w: got %s", ErrRootNotMap, root.Kind())
	}

	return New(id, "", root), nil
}

// decodeJSON decodes exactly one JSON document, keeping integers exact.
func decodeJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the JSON document")
	}
	return raw, nil
}

// ParseFile reads and parses the setup at path, using the base file name as
// its ID.
func ParseFile(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading setup file: %w", err)
	}

	setup, err := Parse(filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	setup.Path = path
	return setup, nil
}

func modelOf(root value.Value) string {
	name, ok := root.Get(ModelKey)
	if !ok {
		return ""
	}
	text, _ := name.AsText()
	return text
}

var (
	tokenSeparator     = regexp.MustCompile(`[^a-z0-9]+`)
	temperaturePattern = regexp.MustCompile(`^([at])(\d{2})$`)
)

// ParseTemperatures extracts "a<NN>" (ambient) and "t<NN>" (track) tokens
// from a setup file name. Tokens are separated by anything that is not a
// letter or digit; the first occurrence of each wins.
func ParseTemperatures(name string) Temperatures {
	var temps Temperatures
	base := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))

	for _, token := range tokenSeparator.Split(base, -1) {
		m := temperaturePattern.FindStringSubmatch(token)
		if m == nil {
			continue
		}
		deg, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		switch m[1] {
		case "a":
			if temps.Ambient == nil {
				temps.Ambient = &deg
			}
		case "t":
			if temps.Track == nil {
				temps.Track = &deg
			}
		}
	}
	return temps
}
