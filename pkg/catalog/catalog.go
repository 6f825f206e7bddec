// Package catalog finds saved setups in the game's setup folder, which is
// laid out as <car>/<track>/<setup>.json.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wonderfulspam/setup-smith/pkg/parser"
)

var ErrNotFound = errors.New("not found")

// SetupExt is the extension of setup files the game writes.
const SetupExt = ".json"

// Car is one car folder.
type Car struct {
	// ID is the folder name, which is also the model identifier.
	ID string `json:"id" yaml:"id"`
	// Name is the ID with underscores shown as spaces.
	Name string `json:"name" yaml:"name"`
}

// DisplayName turns a model identifier into something readable.
func DisplayName(model string) string {
	return strings.ReplaceAll(model, "_", " ")
}

// Catalog reads one setups directory. It holds no state beyond the root, so
// every call sees the folder as it is on disk.
type Catalog struct {
	root string
}

// Open checks that dir is a directory.
func Open(dir string) (*Catalog, error) {
	if !dirExists(dir) {
		return nil, fmt.Errorf("setups directory %s: %w", dir, ErrNotFound)
	}
	return &Catalog{root: dir}, nil
}

func (c *Catalog) Root() string { return c.root }

// Cars lists the car folders in name order.
func (c *Catalog) Cars() ([]Car, error) {
	names, err := listDirs(c.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read setups directory: %w", err)
	}

	cars := make([]Car, 0, len(names))
	for _, name := range names {
		cars = append(cars, Car{ID: name, Name: DisplayName(name)})
	}
	return cars, nil
}

// Tracks lists the track folders of car.
func (c *Catalog) Tracks(car string) ([]string, error) {
	dir, err := c.dir(car)
	if err != nil {
		return nil, err
	}
	tracks, err := listDirs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracks for %s: %w", car, err)
	}
	return tracks, nil
}

// Setups lists the setup file names saved for car on track.
func (c *Catalog) Setups(car, track string) ([]string, error) {
	dir, err := c.dir(car, track)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read setups for %s/%s: %w", car, track, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), SetupExt) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// Path returns where a setup lives without checking that it exists.
func (c *Catalog) Path(car, track, file string) string {
	return filepath.Join(c.root, car, track, file)
}

// Load parses one setup. The car folder name is used as the model when the
// file does not declare one.
func (c *Catalog) Load(car, track, file string) (*parser.Setup, error) {
	if err := checkName(file); err != nil {
		return nil, err
	}
	if _, err := c.dir(car, track); err != nil {
		return nil, err
	}

	path := c.Path(car, track, file)
	if !fileExists(path) {
		return nil, fmt.Errorf("setup %s/%s/%s: %w", car, track, file, ErrNotFound)
	}

	setup, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if setup.Model == "" {
		setup.Model = car
	}
	return setup, nil
}

// LoadAll parses every setup for car on track, in file name order.
func (c *Catalog) LoadAll(car, track string) ([]*parser.Setup, error) {
	files, err := c.Setups(car, track)
	if err != nil {
		return nil, err
	}

	setups := make([]*parser.Setup, 0, len(files))
	for _, file := range files {
		setup, err := c.Load(car, track, file)
		if err != nil {
			return nil, err
		}
		setups = append(setups, setup)
	}
	return setups, nil
}

// dir resolves names below the root, refusing anything that would step
// outside it.
func (c *Catalog) dir(names ...string) (string, error) {
	for _, name := range names {
		if err := checkName(name); err != nil {
			return "", err
		}
	}
	dir := filepath.Join(append([]string{c.root}, names...)...)
	if !dirExists(dir) {
		return "", fmt.Errorf("%s: %w", strings.Join(names, "/"), ErrNotFound)
	}
	return dir, nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid name %q: %w", name, ErrNotFound)
	}
	return nil
}

func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
