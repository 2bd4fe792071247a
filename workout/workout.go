// Package workout loads workout definitions from YAML or JSON files
package workout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/reps/internal/apperr"
	"github.com/ayoisaiah/reps/internal/models"
	"github.com/ayoisaiah/reps/internal/pathutil"
)

var (
	errUnsupportedFormat = &apperr.Error{
		Message: "%s: workout files must be .yml, .yaml or .json",
	}

	errParseWorkout = &apperr.Error{
		Message: "unable to parse workout file %s",
	}

	errNoWorkouts = &apperr.Error{
		Message: "no workout files found in %s",
	}
)

// Supported reports whether path has a workout file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml", ".json":
		return true
	}

	return false
}

// Load reads the workout at path. The file name (without extension) is used
// as the name and identifier when the file does not set them.
func Load(path string) (*models.Workout, error) {
	if !Supported(path) {
		return nil, errUnsupportedFormat.Fmt(path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var w models.Workout

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(b, &w)
	} else {
		err = yaml.Unmarshal(b, &w)
	}

	if err != nil {
		return nil, errParseWorkout.Fmt(path).Wrap(err)
	}

	base := pathutil.StripExtension(filepath.Base(path))

	if w.Name == "" {
		w.Name = base
	}

	if w.ID == "" {
		w.ID = base
	}

	return &w, nil
}

// List returns the workout files in dir in natural order.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errNoWorkouts.Fmt(dir)
		}

		return nil, err
	}

	var files []string

	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}

		files = append(files, filepath.Join(dir, e.Name()))
	}

	if len(files) == 0 {
		return nil, errNoWorkouts.Fmt(dir)
	}

	slices.SortFunc(files, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return 0
		}
	})

	return files, nil
}
