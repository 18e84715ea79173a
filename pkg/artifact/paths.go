package artifact

import (
	"path/filepath"

	"github.com/NVIDIA/housing-price-predictor/pkg/defaults"
)

// Paths locates the four artifact files. File names are resolved against
// Dir unless they are absolute.
type Paths struct {
	Dir         string
	Model       string
	Scaler      string
	Columns     string
	Categorical string
}

// DefaultPaths returns the default artifact file names inside dir.
// An empty dir means defaults.ArtifactsDir.
func DefaultPaths(dir string) Paths {
	if dir == "" {
		dir = defaults.ArtifactsDir
	}
	return Paths{
		Dir:         dir,
		Model:       defaults.ModelFile,
		Scaler:      defaults.ScalerFile,
		Columns:     defaults.ColumnsFile,
		Categorical: defaults.CategoricalColumnsFile,
	}
}

func (p Paths) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.Dir, name)
}

// ModelPath returns the resolved model document path.
func (p Paths) ModelPath() string { return p.resolve(p.Model) }

// ScalerPath returns the resolved scaler document path.
func (p Paths) ScalerPath() string { return p.resolve(p.Scaler) }

// ColumnsPath returns the resolved feature schema path.
func (p Paths) ColumnsPath() string { return p.resolve(p.Columns) }

// CategoricalPath returns the resolved categorical column list path.
func (p Paths) CategoricalPath() string { return p.resolve(p.Categorical) }

type namedPath struct {
	name string
	path string
}

// files lists every artifact in load order with its logical name.
func (p Paths) files() []namedPath {
	return []namedPath{
		{name: "model", path: p.ModelPath()},
		{name: "scaler", path: p.ScalerPath()},
		{name: "columns", path: p.ColumnsPath()},
		{name: "categorical columns", path: p.CategoricalPath()},
	}
}
