package arch_test

import (
	"path/filepath"
	"testing"
)

// layers assigns each internal package to a numeric layer. Lower layers are
// more foundational; higher layers may depend on lower ones but not vice versa.
// A package at layer N may only import packages at layer N or below.
var layers = map[string]int{
	"calendar":  0,
	"dag":       0,
	"telemetry": 0,
	"config":    0,

	"schedule": 1,
	"store":    1,

	"plan": 2,

	"ui": 3,

	"tui": 4,
}

// TestDependencyLayering verifies that no internal package imports a package
// from a higher layer, enforcing the project's dependency DAG.
func TestDependencyLayering(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)

	for _, pkg := range internalPackages(t) {
		importerLayer, ok := layers[pkg]
		if !ok {
			// Unknown packages are caught by TestNoUnknownPackages.
			continue
		}

		imports := importsOf(t, filepath.Join(dir, pkg))
		for _, imp := range imports {
			importedLayer, ok := layers[imp]
			if !ok {
				continue
			}

			if importerLayer >= importedLayer {
				// Legal: same layer or importing from below.
				continue
			}

			t.Errorf("layer violation: %s (layer %d) imports %s (layer %d)",
				pkg, importerLayer, imp, importedLayer)
		}
	}
}

// TestNoUnknownPackages verifies that every internal package has an assigned
// layer. This forces developers to place new packages in the dependency DAG.
func TestNoUnknownPackages(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		if _, ok := layers[pkg]; !ok {
			t.Errorf("package %s has no layer assignment; add it to the layers map", pkg)
		}
	}
}
