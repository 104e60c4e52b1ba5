package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Discover lists the healpix available under a data root. The release
// convention nests each healpix directory under a 3-character bucket
// (<root>/<bucket>/<healpix>), so the universe of pixels is the set of
// second-level subdirectory names. Names are returned sorted for a
// deterministic processing order.
func Discover(dataRoot string) ([]string, error) {
	buckets, err := os.ReadDir(dataRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot read data root %s: %w", dataRoot, err)
	}

	var healpixels []string
	for _, bucket := range buckets {
		if !bucket.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(dataRoot, bucket.Name()))
		if err != nil {
			return nil, fmt.Errorf("cannot read bucket %s: %w", bucket.Name(), err)
		}
		for _, e := range entries {
			if e.IsDir() {
				healpixels = append(healpixels, e.Name())
			}
		}
	}
	sort.Strings(healpixels)
	return healpixels, nil
}

// Select validates a requested subset against the discovered universe. An
// empty request selects everything. A requested healpix that was not
// discovered is a configuration error that must abort the run before any
// output scaffolding happens.
func Select(available, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return available, nil
	}
	universe := make(map[string]bool, len(available))
	for _, hp := range available {
		universe[hp] = true
	}
	for _, hp := range requested {
		if !universe[hp] {
			return nil, fmt.Errorf("healpix %s not available", hp)
		}
	}
	return requested, nil
}
