// Package fragments loads the image part pools dinos are assembled from.
// Pools are loaded once at startup and never mutated afterwards.
package fragments

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Pool suffixes on fragment file stems, e.g. "trex_b.png" is a body.
const (
	bodySuffix  = "_b"
	mouthSuffix = "_m"
	eyesSuffix  = "_e"
)

// Pools holds the fragment file paths per part category. The zero value is
// unusable; obtain one from Load.
type Pools struct {
	// Bodies are the body fragment paths
	Bodies []string

	// Mouths are the mouth fragment paths
	Mouths []string

	// Eyes are the eyes fragment paths
	Eyes []string
}

// Load reads a fragment directory and classifies files into pools by their
// stem suffix. It fails if the directory cannot be read or any pool would
// be empty, so a misconfigured deployment is caught at startup.
func Load(dir string) (*Pools, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read fragment directory %s: %w", dir, err)
	}

	pools := &Pools{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		switch {
		case strings.HasSuffix(Stem(path), bodySuffix):
			pools.Bodies = append(pools.Bodies, path)
		case strings.HasSuffix(Stem(path), mouthSuffix):
			pools.Mouths = append(pools.Mouths, path)
		case strings.HasSuffix(Stem(path), eyesSuffix):
			pools.Eyes = append(pools.Eyes, path)
		}
	}

	if len(pools.Bodies) == 0 {
		return nil, errors.New("fragment directory contains no body fragments")
	}
	if len(pools.Mouths) == 0 {
		return nil, errors.New("fragment directory contains no mouth fragments")
	}
	if len(pools.Eyes) == 0 {
		return nil, errors.New("fragment directory contains no eyes fragments")
	}

	return pools, nil
}

// Stem returns the file name without directory or extension
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
