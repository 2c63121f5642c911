package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"moveide/internal/fixture"
)

// ConfigFileName is skipped when collecting fixtures.
const ConfigFileName = "moveide.toml"

// Fixtures lists the fixture paths Analyze would process for target, in
// processing order.
func Fixtures(target string) ([]string, error) {
	files, _, err := listFixtures(target)
	return files, err
}

// listFixtures returns the fixtures under target, sorted by path, and the
// directory paths are reported relative to.
func listFixtures(target string) (files []string, baseDir string, err error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if !info.IsDir() {
		if filepath.Ext(target) != fixture.Ext {
			return nil, "", fmt.Errorf("%s: expected a %s fixture or a directory", target, fixture.Ext)
		}
		return []string{target}, filepath.Dir(target), nil
	}

	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == ConfigFileName {
			return nil
		}
		if strings.HasSuffix(path, fixture.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	// Сортируем для детерминированного порядка слияния
	sort.Strings(files)
	return files, target, nil
}
