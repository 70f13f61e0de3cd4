// loader.go - Load character configs from directories and .parrot bundles.
package config

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load reads the first of FileNames found in dir, applies defaults and
// validates the result.
func Load(dir string) (*Parrot, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", parrot.ErrLoad, path, err)
		}
		p, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		if p.Name == "" {
			p.Name = filepath.Base(dir)
		}
		p.Dir = dir
		if err := Validate(p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: no %s in %s", parrot.ErrConfig, strings.Join(FileNames, "|"), dir)
}

// Parse decodes a config file body. JSON is used for .json names, YAML
// otherwise.
func Parse(name string, data []byte) (*Parrot, error) {
	var p Parrot
	var err error
	if strings.EqualFold(filepath.Ext(name), ".json") {
		err = json.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", parrot.ErrConfig, name, err)
	}
	p.applyDefaults()
	return &p, nil
}

// LoadBundle opens a .parrot ZIP, extracts it to a temp directory and loads
// the character inside. The returned cleanup function removes the temp
// directory.
func LoadBundle(path string) (*Parrot, func(), error) {
	noop := func() {}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, noop, fmt.Errorf("%w: open %s: %v", parrot.ErrLoad, path, err)
	}
	defer r.Close()

	tmpDir, err := os.MkdirTemp("", "parrot-*")
	if err != nil {
		return nil, noop, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }

	if err := extractZip(&r.Reader, tmpDir); err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("%w: extract %s: %v", parrot.ErrLoad, path, err)
	}

	p, err := Load(tmpDir)
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	if p.Name == filepath.Base(tmpDir) {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	logger.Debugf("bundle %s extracted to %s", path, tmpDir)
	return p, cleanup, nil
}

// extractZip extracts all files from a zip reader into destDir.
func extractZip(r *zip.Reader, destDir string) error {
	for _, f := range r.File {
		target := filepath.Join(destDir, f.Name)

		// Guard against zip slip.
		if !strings.HasPrefix(filepath.Clean(target), filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal path in zip: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}
