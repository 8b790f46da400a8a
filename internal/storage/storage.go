package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bilgisen/resourcehub/internal/models"
	"github.com/bilgisen/resourcehub/internal/normalize"
	"github.com/go-playground/validator/v10"
)

//go:embed fallback.json
var embeddedFallback []byte

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Fallback is the build-time list of resources served when the CMS has no
// record. It is read-only after loading.
type Fallback struct {
	resources []models.Resource
	bySlug    map[string]int
}

// NewFallback loads the fallback list from dir, or from the copy embedded in
// the binary when dir is empty.
func NewFallback(dir string) (*Fallback, error) {
	if dir == "" {
		return Parse(embeddedFallback)
	}
	return LoadDir(dir)
}

// LoadDir reads every .json file under dir. Each file holds one resource or
// an array of resources. Files are read in path order.
func LoadDir(dir string) (*Fallback, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking the path: %w", err)
	}
	sort.Strings(files)

	var all []models.Resource
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error reading file %s: %w", file, err)
		}
		items, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", file, err)
		}
		all = append(all, items...)
	}
	return build(all)
}

// Parse builds a Fallback from a JSON document holding one resource or an array.
func Parse(data []byte) (*Fallback, error) {
	items, err := decode(data)
	if err != nil {
		return nil, err
	}
	return build(items)
}

func decode(data []byte) ([]models.Resource, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var items []models.Resource
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var item models.Resource
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return []models.Resource{item}, nil
}

func build(items []models.Resource) (*Fallback, error) {
	v := newValidator()
	f := &Fallback{
		resources: make([]models.Resource, 0, len(items)),
		bySlug:    make(map[string]int, len(items)),
	}
	var errs []error
	for i, item := range items {
		if err := v.Struct(item); err != nil {
			errs = append(errs, fmt.Errorf("resource %d (%q): %w", i, item.Slug, err))
			continue
		}
		if !item.Type.Valid() {
			errs = append(errs, fmt.Errorf("resource %q: missing type", item.Slug))
			continue
		}
		if _, dup := f.bySlug[item.Slug]; dup {
			errs = append(errs, fmt.Errorf("duplicate slug %q", item.Slug))
			continue
		}
		f.bySlug[item.Slug] = len(f.resources)
		f.resources = append(f.resources, normalize.Canonical(item))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid fallback resources: %w", errors.Join(errs...))
	}
	return f, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// Get returns the resource with the given slug.
func (f *Fallback) Get(slug string) (models.Resource, bool) {
	i, ok := f.bySlug[slug]
	if !ok {
		return models.Resource{}, false
	}
	return f.resources[i], true
}

// All returns the resources in file order. The slice is a copy.
func (f *Fallback) All() []models.Resource {
	return append([]models.Resource(nil), f.resources...)
}

// Len reports how many resources were loaded.
func (f *Fallback) Len() int {
	return len(f.resources)
}
