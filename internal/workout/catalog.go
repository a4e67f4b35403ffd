package workout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrRoutineNotFound = errors.New("routine not found")

//go:embed routines.yaml
var builtinRoutines []byte

type catalogFile struct {
	Routines []Routine `yaml:"routines"`
}

// Catalog holds the known routines, in declaration order.
type Catalog struct {
	routines []Routine
	byID     map[string]int
}

// LoadCatalog reads routines from path, or the built-in catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(builtinRoutines)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routines catalog: %w", err)
	}
	log.Debugf("loading routines catalog from: %s", path)
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal routines catalog: %w", err)
	}
	if len(file.Routines) == 0 {
		return nil, fmt.Errorf("%w: empty routines catalog", ErrInvalidConfig)
	}

	c := &Catalog{
		routines: make([]Routine, 0, len(file.Routines)),
		byID:     make(map[string]int, len(file.Routines)),
	}
	for _, r := range file.Routines {
		if r.ID == "" || r.Category == "" {
			return nil, fmt.Errorf("%w: routine %q needs an id and a category", ErrInvalidConfig, r.Name)
		}
		if _, exists := c.byID[r.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate routine id %s", ErrInvalidConfig, r.ID)
		}
		if _, err := r.Steps(); err != nil {
			return nil, err
		}
		c.byID[r.ID] = len(c.routines)
		c.routines = append(c.routines, r)
	}

	return c, nil
}

func (c *Catalog) Get(id string) (Routine, error) {
	i, ok := c.byID[id]
	if !ok {
		return Routine{}, fmt.Errorf("%w: %s", ErrRoutineNotFound, id)
	}
	return c.routines[i], nil
}

func (c *Catalog) List() []Routine {
	routines := make([]Routine, len(c.routines))
	copy(routines, c.routines)
	return routines
}
