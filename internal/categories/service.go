package categories

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maple-budget/maple/internal/model"
)

// Service provides in-memory lookup over the category catalogue.
type Service struct {
	cats []Category
	byID map[string]Category
}

// NewService creates a Service from a slice of categories.
func NewService(cats []Category) *Service {
	byID := make(map[string]Category, len(cats))
	for _, c := range cats {
		byID[strings.ToLower(c.ID)] = c
	}
	return &Service{cats: cats, byID: byID}
}

// Load reads a categories CSV. A missing file yields the built-in defaults.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewService(Defaults()), nil
		}
		return nil, fmt.Errorf("opening categories: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return NewService(cats), nil
}

// Save writes the catalogue to path.
func (s *Service) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating categories dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating categories file: %w", err)
	}
	defer f.Close()

	if err := WriteCategories(f, s.cats); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}

// All returns all categories.
func (s *Service) All() []Category {
	return s.cats
}

// Get returns a category by ID or, failing that, by name. Lookups ignore case.
func (s *Service) Get(key string) (Category, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if c, ok := s.byID[k]; ok {
		return c, true
	}
	for _, c := range s.cats {
		if strings.ToLower(c.Name) == k {
			return c, true
		}
	}
	return Category{}, false
}

// ByType returns all categories of the given item type.
func (s *Service) ByType(t model.ItemType) []Category {
	var result []Category
	for _, c := range s.cats {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// IsTaxable reports whether income in the named category is taxable.
// Unknown categories are treated as taxable.
func (s *Service) IsTaxable(category string) bool {
	c, ok := s.Get(category)
	if !ok || c.Type != model.ItemIncome {
		return true
	}
	return c.Taxable
}

// Match returns the first category of type t with a keyword in description.
func (s *Service) Match(description string, t model.ItemType) (Category, bool) {
	desc := strings.ToUpper(description)
	for _, c := range s.cats {
		if c.Type != t {
			continue
		}
		for _, k := range c.Keywords {
			if strings.Contains(desc, k) {
				return c, true
			}
		}
	}
	return Category{}, false
}

// Fallback returns the catch-all category for t.
func (s *Service) Fallback(t model.ItemType) Category {
	id := "other_expense"
	if t == model.ItemIncome {
		id = "other_income"
	}
	if c, ok := s.byID[id]; ok {
		return c
	}
	return Category{ID: id, Name: "Other", Type: t}
}
