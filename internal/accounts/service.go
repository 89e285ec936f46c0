package accounts

import (
	"fmt"
	"os"
	"strings"

	"github.com/cleared-dev/prepaid/internal/model"
)

// Service maps item names to account pairs loaded from account-map.csv.
// Items without a mapping fall back to positional codes.
type Service struct {
	mappings []Mapping
	byItem   map[string]model.AccountPair
}

// NewService creates a Service from a slice of mappings. Item names match
// case-insensitively; a later mapping for the same item wins.
func NewService(mappings []Mapping) *Service {
	byItem := make(map[string]model.AccountPair, len(mappings))
	for _, m := range mappings {
		byItem[itemKey(m.Item)] = model.AccountPair{Expense: m.Expense, Prepayment: m.Prepayment}
	}
	return &Service{mappings: mappings, byItem: byItem}
}

// Load reads an account map CSV file and returns a Service.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening account map: %w", err)
	}
	defer f.Close()

	mappings, err := ReadMappings(f)
	if err != nil {
		return nil, fmt.Errorf("reading account map %s: %w", path, err)
	}
	return NewService(mappings), nil
}

// Accounts implements Mapper.
func (s *Service) Accounts(item model.PrepaidItem, ordinal int) model.AccountPair {
	if pair, ok := s.Get(item.Name); ok {
		return pair
	}
	return PositionalPair(ordinal)
}

// Get returns the mapped pair for an item name.
func (s *Service) Get(item string) (model.AccountPair, bool) {
	p, ok := s.byItem[itemKey(item)]
	return p, ok
}

// All returns all mappings in file order.
func (s *Service) All() []Mapping {
	return s.mappings
}

// Save writes the mappings to path.
func (s *Service) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating account map file: %w", err)
	}
	defer f.Close()

	if err := WriteMappings(f, s.mappings); err != nil {
		return fmt.Errorf("writing account map: %w", err)
	}
	return nil
}

func itemKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
