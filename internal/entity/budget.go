package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Budget is the price band of a restaurant.
type Budget int

const (
	BudgetLow Budget = iota + 1
	BudgetModerate
	BudgetHigh
)

var budgetNames = map[Budget]string{
	BudgetLow:      "LOW",
	BudgetModerate: "MODERATE",
	BudgetHigh:     "HIGH",
}

// Budgets lists every permitted value in ascending order.
func Budgets() []Budget {
	return []Budget{BudgetLow, BudgetModerate, BudgetHigh}
}

// ParseBudget resolves a budget from its name. Matching ignores case and
// surrounding whitespace.
func ParseBudget(s string) (Budget, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for b, n := range budgetNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("invalid budget %q", s)
}

// Valid reports whether b is one of the enumerated values.
func (b Budget) Valid() bool {
	_, ok := budgetNames[b]
	return ok
}

func (b Budget) String() string {
	if n, ok := budgetNames[b]; ok {
		return n
	}
	return fmt.Sprintf("Budget(%d)", int(b))
}

// MarshalJSON encodes the budget by name.
func (b Budget) MarshalJSON() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid budget %d", int(b))
	}
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts a budget name.
func (b *Budget) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("budget must be a string: %w", err)
	}
	parsed, err := ParseBudget(name)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Value stores the budget by name.
func (b Budget) Value() (driver.Value, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid budget %d", int(b))
	}
	return b.String(), nil
}

// Scan reads a budget stored by name.
func (b *Budget) Scan(src any) error {
	var name string
	switch v := src.(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Budget", src)
	}
	parsed, err := ParseBudget(name)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
