package Payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"AtlasHR/Models"
)

var hundred = decimal.NewFromInt(100)

// ResolvedComponents is the evaluated component graph for one slip.
type ResolvedComponents struct {
	Earnings   decimal.Decimal
	Deductions decimal.Decimal
	// Amounts is indexed by component id so percentage references can be
	// audited against the slip.
	Amounts map[uint]decimal.Decimal
}

// ResolveComponents evaluates the active salary components against the basic
// salary. Percentage components are resolved in topological order of their
// id references; when no such order exists the graph is rejected rather than
// partially evaluated.
func ResolveComponents(components []Models.SalaryComponent, basic decimal.Decimal) (*ResolvedComponents, error) {
	order, err := topoOrder(components)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedComponents{
		Earnings:   decimal.Zero,
		Deductions: decimal.Zero,
		Amounts:    make(map[uint]decimal.Decimal, len(components)),
	}

	for _, idx := range order {
		component := components[idx]
		var amount decimal.Decimal
		if component.IsFixed {
			amount = component.Amount
		} else {
			base := basic
			if component.PercentageOfID != nil {
				base = resolved.Amounts[*component.PercentageOfID]
			}
			amount = base.Mul(component.Percentage).Div(hundred)
		}
		amount = amount.RoundBank(2)
		resolved.Amounts[component.ID] = amount

		switch component.ComponentType {
		case Models.ComponentDeductions:
			resolved.Deductions = resolved.Deductions.Add(amount)
		default:
			resolved.Earnings = resolved.Earnings.Add(amount)
		}
	}
	return resolved, nil
}

// ValidateComponentGraph runs the ordering check alone, for use before a
// component definition is accepted.
func ValidateComponentGraph(components []Models.SalaryComponent) error {
	_, err := topoOrder(components)
	return err
}

// topoOrder returns indices into components in dependency order (Kahn). The
// graph is arena-indexed: references resolve through an id -> index map so a
// dangling reference is caught here instead of at lookup time.
func topoOrder(components []Models.SalaryComponent) ([]int, error) {
	byID := make(map[uint]int, len(components))
	for i, component := range components {
		byID[component.ID] = i
	}

	indegree := make([]int, len(components))
	dependents := make([][]int, len(components))
	for i, component := range components {
		if component.IsFixed || component.PercentageOfID == nil {
			continue
		}
		ref, ok := byID[*component.PercentageOfID]
		if !ok {
			return nil, NewError(KindCyclicComponentReference, 0, 0, 0,
				fmt.Sprintf("component %q references unknown component id %d", component.Name, *component.PercentageOfID))
		}
		indegree[i]++
		dependents[ref] = append(dependents[ref], i)
	}

	var queue []int
	for i := range components {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	var order []int
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		order = append(order, idx)
		for _, dep := range dependents[idx] {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != len(components) {
		var cyclic []string
		for i := range components {
			if indegree[i] > 0 {
				cyclic = append(cyclic, components[i].Name)
			}
		}
		return nil, NewError(KindCyclicComponentReference, 0, 0, 0,
			fmt.Sprintf("components cannot be ordered: %v", cyclic))
	}
	return order, nil
}
