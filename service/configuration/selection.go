package configuration

import (
	"fmt"
	"sort"
	"strconv"

	catalogEntity "catalog.GO/model/entity/catalog"
)

// Selection maps a configurable option ID to the chosen value ID.
type Selection map[uint]uint

// ParseSelection converts a JSON-style {"optionID": valueID} map.
func ParseSelection(raw map[string]uint) (Selection, error) {
	sel := make(Selection, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOption, k)
		}
		sel[uint(id)] = v
	}
	return sel, nil
}

// choice is one resolved entry of a selection.
type choice struct {
	option *catalogEntity.ConfigurableOption
	value  *catalogEntity.ConfigurableOptionValue
}

// graph is the option tree of one product, indexed for lookups.
type graph struct {
	product *catalogEntity.Product
	options []catalogEntity.ConfigurableOption
	byID    map[uint]*catalogEntity.ConfigurableOption
	byCode  map[string]*catalogEntity.ConfigurableOption
}

func newGraph(p *catalogEntity.Product, options []catalogEntity.ConfigurableOption) *graph {
	sort.SliceStable(options, func(i, j int) bool { return options[i].Position < options[j].Position })
	g := &graph{
		product: p,
		options: options,
		byID:    make(map[uint]*catalogEntity.ConfigurableOption, len(options)),
		byCode:  make(map[string]*catalogEntity.ConfigurableOption, len(options)),
	}
	for i := range options {
		o := &options[i]
		g.byID[o.ID] = o
		if code := o.Code(); code != "" {
			g.byCode[code] = o
		}
	}
	return g
}

// resolve checks sel against the graph and returns the choices in option
// position order.
func (g *graph) resolve(sel Selection) ([]choice, error) {
	for optID, valID := range sel {
		o, ok := g.byID[optID]
		if !ok {
			return nil, fmt.Errorf("%w: option %d on product %d", ErrUnknownOption, optID, g.product.ID)
		}
		if findValue(o, valID) == nil {
			return nil, fmt.Errorf("%w: value %d on option %s", ErrUnknownValue, valID, o.Code())
		}
	}
	out := make([]choice, 0, len(sel))
	for i := range g.options {
		o := &g.options[i]
		valID, ok := sel[o.ID]
		if !ok {
			continue
		}
		out = append(out, choice{option: o, value: findValue(o, valID)})
	}
	return out, nil
}

// chosenCodes maps option code to the chosen value code.
func chosenCodes(choices []choice) map[string]string {
	out := make(map[string]string, len(choices))
	for _, c := range choices {
		out[c.option.Code()] = c.value.Code()
	}
	return out
}

func findValue(o *catalogEntity.ConfigurableOption, valueID uint) *catalogEntity.ConfigurableOptionValue {
	for i := range o.Values {
		if o.Values[i].ID == valueID {
			return &o.Values[i]
		}
	}
	return nil
}

// selectionByCodes turns {"color": "red"} into option/value IDs.
func (g *graph) selectionByCodes(codes map[string]string) (Selection, error) {
	sel := make(Selection, len(codes))
	for optCode, valCode := range codes {
		o, ok := g.byCode[optCode]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOption, optCode)
		}
		found := false
		for i := range o.Values {
			if o.Values[i].Code() == valCode {
				sel[o.ID] = o.Values[i].ID
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q on option %q", ErrUnknownValue, valCode, optCode)
		}
	}
	return sel, nil
}
