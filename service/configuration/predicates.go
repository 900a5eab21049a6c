package configuration

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"

	catalogEntity "catalog.GO/model/entity/catalog"
)

// PredicateInput is what a validation/custom rule sees.
type PredicateInput struct {
	Product *catalogEntity.Product
	Rule    *catalogEntity.ConfigurationRule
	// Chosen maps option code to chosen value code.
	Chosen map[string]string
}

// Params decodes the rule's Conditions into out.
func (in PredicateInput) Params(out interface{}) error {
	return DecodeConditions(in.Rule, out)
}

// Predicate reports whether the selection passes a custom rule.
type Predicate func(ctx context.Context, in PredicateInput) (bool, error)

// Predicates holds custom rule evaluators keyed by ConfigurationRule.CustomValidation.
type Predicates struct {
	mu sync.RWMutex
	m  map[string]Predicate
}

func NewPredicates() *Predicates {
	return &Predicates{m: make(map[string]Predicate)}
}

// DefaultPredicates is what extensions register into.
var DefaultPredicates = NewPredicates()

func (p *Predicates) Register(key string, fn Predicate) {
	p.mu.Lock()
	p.m[key] = fn
	p.mu.Unlock()
}

func (p *Predicates) Lookup(key string) (Predicate, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	fn, ok := p.m[key]
	return fn, ok
}

// DecodeConditions maps the JSON Conditions column onto out using
// mapstructure, with weak typing so "3" decodes into an int field.
func DecodeConditions(rule *catalogEntity.ConfigurationRule, out interface{}) error {
	if rule == nil || len(rule.Conditions) == 0 {
		return nil
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(rule.Conditions, &raw); err != nil {
		return fmt.Errorf("rule %d conditions: %w", rule.ID, err)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("rule %d conditions: %w", rule.ID, err)
	}
	return nil
}

// OneOf passes when the option named in the conditions is unselected or set
// to one of the listed values: {"option": "size", "values": ["S", "M"]}.
func OneOf(_ context.Context, in PredicateInput) (bool, error) {
	var params struct {
		Option string   `json:"option"`
		Values []string `json:"values"`
	}
	if err := in.Params(&params); err != nil {
		return false, err
	}
	chosen, ok := in.Chosen[params.Option]
	if !ok {
		return true, nil
	}
	for _, v := range params.Values {
		if v == chosen {
			return true, nil
		}
	}
	return false, nil
}

// MaxSelected passes when at most "max" options are chosen: {"max": 2}.
func MaxSelected(_ context.Context, in PredicateInput) (bool, error) {
	var params struct {
		Max int `json:"max"`
	}
	if err := in.Params(&params); err != nil {
		return false, err
	}
	return len(in.Chosen) <= params.Max, nil
}

func init() {
	DefaultPredicates.Register("one_of", OneOf)
	DefaultPredicates.Register("max_selected", MaxSelected)
}
