package configuration

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogEntity "catalog.GO/model/entity/catalog"
	catalogRepo "catalog.GO/model/repository/catalog"
)

// Violation is one failed rule or missing required option.
type Violation struct {
	RuleID     uint                   `json:"rule_id,omitempty"`
	RuleType   catalogEntity.RuleType `json:"rule_type,omitempty"`
	OptionID   uint                   `json:"option_id"`
	OptionCode string                 `json:"option_code"`
	Message    string                 `json:"message"`
}

type ValidationResult struct {
	OK         bool        `json:"ok"`
	Violations []Violation `json:"violations"`
}

// Engine evaluates selections against a product's option and rule graph. It
// only reads.
type Engine struct {
	catalog    *catalogRepo.CatalogRepository
	predicates *Predicates
	logger     *zap.Logger
}

// NewEngine uses DefaultPredicates when predicates is nil.
func NewEngine(catalog *catalogRepo.CatalogRepository, predicates *Predicates, logger *zap.Logger) *Engine {
	if predicates == nil {
		predicates = DefaultPredicates
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{catalog: catalog, predicates: predicates, logger: logger}
}

func (e *Engine) load(ctx context.Context, productID uint) (*graph, error) {
	p, err := e.catalog.FindProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}
	if err != nil {
		return nil, err
	}
	opts, err := e.catalog.FindOptions(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load options of product %d: %w", p.ID, err)
	}
	return newGraph(p, opts), nil
}

// SelectionByCodes builds a Selection from option and value codes.
func (e *Engine) SelectionByCodes(ctx context.Context, productID uint, codes map[string]string) (Selection, error) {
	g, err := e.load(ctx, productID)
	if err != nil {
		return nil, err
	}
	return g.selectionByCodes(codes)
}

// Validate checks every rule fired by the selected values, option by option in
// position order, and reports all violations. Unknown options or values are
// returned as errors; rule failures are returned in the result.
func (e *Engine) Validate(ctx context.Context, productID uint, sel Selection) (*ValidationResult, error) {
	g, err := e.load(ctx, productID)
	if err != nil {
		return nil, err
	}
	choices, err := g.resolve(sel)
	if err != nil {
		return nil, err
	}
	chosen := chosenCodes(choices)

	res := &ValidationResult{Violations: []Violation{}}
	for i := range g.options {
		o := &g.options[i]
		valID, selected := sel[o.ID]
		if !selected {
			if o.Required {
				res.Violations = append(res.Violations, Violation{
					OptionID:   o.ID,
					OptionCode: o.Code(),
					Message:    fmt.Sprintf("Option %s is required", optionLabel(o)),
				})
			}
			continue
		}
		rules, err := e.catalog.FindRulesFor(ctx, *findValue(o, valID))
		if err != nil {
			return nil, fmt.Errorf("load rules of option %d: %w", o.ID, err)
		}
		for j := range rules {
			rule := &rules[j]
			ok, err := e.check(ctx, g.product, rule, chosen)
			if err != nil {
				return nil, err
			}
			if ok {
				continue
			}
			res.Violations = append(res.Violations, Violation{
				RuleID:     rule.ID,
				RuleType:   rule.Type,
				OptionID:   o.ID,
				OptionCode: o.Code(),
				Message:    violationMessage(rule),
			})
		}
	}
	res.OK = len(res.Violations) == 0
	return res, nil
}

// check evaluates one rule; adjustments always pass.
func (e *Engine) check(ctx context.Context, p *catalogEntity.Product, rule *catalogEntity.ConfigurationRule, chosen map[string]string) (bool, error) {
	switch rule.Type {
	case catalogEntity.RuleDependency:
		v, ok := chosen[rule.TargetOptionCode]
		return ok && v == rule.TargetValueCode, nil
	case catalogEntity.RuleExclusion:
		v, ok := chosen[rule.TargetOptionCode]
		return !ok || v != rule.TargetValueCode, nil
	case catalogEntity.RuleRequirement:
		_, ok := chosen[rule.TargetOptionCode]
		return ok, nil
	case catalogEntity.RuleValidation, catalogEntity.RuleCustom:
		fn, ok := e.predicates.Lookup(rule.CustomValidation)
		if !ok {
			e.logger.Warn("no predicate registered for rule",
				zap.Uint("rule_id", rule.ID),
				zap.String("custom_validation", rule.CustomValidation))
			return false, nil
		}
		pass, err := fn(ctx, PredicateInput{Product: p, Rule: rule, Chosen: chosen})
		if err != nil {
			return false, fmt.Errorf("predicate %s on rule %d: %w", rule.CustomValidation, rule.ID, err)
		}
		return pass, nil
	}
	if rule.Type.IsAdjustment() {
		return true, nil
	}
	e.logger.Warn("unsupported rule type", zap.Uint("rule_id", rule.ID), zap.String("type", string(rule.Type)))
	return false, nil
}

func violationMessage(rule *catalogEntity.ConfigurationRule) string {
	if rule.ErrorMessage != "" {
		return rule.ErrorMessage
	}
	switch rule.Type {
	case catalogEntity.RuleDependency:
		return fmt.Sprintf("This selection requires %s to be %s", rule.TargetOptionCode, rule.TargetValueCode)
	case catalogEntity.RuleExclusion:
		return fmt.Sprintf("This selection cannot be combined with %s %s", rule.TargetOptionCode, rule.TargetValueCode)
	case catalogEntity.RuleRequirement:
		return fmt.Sprintf("This selection requires a %s to be chosen", rule.TargetOptionCode)
	}
	return "Invalid configuration"
}

func optionLabel(o *catalogEntity.ConfigurableOption) string {
	if o.Attribute != nil && o.Attribute.Name != "" {
		return o.Attribute.Name
	}
	return o.Code()
}
