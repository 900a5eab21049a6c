package catalog

import (
	"testing"
	"time"
)

func i64(v int64) *int64 { return &v }

func TestEffectivePrice_Window(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	from := now.Add(-24 * time.Hour)
	to := now.Add(24 * time.Hour)

	p := PricingInfo{Price: 1000, SpecialPrice: i64(800), SpecialFrom: &from, SpecialTo: &to}
	if got := p.EffectivePrice(now); got != 800 {
		t.Errorf("inside window = %d, want 800", got)
	}
	if got := p.EffectivePrice(to.Add(time.Second)); got != 1000 {
		t.Errorf("after window = %d, want 1000", got)
	}
	if got := p.EffectivePrice(from.Add(-time.Second)); got != 1000 {
		t.Errorf("before window = %d, want 1000", got)
	}

	open := PricingInfo{Price: 1000, SpecialPrice: i64(900)}
	if got := open.EffectivePrice(now); got != 900 {
		t.Errorf("open window = %d, want 900", got)
	}
	if got := (PricingInfo{Price: 500}).EffectivePrice(now); got != 500 {
		t.Errorf("no special = %d, want 500", got)
	}
}

func TestProduct_IsAvailableAt(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)
	p := Product{Active: true}
	if !p.IsAvailableAt(now) {
		t.Error("active, no window: want true")
	}
	p.AvailableFrom = &later
	if p.IsAvailableAt(now) {
		t.Error("before AvailableFrom: want false")
	}
	if (&Product{Active: false}).IsAvailableAt(now) {
		t.Error("inactive: want false")
	}
}

func TestRule_TriggeredBy(t *testing.T) {
	v := uint(3)
	r := ConfigurationRule{ValueID: &v}
	if !r.TriggeredBy(3) || r.TriggeredBy(4) {
		t.Error("value-bound rule should fire only for its value")
	}
	if !(&ConfigurationRule{}).TriggeredBy(99) {
		t.Error("option-level rule should fire for any value")
	}
}

func TestRuleType_IsAdjustment(t *testing.T) {
	for _, rt := range []RuleType{RulePriceAdjustment, RuleWeightAdjustment} {
		if !rt.IsAdjustment() {
			t.Errorf("%s: want adjustment", rt)
		}
	}
	for _, rt := range []RuleType{RuleDependency, RuleExclusion, RuleRequirement, RuleValidation, RuleCustom} {
		if rt.IsAdjustment() {
			t.Errorf("%s: want non-adjustment", rt)
		}
	}
}
