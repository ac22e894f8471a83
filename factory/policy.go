/*
Package factory provides JSON to Go policy conversion.

PURPOSE:
  Converts JSON policy definitions into payroll.OvertimePolicy and
  seed wage-rate rows. This enables policy configuration without code
  changes - administrators can define the overtime threshold, the
  premium multiplier, and the initial rate table in JSON.

JSON SCHEMA:
  {
    "daily_threshold_hours": 8,
    "overtime_multiplier": 1.0,
    "wage_rates": [
      {
        "id": "wage-001",
        "work_type_id": "individual-tutoring",
        "sub_category": "junior-high",
        "hourly_amount": 3000,
        "effective_from": "2024-01-01"
      }
    ]
  }

DEFAULTS:
  - daily_threshold_hours: 8 when omitted or zero
  - overtime_multiplier: base rate (1.0) when omitted; the premium is a
    policy decision, never an engine constant
  - wage_rates: optional; used to seed an empty store at boot

USAGE:
  policy, rates, err := factory.ParsePolicy(jsonBytes)

SEE ALSO:
  - payroll/overtime.go: OvertimePolicy definition
  - cmd/server/main.go: Loads the policy file at startup
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PolicyJSON is the JSON representation of the computation policy.
type PolicyJSON struct {
	DailyThresholdHours float64        `json:"daily_threshold_hours"`
	OvertimeMultiplier  float64        `json:"overtime_multiplier,omitempty"`
	WageRates           []WageRateJSON `json:"wage_rates,omitempty"`
}

// WageRateJSON is one seed rate row.
type WageRateJSON struct {
	ID            string  `json:"id"`
	WorkTypeID    string  `json:"work_type_id"`
	SubCategory   string  `json:"sub_category,omitempty"`
	HourlyAmount  float64 `json:"hourly_amount"`
	EffectiveFrom string  `json:"effective_from"`
}

// DefaultPolicy is the policy used when no configuration file is given:
// an 8-hour daily threshold with overtime at the base rate.
func DefaultPolicy() payroll.OvertimePolicy {
	return payroll.OvertimePolicy{DailyThreshold: payroll.NewHours(8)}
}

// ParsePolicy converts a JSON policy document into the overtime policy
// and any seed wage-rate rows it carries.
func ParsePolicy(data []byte) (payroll.OvertimePolicy, []payroll.WageRate, error) {
	var cfg PolicyJSON
	if err := json.Unmarshal(data, &cfg); err != nil {
		return payroll.OvertimePolicy{}, nil, fmt.Errorf("invalid policy JSON: %w", err)
	}

	if cfg.DailyThresholdHours < 0 {
		return payroll.OvertimePolicy{}, nil, fmt.Errorf("daily_threshold_hours must not be negative, got %v", cfg.DailyThresholdHours)
	}
	if cfg.OvertimeMultiplier < 0 {
		return payroll.OvertimePolicy{}, nil, fmt.Errorf("overtime_multiplier must not be negative, got %v", cfg.OvertimeMultiplier)
	}

	policy := DefaultPolicy()
	if cfg.DailyThresholdHours > 0 {
		policy.DailyThreshold = payroll.NewHours(cfg.DailyThresholdHours)
	}
	if cfg.OvertimeMultiplier > 0 {
		policy.OvertimeMultiplier = decimal.NewFromFloat(cfg.OvertimeMultiplier)
	}

	rates := make([]payroll.WageRate, 0, len(cfg.WageRates))
	for i, r := range cfg.WageRates {
		rate, err := parseRate(r)
		if err != nil {
			return payroll.OvertimePolicy{}, nil, fmt.Errorf("wage_rates[%d]: %w", i, err)
		}
		rates = append(rates, rate)
	}

	return policy, rates, nil
}

func parseRate(r WageRateJSON) (payroll.WageRate, error) {
	if r.ID == "" {
		return payroll.WageRate{}, fmt.Errorf("missing id")
	}
	if r.WorkTypeID == "" {
		return payroll.WageRate{}, fmt.Errorf("missing work_type_id")
	}
	if r.HourlyAmount <= 0 {
		return payroll.WageRate{}, fmt.Errorf("hourly_amount must be positive, got %v", r.HourlyAmount)
	}
	effective, err := payroll.ParseWorkDate(r.EffectiveFrom)
	if err != nil {
		return payroll.WageRate{}, err
	}

	return payroll.WageRate{
		ID:            r.ID,
		WorkTypeID:    payroll.WorkTypeID(r.WorkTypeID),
		SubCategory:   payroll.SubCategory(r.SubCategory),
		HourlyAmount:  payroll.NewMoney(r.HourlyAmount),
		EffectiveFrom: effective,
	}, nil
}
