package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
)

// DailyDeduction is the outcome of pricing one day's lateness. The grace
// budget flows through the return value so monthly grace can be threaded
// across days without any state inside the engine.
type DailyDeduction struct {
	DelayMinutes   int
	EffectiveDelay int
	Amount         decimal.Decimal
	RemainingGrace int
}

// PeriodDeduction aggregates a whole period for one employee.
type PeriodDeduction struct {
	TotalDelayMinutes   int
	TotalEffectiveDelay int
	Amount              decimal.Decimal
}

// applyGrace burns grace minutes against a raw delay. Grace absorbs from
// the front; whatever delay survives is the effective delay the rules see.
func applyGrace(delayMinutes, remainingGrace int) (effective, remaining int) {
	if delayMinutes <= remainingGrace {
		return 0, remainingGrace - delayMinutes
	}
	return delayMinutes - remainingGrace, 0
}

// selectRule picks the rule with the greatest threshold not exceeding the
// effective delay. On equal thresholds the later rule in configured order
// wins, so an admin fixing a rule by appending a corrected copy gets the
// corrected behavior.
func selectRule(rules []policy.DeductionRule, scope policy.RuleScope, effectiveDelay int) *policy.DeductionRule {
	var selected *policy.DeductionRule
	for i := range rules {
		rule := &rules[i]
		if rule.Scope != scope {
			continue
		}
		if rule.ThresholdMinutes > effectiveDelay {
			continue
		}
		if selected == nil || rule.ThresholdMinutes >= selected.ThresholdMinutes {
			selected = rule
		}
	}
	return selected
}

// ruleAmount converts a rule's penalty into money. Time-based units are
// priced against the daily rate spread over the scheduled working day.
func ruleAmount(rule policy.DeductionRule, dailyRate decimal.Decimal, workingMinutesPerDay int) decimal.Decimal {
	switch rule.Unit {
	case policy.DeductionUnitMinutes:
		return dailyRate.Mul(rule.Value).Div(decimal.NewFromInt(int64(workingMinutesPerDay)))
	case policy.DeductionUnitHours:
		return dailyRate.Mul(rule.Value.Mul(decimal.NewFromInt(60))).Div(decimal.NewFromInt(int64(workingMinutesPerDay)))
	case policy.DeductionUnitAmount:
		return rule.Value
	}
	return decimal.Zero
}

// ComputeDailyDeduction prices one day's lateness against the daily-scoped
// rules. remainingGrace is the grace budget still available before this day;
// for a daily grace scope callers pass the full policy grace every day.
func ComputeDailyDeduction(delayMinutes, remainingGrace int, rules []policy.DeductionRule, dailyRate decimal.Decimal, workingMinutesPerDay int) DailyDeduction {
	effective, remaining := applyGrace(delayMinutes, remainingGrace)

	result := DailyDeduction{
		DelayMinutes:   delayMinutes,
		EffectiveDelay: effective,
		Amount:         decimal.Zero,
		RemainingGrace: remaining,
	}

	if effective == 0 {
		return result
	}

	if rule := selectRule(rules, policy.RuleScopeDaily, effective); rule != nil {
		result.Amount = ruleAmount(*rule, dailyRate, workingMinutesPerDay)
	}

	return result
}

// ComputePeriodDeduction runs a whole period of raw daily delays through the
// engine: grace per the policy scope, daily rules per offending day, then
// monthly rules once against the total effective delay.
func ComputePeriodDeduction(dayDelays []int, pol policy.AttendancePolicy, dailyRate decimal.Decimal) (PeriodDeduction, error) {
	workingMinutes, err := pol.WorkingMinutesPerDay()
	if err != nil {
		return PeriodDeduction{}, err
	}

	result := PeriodDeduction{Amount: decimal.Zero}

	monthlyGrace := pol.GracePeriodMinutes
	for _, delay := range dayDelays {
		grace := pol.GracePeriodMinutes
		if pol.GracePeriodScope == policy.GraceScopeMonthly {
			grace = monthlyGrace
		}

		daily := ComputeDailyDeduction(delay, grace, pol.DeductionRules, dailyRate, workingMinutes)

		if pol.GracePeriodScope == policy.GraceScopeMonthly {
			monthlyGrace = daily.RemainingGrace
		}

		result.TotalDelayMinutes += daily.DelayMinutes
		result.TotalEffectiveDelay += daily.EffectiveDelay
		result.Amount = result.Amount.Add(daily.Amount)
	}

	if rule := selectRule(pol.DeductionRules, policy.RuleScopeMonthly, result.TotalEffectiveDelay); rule != nil {
		result.Amount = result.Amount.Add(ruleAmount(*rule, dailyRate, workingMinutes))
	}

	return result, nil
}
