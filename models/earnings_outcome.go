package models

// EarningsOutcome represents post-enrollment outcomes for an institution.
type EarningsOutcome struct {
	ID                        int64    `db:"id" json:"id"`
	UnitID                    int64    `db:"unitid" json:"unitid"`
	OPEID                     *string  `db:"opeid" json:"opeid,omitempty"`
	Earnings6YearsAfterEntry  *float64 `db:"earnings_6_years_after_entry" json:"earnings_6_years_after_entry,omitempty"`
	Earnings10YearsAfterEntry *float64 `db:"earnings_10_years_after_entry" json:"earnings_10_years_after_entry,omitempty"`
	MedianDebt                *float64 `db:"median_debt" json:"median_debt,omitempty"`
	RepaymentRate             *float64 `db:"repayment_rate" json:"repayment_rate,omitempty"`
	CompletionRate            *float64 `db:"completion_rate" json:"completion_rate,omitempty"`
	RetentionRate             *float64 `db:"retention_rate" json:"retention_rate,omitempty"`
	StudentCount              *int64   `db:"student_count" json:"student_count,omitempty"`
}
