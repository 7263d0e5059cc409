package models

// Table names of the refreshed store.
const (
	InstitutionsTable     = "institutions"
	AcademicProgramsTable = "academic_programs"
	FinancialDataTable    = "financial_data"
	EarningsOutcomesTable = "earnings_outcomes"
	AdmissionsDataTable   = "admissions_data"
	CIPCodesTable         = "cip_codes_ref"
)

// AllTables lists every table in creation order. Dependents follow
// institutions, so dropping must walk the slice backwards.
var AllTables = []string{
	InstitutionsTable,
	AcademicProgramsTable,
	FinancialDataTable,
	EarningsOutcomesTable,
	AdmissionsDataTable,
	CIPCodesTable,
}
