package migrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/nonsonwune/college_db/models"
	"github.com/nonsonwune/college_db/store"
)

// tableDDL holds CREATE TABLE statements keyed by table name. {{pk}} and
// {{real}} are replaced per dialect.
var tableDDL = map[string]string{
	models.InstitutionsTable: `
		CREATE TABLE institutions (
			id {{pk}},
			unitid INTEGER UNIQUE,
			opeid TEXT,
			name TEXT NOT NULL,
			city TEXT,
			state TEXT,
			zip_code TEXT,
			region INTEGER,
			latitude {{real}},
			longitude {{real}},
			website TEXT,
			ownership INTEGER,
			control_public_private INTEGER,
			historically_black INTEGER,
			predominately_black INTEGER,
			hispanic_serving INTEGER,
			tribal INTEGER,
			asian_american_native_american_pacific_islander INTEGER,
			women_only INTEGER,
			men_only INTEGER,
			religious_affiliation INTEGER,
			level_undergraduate INTEGER,
			level_graduate INTEGER,
			size_category INTEGER,
			carnegie_basic INTEGER,
			carnegie_undergraduate INTEGER,
			carnegie_size INTEGER,
			locale INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	models.AcademicProgramsTable: `
		CREATE TABLE academic_programs (
			id {{pk}},
			unitid INTEGER,
			cipcode TEXT,
			cipcode_int INTEGER,
			cip_title TEXT,
			credential_level INTEGER,
			distance_education INTEGER,
			completions INTEGER,
			completions_men INTEGER,
			completions_women INTEGER,
			year INTEGER,
			FOREIGN KEY (unitid) REFERENCES institutions (unitid)
		)`,
	models.FinancialDataTable: `
		CREATE TABLE financial_data (
			id {{pk}},
			unitid INTEGER,
			year INTEGER,
			tuition_in_state {{real}},
			tuition_out_state {{real}},
			tuition_program {{real}},
			fees {{real}},
			books_supplies {{real}},
			room_board_on_campus {{real}},
			room_board_off_campus {{real}},
			room_board_family {{real}},
			other_expenses {{real}},
			aid_federal_loan {{real}},
			aid_federal_pell {{real}},
			aid_institutional {{real}},
			aid_state_local {{real}},
			net_price {{real}},
			FOREIGN KEY (unitid) REFERENCES institutions (unitid)
		)`,
	models.EarningsOutcomesTable: `
		CREATE TABLE earnings_outcomes (
			id {{pk}},
			unitid INTEGER,
			opeid TEXT,
			earnings_6_years_after_entry {{real}},
			earnings_10_years_after_entry {{real}},
			median_debt {{real}},
			repayment_rate {{real}},
			completion_rate {{real}},
			retention_rate {{real}},
			student_count INTEGER,
			pct_white {{real}},
			pct_black {{real}},
			pct_hispanic {{real}},
			pct_asian {{real}},
			pct_american_indian {{real}},
			pct_pacific_islander {{real}},
			pct_biracial {{real}},
			pct_nonresident_alien {{real}},
			pct_unknown_race {{real}},
			pct_part_time {{real}},
			age_entry {{real}},
			FOREIGN KEY (unitid) REFERENCES institutions (unitid)
		)`,
	models.AdmissionsDataTable: `
		CREATE TABLE admissions_data (
			id {{pk}},
			unitid INTEGER,
			year INTEGER,
			admissions_total INTEGER,
			applicants_total INTEGER,
			applicants_men INTEGER,
			applicants_women INTEGER,
			admissions_men INTEGER,
			admissions_women INTEGER,
			enrolled_total INTEGER,
			enrolled_men INTEGER,
			enrolled_women INTEGER,
			enrolled_full_time INTEGER,
			enrolled_part_time INTEGER,
			sat_math_25th {{real}},
			sat_math_75th {{real}},
			sat_verbal_25th {{real}},
			sat_verbal_75th {{real}},
			act_composite_25th {{real}},
			act_composite_75th {{real}},
			FOREIGN KEY (unitid) REFERENCES institutions (unitid)
		)`,
	models.CIPCodesTable: `
		CREATE TABLE cip_codes_ref (
			cip_code TEXT PRIMARY KEY,
			cip_code_int INTEGER,
			cip_title TEXT,
			cip_definition TEXT,
			cip_family TEXT
		)`,
}

// Indexes created after the tables.
var Indexes = []string{
	"CREATE INDEX idx_institutions_unitid ON institutions(unitid)",
	"CREATE INDEX idx_institutions_state ON institutions(state)",
	"CREATE INDEX idx_institutions_control ON institutions(control_public_private)",
	"CREATE INDEX idx_programs_unitid ON academic_programs(unitid)",
	"CREATE INDEX idx_programs_cip ON academic_programs(cipcode)",
	"CREATE INDEX idx_financial_unitid ON financial_data(unitid)",
	"CREATE INDEX idx_earnings_unitid ON earnings_outcomes(unitid)",
	"CREATE INDEX idx_admissions_unitid ON admissions_data(unitid)",
}

func dialectReplacer(d store.Dialect) *strings.Replacer {
	if d == store.Postgres {
		return strings.NewReplacer("{{pk}}", "BIGSERIAL PRIMARY KEY", "{{real}}", "DOUBLE PRECISION")
	}
	return strings.NewReplacer("{{pk}}", "INTEGER PRIMARY KEY", "{{real}}", "REAL")
}

// InitSchema drops every refresh table and recreates it empty, together with
// its indexes. It works on an empty store as well as a populated one; all
// statements run in one transaction.
func InitSchema(ctx context.Context, s *store.Store) error {
	tx, err := s.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting schema transaction: %w", err)
	}
	defer tx.Rollback()

	cascade := ""
	if s.Dialect() == store.Postgres {
		cascade = " CASCADE"
	}
	for i := len(models.AllTables) - 1; i >= 0; i-- {
		table := models.AllTables[i]
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+cascade); err != nil {
			return fmt.Errorf("error dropping table %s: %w", table, err)
		}
	}

	r := dialectReplacer(s.Dialect())
	for _, table := range models.AllTables {
		if _, err := tx.ExecContext(ctx, r.Replace(tableDDL[table])); err != nil {
			return fmt.Errorf("error creating table %s: %w", table, err)
		}
	}

	for _, index := range Indexes {
		if _, err := tx.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("error creating index: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing schema: %w", err)
	}
	return nil
}
