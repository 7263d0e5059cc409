package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nonsonwune/college_db/models"
)

// ErrNotFound is returned when no institution carries the requested unitid.
var ErrNotFound = errors.New("institution not found")

// Institution loads one institution together with its financial snapshots,
// earnings outcome and program count.
func (s *Store) Institution(ctx context.Context, unitID int64) (*models.Institution, error) {
	query := fmt.Sprintf(`
		SELECT id, unitid, opeid, name, city, state, zip_code, latitude, longitude,
		       website, control_public_private, level_undergraduate, locale
		FROM institutions
		WHERE unitid = %s`, s.dialect.Placeholder(1))

	var inst models.Institution
	err := s.db.QueryRowContext(ctx, query, unitID).Scan(
		&inst.ID, &inst.UnitID, &inst.OPEID, &inst.Name, &inst.City, &inst.State,
		&inst.ZipCode, &inst.Latitude, &inst.Longitude, &inst.Website,
		&inst.ControlPublicPrivate, &inst.LevelUndergraduate, &inst.Locale)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, unitID)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading institution %d: %w", unitID, err)
	}

	if inst.Financial, err = s.FinancialFor(ctx, unitID); err != nil {
		return nil, err
	}
	if inst.Earnings, err = s.EarningsFor(ctx, unitID); err != nil {
		return nil, err
	}
	if inst.ProgramCount, err = s.ProgramCount(ctx, unitID); err != nil {
		return nil, err
	}
	return &inst, nil
}

// FinancialFor returns the institution's financial rows, newest year first.
func (s *Store) FinancialFor(ctx context.Context, unitID int64) ([]models.FinancialData, error) {
	query := fmt.Sprintf(`
		SELECT id, unitid, year, tuition_in_state, tuition_out_state, tuition_program,
		       fees, room_board_on_campus, room_board_off_campus, room_board_family
		FROM financial_data
		WHERE unitid = %s
		ORDER BY year DESC, id`, s.dialect.Placeholder(1))

	rows, err := s.db.QueryContext(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("error querying financial data: %w", err)
	}
	defer rows.Close()

	var out []models.FinancialData
	for rows.Next() {
		var f models.FinancialData
		if err := rows.Scan(&f.ID, &f.UnitID, &f.Year, &f.TuitionInState, &f.TuitionOutState,
			&f.TuitionProgram, &f.Fees, &f.RoomBoardOnCampus, &f.RoomBoardOffCampus, &f.RoomBoardFamily); err != nil {
			return nil, fmt.Errorf("error scanning financial data: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// EarningsFor returns the institution's earnings outcome, or nil if none was loaded.
func (s *Store) EarningsFor(ctx context.Context, unitID int64) (*models.EarningsOutcome, error) {
	query := fmt.Sprintf(`
		SELECT id, unitid, opeid, earnings_6_years_after_entry, earnings_10_years_after_entry,
		       median_debt, repayment_rate, completion_rate, retention_rate, student_count
		FROM earnings_outcomes
		WHERE unitid = %s
		ORDER BY id
		LIMIT 1`, s.dialect.Placeholder(1))

	var e models.EarningsOutcome
	err := s.db.QueryRowContext(ctx, query, unitID).Scan(&e.ID, &e.UnitID, &e.OPEID,
		&e.Earnings6YearsAfterEntry, &e.Earnings10YearsAfterEntry, &e.MedianDebt,
		&e.RepaymentRate, &e.CompletionRate, &e.RetentionRate, &e.StudentCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading earnings outcome: %w", err)
	}
	return &e, nil
}

// ProgramCount returns how many completions records reference the institution.
func (s *Store) ProgramCount(ctx context.Context, unitID int64) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM academic_programs WHERE unitid = %s", s.dialect.Placeholder(1))
	var n int64
	if err := s.db.QueryRowContext(ctx, query, unitID).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting programs: %w", err)
	}
	return n, nil
}

// Programs returns up to limit completions records for the institution,
// largest programs first.
func (s *Store) Programs(ctx context.Context, unitID int64, limit int) ([]models.AcademicProgram, error) {
	query := fmt.Sprintf(`
		SELECT id, unitid, cipcode, cipcode_int, cip_title, credential_level,
		       completions, completions_men, completions_women, year
		FROM academic_programs
		WHERE unitid = %s
		ORDER BY completions DESC, id
		LIMIT %d`, s.dialect.Placeholder(1), limit)

	rows, err := s.db.QueryContext(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("error querying programs: %w", err)
	}
	defer rows.Close()

	var out []models.AcademicProgram
	for rows.Next() {
		var p models.AcademicProgram
		if err := rows.Scan(&p.ID, &p.UnitID, &p.CIPCode, &p.CIPCodeInt, &p.CIPTitle,
			&p.CredentialLevel, &p.Completions, &p.CompletionsMen, &p.CompletionsWomen, &p.Year); err != nil {
			return nil, fmt.Errorf("error scanning program: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
