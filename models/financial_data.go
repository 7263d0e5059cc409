package models

// FinancialData represents a (institution, year) cost snapshot.
type FinancialData struct {
	ID                 int64    `db:"id" json:"id"`
	UnitID             int64    `db:"unitid" json:"unitid"`
	Year               *int64   `db:"year" json:"year,omitempty"`
	TuitionInState     *float64 `db:"tuition_in_state" json:"tuition_in_state,omitempty"`
	TuitionOutState    *float64 `db:"tuition_out_state" json:"tuition_out_state,omitempty"`
	TuitionProgram     *float64 `db:"tuition_program" json:"tuition_program,omitempty"`
	Fees               *float64 `db:"fees" json:"fees,omitempty"`
	RoomBoardOnCampus  *float64 `db:"room_board_on_campus" json:"room_board_on_campus,omitempty"`
	RoomBoardOffCampus *float64 `db:"room_board_off_campus" json:"room_board_off_campus,omitempty"`
	RoomBoardFamily    *float64 `db:"room_board_family" json:"room_board_family,omitempty"`
}
