package models

// AcademicProgram represents one completions record in academic_programs.
type AcademicProgram struct {
	ID               int64   `db:"id" json:"id"`
	UnitID           int64   `db:"unitid" json:"unitid"`
	CIPCode          *string `db:"cipcode" json:"cipcode,omitempty"`
	CIPCodeInt       *int64  `db:"cipcode_int" json:"cipcode_int,omitempty"`
	CIPTitle         *string `db:"cip_title" json:"cip_title,omitempty"`
	CredentialLevel  *int64  `db:"credential_level" json:"credential_level,omitempty"`
	Completions      *int64  `db:"completions" json:"completions,omitempty"`
	CompletionsMen   *int64  `db:"completions_men" json:"completions_men,omitempty"`
	CompletionsWomen *int64  `db:"completions_women" json:"completions_women,omitempty"`
	Year             *int64  `db:"year" json:"year,omitempty"`
}
