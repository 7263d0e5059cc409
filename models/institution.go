package models

// Institution represents the institutions table. Nullable attributes are
// pointers because directory files rarely populate every column.
type Institution struct {
	ID                   int64            `db:"id" json:"id"`
	UnitID               int64            `db:"unitid" json:"unitid"`
	OPEID                *string          `db:"opeid" json:"opeid,omitempty"`
	Name                 string           `db:"name" json:"name"`
	City                 *string          `db:"city" json:"city,omitempty"`
	State                *string          `db:"state" json:"state,omitempty"`
	ZipCode              *string          `db:"zip_code" json:"zip_code,omitempty"`
	Latitude             *float64         `db:"latitude" json:"latitude,omitempty"`
	Longitude            *float64         `db:"longitude" json:"longitude,omitempty"`
	Website              *string          `db:"website" json:"website,omitempty"`
	ControlPublicPrivate *int64           `db:"control_public_private" json:"control_public_private,omitempty"`
	LevelUndergraduate   *int64           `db:"level_undergraduate" json:"level_undergraduate,omitempty"`
	Locale               *int64           `db:"locale" json:"locale,omitempty"`
	Financial            []FinancialData  `db:"-" json:"financial,omitempty"`
	Earnings             *EarningsOutcome `db:"-" json:"earnings,omitempty"`
	ProgramCount         int64            `db:"-" json:"program_count"`
}
