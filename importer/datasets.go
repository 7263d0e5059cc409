package importer

import (
	"path/filepath"

	"github.com/nonsonwune/college_db/models"
)

// Dataset names, in the order a refresh loads them.
const (
	InstitutionsDataset = "institutions"
	FinancialDataset    = "financial"
	ProgramsDataset     = "programs"
	EarningsDataset     = "earnings"
)

const (
	DefaultChunkSize     = 10000
	DefaultProgressEvery = 50000
)

// Dataset describes how one category of source file is located, reconciled,
// coerced, filtered and loaded.
type Dataset struct {
	Name       string
	Table      string
	Candidates []Candidate
	Mappings   []ColumnMapping
	// Kinds declares the numeric columns; everything else stays text.
	Kinds map[string]ColumnKind
	// Key is the institution identifier column.
	Key string
	// Unique drops null and repeated keys (the institutions load).
	Unique bool
	// References restricts rows to keys committed to institutions.
	References bool
	// Required columns must be present in the header and non-null per row.
	Required []string
	// YearColumn, when set, is filled with the source's vintage.
	YearColumn string
	// ChunkSize bounds the rows held in memory; zero reads the whole file.
	ChunkSize int
}

// DefaultDatasets returns the four refresh categories with their candidate
// files under dataDir, newest vintage first. chunkSize applies to the
// completions file; zero selects DefaultChunkSize.
func DefaultDatasets(dataDir string, chunkSize int) []Dataset {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	path := func(name string) string { return filepath.Join(dataDir, name) }

	return []Dataset{
		{
			Name:  InstitutionsDataset,
			Table: models.InstitutionsTable,
			Candidates: []Candidate{
				{File: path("directory_2023.csv"), Year: 2023},
				{File: path("directory_2022.csv"), Year: 2022},
			},
			Mappings: []ColumnMapping{
				Map("unitid", WithBOM("UNITID")...),
				Map("opeid", "OPEID"),
				Map("name", "INSTNM"),
				Map("city", "CITY"),
				Map("state", "STABBR"),
				Map("zip_code", "ZIP"),
				Map("region", "OBEREG"),
				Map("longitude", "LONGITUD"),
				Map("latitude", "LATITUDE"),
				Map("website", "WEBADDR"),
				Map("control_public_private", "CONTROL"),
				Map("historically_black", "HBCU"),
				Map("predominately_black", "PBI"),
				Map("hispanic_serving", "HSI"),
				Map("tribal", "TRIBAL"),
				Map("asian_american_native_american_pacific_islander", "AANAPII"),
				Map("women_only", "WOMENONLY"),
				Map("men_only", "MENONLY"),
				Map("religious_affiliation", "RELAFFIL"),
				Map("level_undergraduate", "ICLEVEL"),
				Map("locale", "LOCALE"),
			},
			Kinds: map[string]ColumnKind{
				"unitid":                 Integer,
				"region":                 Integer,
				"longitude":              Real,
				"latitude":               Real,
				"control_public_private": Integer,
				"historically_black":     Integer,
				"predominately_black":    Integer,
				"hispanic_serving":       Integer,
				"tribal":                 Integer,
				"asian_american_native_american_pacific_islander": Integer,
				"women_only":            Integer,
				"men_only":              Integer,
				"religious_affiliation": Integer,
				"level_undergraduate":   Integer,
				"locale":                Integer,
			},
			Key:      "unitid",
			Unique:   true,
			Required: []string{"unitid", "name"},
		},
		{
			Name:  FinancialDataset,
			Table: models.FinancialDataTable,
			Candidates: []Candidate{
				{File: path("tuition_fees_2023.csv"), Year: 2023},
				{File: path("tuition_fees_2022.csv"), Year: 2022},
			},
			Mappings: []ColumnMapping{
				Map("unitid", WithBOM("UNITID")...),
				Map("tuition_in_state", "TUITION1"),
				Map("tuition_out_state", "TUITION2"),
				Map("tuition_program", "TUITION3"),
				Map("fees", "FEE1"),
				Map("room_board_on_campus", "CHG1AY0"),
				Map("room_board_off_campus", "CHG2AY0"),
				Map("room_board_family", "CHG3AY0"),
			},
			Kinds: map[string]ColumnKind{
				"unitid":                Integer,
				"tuition_in_state":      Real,
				"tuition_out_state":     Real,
				"tuition_program":       Real,
				"fees":                  Real,
				"room_board_on_campus":  Real,
				"room_board_off_campus": Real,
				"room_board_family":     Real,
			},
			Key:        "unitid",
			References: true,
			Required:   []string{"unitid"},
			YearColumn: "year",
		},
		{
			Name:  ProgramsDataset,
			Table: models.AcademicProgramsTable,
			Candidates: []Candidate{
				{File: path("completions_2022_cip_standardized_20250925_204646.csv"), Year: 2022},
				{File: path("completions_2022.csv"), Year: 2022},
			},
			Mappings: []ColumnMapping{
				Map("unitid", WithBOM("UNITID")...),
				Map("cipcode", "CIPCODE"),
				Map("credential_level", "AWLEVEL"),
				Map("completions", "CTOTALT"),
				Map("completions_men", "CTOTALM"),
				Map("completions_women", "CTOTALW"),
			},
			Kinds: map[string]ColumnKind{
				"unitid":            Integer,
				"credential_level":  Integer,
				"completions":       Integer,
				"completions_men":   Integer,
				"completions_women": Integer,
				"year":              Integer,
			},
			Key:        "unitid",
			References: true,
			Required:   []string{"unitid"},
			YearColumn: "year",
			ChunkSize:  chunkSize,
		},
		{
			Name:  EarningsDataset,
			Table: models.EarningsOutcomesTable,
			Candidates: []Candidate{
				{File: path("roi_analysis_dataset.csv")},
			},
			Mappings: []ColumnMapping{
				Map("unitid", WithBOM("unitid")...),
				Map("opeid", "opeid"),
				Map("earnings_6_years_after_entry", "earnings_6_yrs_after_entry"),
				Map("earnings_10_years_after_entry", "earnings_10_yrs_after_entry"),
				Map("median_debt", "median_debt"),
				Map("repayment_rate", "repayment_rate"),
				Map("completion_rate", "completion_rate"),
				Map("retention_rate", "retention_rate"),
				Map("student_count", "student_count"),
			},
			Kinds: map[string]ColumnKind{
				"unitid":                        Integer,
				"earnings_6_years_after_entry":  Real,
				"earnings_10_years_after_entry": Real,
				"median_debt":                   Real,
				"repayment_rate":                Real,
				"completion_rate":               Real,
				"retention_rate":                Real,
				"student_count":                 Integer,
			},
			Key:        "unitid",
			References: true,
			Required:   []string{"unitid"},
		},
	}
}
