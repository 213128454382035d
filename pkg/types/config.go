package types

import (
	"fmt"
	"strings"
)

// StationConfig identifies the logging station. These values are embedded
// as literals in the record pattern: a QSO only parses when the sent report
// and exchange in the log match them exactly.
type StationConfig struct {
	// Callsign is the station's own callsign (e.g. "K4GSX").
	Callsign string `json:"callsign" yaml:"callsign" mapstructure:"callsign"`

	// SentReport is the signal report sent with every QSO (default "599").
	SentReport string `json:"sent_report" yaml:"sent_report" mapstructure:"sent_report"`

	// SentExchange is the location code sent with every QSO (e.g. "GA").
	SentExchange string `json:"sent_exchange" yaml:"sent_exchange" mapstructure:"sent_exchange"`

	// ReceivedReport is the signal report logged for every received QSO (default "599").
	ReceivedReport string `json:"received_report" yaml:"received_report" mapstructure:"received_report"`
}

// ContestConfig holds the Cabrillo category and contest header values.
type ContestConfig struct {
	Name                string `json:"name" yaml:"name" mapstructure:"name"`
	CategoryOperator    string `json:"category_operator" yaml:"category_operator" mapstructure:"category_operator"`
	CategoryAssisted    string `json:"category_assisted" yaml:"category_assisted" mapstructure:"category_assisted"`
	CategoryBand        string `json:"category_band" yaml:"category_band" mapstructure:"category_band"`
	CategoryMode        string `json:"category_mode" yaml:"category_mode" mapstructure:"category_mode"`
	CategoryPower       string `json:"category_power" yaml:"category_power" mapstructure:"category_power"`
	CategoryStation     string `json:"category_station" yaml:"category_station" mapstructure:"category_station"`
	CategoryTransmitter string `json:"category_transmitter" yaml:"category_transmitter" mapstructure:"category_transmitter"`
}

// OperatorConfig holds the personal header fields of the submission.
// Any of them may be empty; the header line is still written.
type OperatorConfig struct {
	Club                 string `json:"club" yaml:"club" mapstructure:"club"`
	Operators            string `json:"operators" yaml:"operators" mapstructure:"operators"`
	Name                 string `json:"name" yaml:"name" mapstructure:"name"`
	Address              string `json:"address" yaml:"address" mapstructure:"address"`
	AddressCity          string `json:"address_city" yaml:"address_city" mapstructure:"address_city"`
	AddressStateProvince string `json:"address_state_province" yaml:"address_state_province" mapstructure:"address_state_province"`
	AddressPostalCode    string `json:"address_postalcode" yaml:"address_postalcode" mapstructure:"address_postalcode"`
	AddressCountry       string `json:"address_country" yaml:"address_country" mapstructure:"address_country"`
	Email                string `json:"email" yaml:"email" mapstructure:"email"`
}

// ExtractionBackend identifies the text extraction tool.
type ExtractionBackend string

const (
	BackendAuto      ExtractionBackend = "auto"
	BackendNative    ExtractionBackend = "native"
	BackendPdftotext ExtractionBackend = "pdftotext"
	BackendText      ExtractionBackend = "text"
)

// ExtractionConfig holds settings for the extraction stage.
type ExtractionConfig struct {
	// Backend selects the extractor: auto, native, pdftotext, or text.
	Backend ExtractionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// InputPath is the source log document.
	InputPath string `json:"input_path" yaml:"input_path" mapstructure:"input_path"`
}

// OutputConfig holds settings for the Cabrillo output file.
type OutputConfig struct {
	// Path is where the Cabrillo log is written.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// CreatedBy fills the CREATED-BY header. Empty uses the program name and version.
	CreatedBy string `json:"created_by" yaml:"created_by" mapstructure:"created_by"`
}

// HistoryConfig holds settings for the SQLite run history.
type HistoryConfig struct {
	// Enabled records every successful run.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// DBPath is the SQLite database file.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Station    StationConfig    `json:"station" yaml:"station" mapstructure:"station"`
	Contest    ContestConfig    `json:"contest" yaml:"contest" mapstructure:"contest"`
	Operator   OperatorConfig   `json:"operator" yaml:"operator" mapstructure:"operator"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Output     OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
	History    HistoryConfig    `json:"history" yaml:"history" mapstructure:"history"`
}

// DefaultPipelineConfig returns the configuration for a single-op, high power,
// CW entry in the New York QSO Party from a Georgia station.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Station: StationConfig{
			Callsign:       "K4GSX",
			SentReport:     "599",
			SentExchange:   "GA",
			ReceivedReport: "599",
		},
		Contest: ContestConfig{
			Name:                "NY-QSO-PARTY",
			CategoryOperator:    "SINGLE-OP",
			CategoryAssisted:    "NON-ASSISTED",
			CategoryBand:        "ALL",
			CategoryMode:        "CW",
			CategoryPower:       "HIGH",
			CategoryStation:     "FIXED",
			CategoryTransmitter: "ONE",
		},
		Operator: OperatorConfig{
			AddressStateProvince: "GA",
			AddressCountry:       "UNITED STATES",
		},
		Extraction: ExtractionConfig{
			Backend: BackendAuto,
		},
		Output: OutputConfig{
			Path: "cabrillo.log",
		},
		History: HistoryConfig{
			DBPath: "history/runs.db",
		},
	}
}

// Validate checks that the station identity can be embedded in the record
// pattern and that the extraction backend is known.
func (c PipelineConfig) Validate() error {
	s := c.Station
	if strings.TrimSpace(s.Callsign) == "" {
		return fmt.Errorf("station callsign is required")
	}
	if strings.ContainsAny(s.Callsign, " \t\r\n") {
		return fmt.Errorf("station callsign %q contains whitespace", s.Callsign)
	}
	for name, rpt := range map[string]string{"sent report": s.SentReport, "received report": s.ReceivedReport} {
		if rpt == "" || strings.Trim(rpt, "0123456789") != "" {
			return fmt.Errorf("%s %q must be numeric", name, rpt)
		}
	}
	if strings.TrimSpace(s.SentExchange) == "" {
		return fmt.Errorf("sent exchange is required")
	}
	switch c.Extraction.Backend {
	case BackendAuto, BackendNative, BackendPdftotext, BackendText, "":
	default:
		return fmt.Errorf("unknown extraction backend %q: use auto, native, pdftotext, or text", c.Extraction.Backend)
	}
	return nil
}
