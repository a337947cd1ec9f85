// Package report defines the structured intermediate representation produced
// by the structuring engine. Every field is either matched source text or the
// NotAvailable sentinel; nothing here is ever fabricated. All values are built
// once per document pair and are immutable afterward.
package report

// NotAvailable marks a field that could not be resolved from source text. The
// literal is part of the serialized contract and must be preserved verbatim.
const NotAvailable = "Not Available"

// PropertyInfo holds the property metadata resolved from the site-details
// span of the inspection document.
type PropertyInfo struct {
	RawDetails      string `json:"raw_details"`
	PropertyType    string `json:"property_type"`
	Address         string `json:"address"`
	Floors          string `json:"floors"`
	PropertyAge     string `json:"property_age"`
	InspectionDate  string `json:"inspection_date"`
	InspectedBy     string `json:"inspected_by"`
	PreviousRepairs string `json:"previous_repairs"`
	PreviousAudit   string `json:"previous_audit"`
}

// ThermalReading holds the fields extracted from one thermal image page.
// Absent fields stay empty; a reading with no populated field is never
// materialized.
type ThermalReading struct {
	Hotspot       string `json:"hotspot,omitempty"`
	Coldspot      string `json:"coldspot,omitempty"`
	Emissivity    string `json:"emissivity,omitempty"`
	ReflectedTemp string `json:"reflected_temp,omitempty"`
	ImageFile     string `json:"image_file,omitempty"`
	Device        string `json:"device,omitempty"`
	Date          string `json:"date,omitempty"`
	ImageNumber   int    `json:"image_number,omitempty"`
}

// Empty reports whether no field of the reading was populated.
func (r ThermalReading) Empty() bool {
	return r.Hotspot == "" && r.Coldspot == "" && r.Emissivity == "" &&
		r.ReflectedTemp == "" && r.ImageFile == "" && r.Device == "" &&
		r.Date == "" && r.ImageNumber == 0
}

// Observation is one impacted area paired with its thermal readings.
// AreaNumber is zero when the source header label was not numeric; AreaLabel
// always carries the raw label.
type Observation struct {
	AreaNumber       int              `json:"-"`
	AreaLabel        string           `json:"area_number"`
	NegativeSide     string           `json:"negative_side"`
	PositiveSide     string           `json:"positive_side"`
	RawContent       string           `json:"raw_content"`
	ThermalReadings  []ThermalReading `json:"thermal_readings"`
	TemperatureRange string           `json:"temperature_range"`
}

// ThermalSummary aggregates all thermal readings of a document. The
// representative device, date and emissivity come from the first reading.
type ThermalSummary struct {
	TotalImages      int    `json:"total_images"`
	OverallHotspot   string `json:"overall_hotspot"`
	OverallColdspot  string `json:"overall_coldspot"`
	AvgHotspot       string `json:"avg_hotspot"`
	TempDifferential string `json:"temp_differential"`
	DeviceUsed       string `json:"device_used"`
	InspectionDate   string `json:"inspection_date"`
	Emissivity       string `json:"emissivity"`
}

// ConflictType classifies a cross-document inconsistency.
type ConflictType string

const (
	ConflictDateMismatch   ConflictType = "date_mismatch"
	ConflictMissingThermal ConflictType = "missing_thermal"
)

// Conflict records one detected inconsistency between the two documents.
// Conflicts are append-only and never deduplicated.
type Conflict struct {
	Type   ConflictType `json:"type"`
	Detail string       `json:"detail"`
}

// Merged is the aggregate root: everything known about one inspection/thermal
// document pair. Its JSON form is the keyed audit serialization; field names
// and the NotAvailable sentinel are part of that contract.
type Merged struct {
	PropertyInfo      PropertyInfo   `json:"property_info"`
	Observations      []Observation  `json:"observations"`
	ThermalSummary    ThermalSummary `json:"thermal_summary"`
	ChecklistFindings string         `json:"checklist_findings"`
	SummaryTable      string         `json:"summary_table"`
	Conflicts         []Conflict     `json:"conflicts"`
	MissingInfo       []string       `json:"missing_info"`
}
