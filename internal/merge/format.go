package merge

import (
	"fmt"
	"strings"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/report"
)

// FormatForLLM renders a merged report into the flat text payload handed to
// the narrative provider. Section order and field labels are part of the
// external contract: the provider's prompt refers to them, so they must not
// change casually. Every populated field of the report appears literally in
// the output; deterministic for a given input.
func FormatForLLM(m *report.Merged) string {
	var b strings.Builder

	b.WriteString("=== PROPERTY INFORMATION ===\n")
	p := m.PropertyInfo
	writeField(&b, "Property Type", p.PropertyType)
	writeField(&b, "Address", p.Address)
	writeField(&b, "Floors", p.Floors)
	writeField(&b, "Property Age", p.PropertyAge)
	writeField(&b, "Inspection Date", p.InspectionDate)
	writeField(&b, "Inspected By", p.InspectedBy)
	writeField(&b, "Previous Repairs", p.PreviousRepairs)
	writeField(&b, "Previous Audit", p.PreviousAudit)
	b.WriteString("\n")

	b.WriteString("=== AREA-WISE OBSERVATIONS ===\n")
	for _, obs := range m.Observations {
		fmt.Fprintf(&b, "\n--- Area %s ---\n", obs.AreaLabel)
		writeField(&b, "Negative side (damage)", obs.NegativeSide)
		writeField(&b, "Positive side (source)", obs.PositiveSide)
		if obs.RawContent != "" {
			writeField(&b, "Raw extract", obs.RawContent)
		}
		if obs.TemperatureRange != "" && obs.TemperatureRange != report.NotAvailable {
			writeField(&b, "Temperature range", obs.TemperatureRange)
		}
		for _, tr := range obs.ThermalReadings {
			b.WriteString("  Thermal: " + formatReading(tr) + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString("=== THERMAL SCAN SUMMARY ===\n")
	ts := m.ThermalSummary
	writeField(&b, "Total Images", fmt.Sprintf("%d", ts.TotalImages))
	writeField(&b, "Overall Hotspot", ts.OverallHotspot)
	writeField(&b, "Overall Coldspot", ts.OverallColdspot)
	writeField(&b, "Avg Hotspot", ts.AvgHotspot)
	writeField(&b, "Temp Differential", ts.TempDifferential)
	writeField(&b, "Device Used", ts.DeviceUsed)
	writeField(&b, "Inspection Date", ts.InspectionDate)
	writeField(&b, "Emissivity", ts.Emissivity)
	b.WriteString("\n")

	b.WriteString("=== CHECKLIST FINDINGS ===\n")
	b.WriteString(m.ChecklistFindings + "\n\n")

	b.WriteString("=== SUMMARY TABLE FROM INSPECTION ===\n")
	b.WriteString(m.SummaryTable + "\n\n")

	b.WriteString("=== IDENTIFIED CONFLICTS ===\n")
	if len(m.Conflicts) == 0 {
		b.WriteString("  No conflicts detected between the two reports.\n")
	}
	for _, c := range m.Conflicts {
		fmt.Fprintf(&b, "  ⚠ %s: %s\n", c.Type, c.Detail)
	}
	b.WriteString("\n")

	b.WriteString("=== MISSING INFORMATION ===\n")
	if len(m.MissingInfo) == 0 {
		b.WriteString("  All expected information is present.\n")
	}
	for _, item := range m.MissingInfo {
		fmt.Fprintf(&b, "  • %s\n", item)
	}

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s: %s\n", label, value)
}

// formatReading renders one thermal reading on a single line. Hotspot and
// coldspot always appear; the remaining fields only when populated.
func formatReading(tr report.ThermalReading) string {
	parts := []string{
		"Hotspot=" + orNA(tr.Hotspot),
		"Coldspot=" + orNA(tr.Coldspot),
	}
	if tr.Emissivity != "" {
		parts = append(parts, "Emissivity="+tr.Emissivity)
	}
	if tr.ReflectedTemp != "" {
		parts = append(parts, "Reflected="+tr.ReflectedTemp)
	}
	if tr.ImageFile != "" {
		parts = append(parts, "Image="+tr.ImageFile)
	}
	if tr.Device != "" {
		parts = append(parts, "Device="+tr.Device)
	}
	if tr.Date != "" {
		parts = append(parts, "Date="+tr.Date)
	}
	if tr.ImageNumber > 0 {
		parts = append(parts, fmt.Sprintf("Image #%d", tr.ImageNumber))
	}
	return strings.Join(parts, ", ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
