package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/report"
)

func sampleMerged() *report.Merged {
	return &report.Merged{
		PropertyInfo: report.PropertyInfo{
			PropertyType:    "Residential Apartment",
			Address:         "12 Palm Grove, Mumbai",
			Floors:          "4",
			PropertyAge:     "12",
			InspectionDate:  "15.03.2024",
			InspectedBy:     "S. Kulkarni",
			PreviousRepairs: "Yes",
			PreviousAudit:   "No",
		},
		Observations: []report.Observation{
			{
				AreaLabel:    "1",
				NegativeSide: "Damp patches on the bedroom ceiling",
				PositiveSide: "Cracked terrace tiles above",
				RawContent:   "raw extract for area one",
				ThermalReadings: []report.ThermalReading{
					{Hotspot: "41.3 °C", Coldspot: "24.1 °C", ImageFile: "IR_0042.jpg", ImageNumber: 2},
				},
				TemperatureRange: "39.0 °C to 41.3 °C",
			},
		},
		ThermalSummary: report.ThermalSummary{
			TotalImages:      2,
			OverallHotspot:   "41.3 °C",
			OverallColdspot:  "21.9 °C",
			AvgHotspot:       "40.0 °C",
			TempDifferential: "19.4 °C",
			DeviceUsed:       "FLIR E8",
			InspectionDate:   "17/03/24",
			Emissivity:       "0.95",
		},
		ChecklistFindings: "Terrace waterproofing layer: Damaged",
		SummaryTable:      "1 | Ceiling damp | High",
		Conflicts: []report.Conflict{
			{Type: report.ConflictDateMismatch, Detail: "Inspection date (15.03.2024) differs from thermal scan date (17/03/24). Reports may have been prepared on different days."},
		},
		MissingInfo: []string{"Impacted Area 2: Positive side description not available"},
	}
}

func TestFormatForLLM_SectionOrder(t *testing.T) {
	out := FormatForLLM(sampleMerged())

	sections := []string{
		"=== PROPERTY INFORMATION ===",
		"=== AREA-WISE OBSERVATIONS ===",
		"=== THERMAL SCAN SUMMARY ===",
		"=== CHECKLIST FINDINGS ===",
		"=== SUMMARY TABLE FROM INSPECTION ===",
		"=== IDENTIFIED CONFLICTS ===",
		"=== MISSING INFORMATION ===",
	}
	prev := -1
	for _, sec := range sections {
		idx := strings.Index(out, sec)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", sec)
		assert.Greater(t, idx, prev, "section %q out of order", sec)
		prev = idx
	}
}

// Every populated value of the merged report must appear literally in the
// serialized payload.
func TestFormatForLLM_RoundTripsAllValues(t *testing.T) {
	m := sampleMerged()
	out := FormatForLLM(m)

	values := []string{
		m.PropertyInfo.PropertyType,
		m.PropertyInfo.Address,
		m.PropertyInfo.Floors,
		m.PropertyInfo.PropertyAge,
		m.PropertyInfo.InspectionDate,
		m.PropertyInfo.InspectedBy,
		m.PropertyInfo.PreviousRepairs,
		m.PropertyInfo.PreviousAudit,
		m.Observations[0].NegativeSide,
		m.Observations[0].PositiveSide,
		m.Observations[0].RawContent,
		m.Observations[0].TemperatureRange,
		m.Observations[0].ThermalReadings[0].Hotspot,
		m.Observations[0].ThermalReadings[0].Coldspot,
		m.Observations[0].ThermalReadings[0].ImageFile,
		m.ThermalSummary.OverallHotspot,
		m.ThermalSummary.OverallColdspot,
		m.ThermalSummary.AvgHotspot,
		m.ThermalSummary.TempDifferential,
		m.ThermalSummary.DeviceUsed,
		m.ThermalSummary.Emissivity,
		m.ChecklistFindings,
		m.SummaryTable,
		m.Conflicts[0].Detail,
		m.MissingInfo[0],
	}
	for _, v := range values {
		assert.Contains(t, out, v)
	}
	assert.Contains(t, out, "--- Area 1 ---")
	assert.Contains(t, out, "Image #2")
	assert.Contains(t, out, "Total Images: 2")
}

func TestFormatForLLM_Deterministic(t *testing.T) {
	m := sampleMerged()
	assert.Equal(t, FormatForLLM(m), FormatForLLM(m))
}

func TestFormatForLLM_EmptyListsGetPlaceholders(t *testing.T) {
	m := sampleMerged()
	m.Conflicts = nil
	m.MissingInfo = nil

	out := FormatForLLM(m)
	assert.Contains(t, out, "No conflicts detected between the two reports.")
	assert.Contains(t, out, "All expected information is present.")
}
