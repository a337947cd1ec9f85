package merge

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/report"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/structurer"
)

func readings(hotspots ...string) []report.ThermalReading {
	rs := make([]report.ThermalReading, 0, len(hotspots))
	for i, h := range hotspots {
		rs = append(rs, report.ThermalReading{
			Hotspot:     h,
			Coldspot:    "20.0 °C",
			ImageNumber: i + 1,
		})
	}
	return rs
}

func area(n int) structurer.Area {
	return structurer.Area{
		Number:       n,
		Label:        fmt.Sprintf("%d", n),
		NegativeSide: fmt.Sprintf("damage in area %d", n),
		PositiveSide: fmt.Sprintf("source near area %d", n),
	}
}

func TestMerge_PositionalPairingWindows(t *testing.T) {
	insp := structurer.InspectionData{
		Areas: []structurer.Area{area(1), area(2), area(3)},
	}
	th := structurer.ThermalData{
		Readings: readings("30.0 °C", "31.0 °C", "32.0 °C", "33.0 °C", "34.0 °C", "35.0 °C", "36.0 °C"),
	}

	m := Merge(insp, th, Config{})
	require.Len(t, m.Observations, 3)

	// Seven readings at the default stride of three: 3, 3, then the single
	// remaining reading.
	assert.Len(t, m.Observations[0].ThermalReadings, 3)
	assert.Len(t, m.Observations[1].ThermalReadings, 3)
	require.Len(t, m.Observations[2].ThermalReadings, 1)
	assert.Equal(t, "36.0 °C", m.Observations[2].ThermalReadings[0].Hotspot)
}

func TestMerge_CustomStride(t *testing.T) {
	insp := structurer.InspectionData{Areas: []structurer.Area{area(1), area(2)}}
	th := structurer.ThermalData{Readings: readings("30.0 °C", "31.0 °C", "32.0 °C")}

	m := Merge(insp, th, Config{ThermalStride: 2})
	require.Len(t, m.Observations, 2)
	assert.Len(t, m.Observations[0].ThermalReadings, 2)
	require.Len(t, m.Observations[1].ThermalReadings, 1)
	assert.Equal(t, "32.0 °C", m.Observations[1].ThermalReadings[0].Hotspot)
}

func TestMerge_NonNumericLabelGetsNoReadings(t *testing.T) {
	insp := structurer.InspectionData{
		Areas: []structurer.Area{{Label: "A", NegativeSide: "damp wall"}},
	}
	th := structurer.ThermalData{Readings: readings("30.0 °C")}

	m := Merge(insp, th, Config{})
	require.Len(t, m.Observations, 1)
	assert.Empty(t, m.Observations[0].ThermalReadings)
	assert.Equal(t, report.NotAvailable, m.Observations[0].TemperatureRange)
}

func TestMerge_TemperatureRangeIsNumeric(t *testing.T) {
	insp := structurer.InspectionData{Areas: []structurer.Area{area(1)}}
	// "9.5" sorts above "40.0" lexically; the range must compare numbers.
	th := structurer.ThermalData{Readings: readings("40.0 °C", "9.5 °C", "39.0 °C")}

	m := Merge(insp, th, Config{})
	require.Len(t, m.Observations, 1)
	assert.Equal(t, "9.5 °C to 40.0 °C", m.Observations[0].TemperatureRange)
}

func TestMerge_ThermalSummaryStats(t *testing.T) {
	insp := structurer.InspectionData{Areas: []structurer.Area{area(1)}}
	th := structurer.ThermalData{
		Readings: []report.ThermalReading{
			{Hotspot: "40.0 °C", Coldspot: "24.0 °C", Device: "FLIR E8", Date: "17/03/24", Emissivity: "0.95"},
			{Hotspot: "39.0 °C", Coldspot: "22.0 °C"},
		},
	}

	m := Merge(insp, th, Config{})
	s := m.ThermalSummary
	assert.Equal(t, 2, s.TotalImages)
	assert.Equal(t, "40.0 °C", s.OverallHotspot)
	assert.Equal(t, "22.0 °C", s.OverallColdspot)
	assert.Equal(t, "39.5 °C", s.AvgHotspot)
	assert.Equal(t, "18.0 °C", s.TempDifferential)
	assert.Equal(t, "FLIR E8", s.DeviceUsed)
	assert.Equal(t, "17/03/24", s.InspectionDate)
	assert.Equal(t, "0.95", s.Emissivity)
}

func TestMerge_UnparseableTemperaturesExcluded(t *testing.T) {
	insp := structurer.InspectionData{Areas: []structurer.Area{area(1)}}
	th := structurer.ThermalData{
		Readings: []report.ThermalReading{
			{Hotspot: "warm", Coldspot: ""},
			{Hotspot: "41.0 °C", Coldspot: "23.0 °C"},
		},
	}

	m := Merge(insp, th, Config{})
	s := m.ThermalSummary
	assert.Equal(t, "41.0 °C", s.OverallHotspot)
	assert.Equal(t, "41.0 °C", s.AvgHotspot)
	assert.Equal(t, "23.0 °C", s.OverallColdspot)
}

func TestMerge_EmptyThermalIsSafe(t *testing.T) {
	insp := structurer.InspectionData{Areas: []structurer.Area{area(1), area(2)}}

	m := Merge(insp, structurer.ThermalData{}, Config{})
	require.Len(t, m.Observations, 2)
	for _, o := range m.Observations {
		assert.NotNil(t, o.ThermalReadings)
		assert.Empty(t, o.ThermalReadings)
		assert.Equal(t, report.NotAvailable, o.TemperatureRange)
	}

	s := m.ThermalSummary
	assert.Equal(t, 0, s.TotalImages)
	assert.Equal(t, report.NotAvailable, s.OverallHotspot)
	assert.Equal(t, report.NotAvailable, s.TempDifferential)

	require.Len(t, m.Conflicts, 1)
	assert.Equal(t, report.ConflictMissingThermal, m.Conflicts[0].Type)
	assert.Equal(t,
		"Inspection report has 2 impacted areas, but no thermal readings found.",
		m.Conflicts[0].Detail)
}

func TestMerge_DateConflict(t *testing.T) {
	insp := structurer.InspectionData{
		SiteDetails: "Inspection Date: 15.03.2024",
		Areas:       []structurer.Area{area(1)},
	}

	t.Run("differing day detected", func(t *testing.T) {
		th := structurer.ThermalData{
			Readings: []report.ThermalReading{{Hotspot: "30.0 °C", Date: "20/03/24"}},
		}
		m := Merge(insp, th, Config{})
		require.Len(t, m.Conflicts, 1)
		assert.Equal(t, report.ConflictDateMismatch, m.Conflicts[0].Type)
		assert.Equal(t,
			"Inspection date (15.03.2024) differs from thermal scan date (20/03/24). Reports may have been prepared on different days.",
			m.Conflicts[0].Detail)
	})

	t.Run("same day and month agree despite year format", func(t *testing.T) {
		th := structurer.ThermalData{
			Readings: []report.ThermalReading{{Hotspot: "30.0 °C", Date: "15/03/24"}},
		}
		m := Merge(insp, th, Config{})
		assert.Empty(t, m.Conflicts)
	})

	t.Run("dotted thermal date is not comparable", func(t *testing.T) {
		// The thermal side is tokenized on slashes only; a dotted date yields
		// a single token and the comparison is skipped.
		th := structurer.ThermalData{
			Readings: []report.ThermalReading{{Hotspot: "30.0 °C", Date: "20.03.2024"}},
		}
		m := Merge(insp, th, Config{})
		assert.Empty(t, m.Conflicts)
	})
}

func TestMerge_MissingInfo(t *testing.T) {
	insp := structurer.InspectionData{
		SiteDetails: "Customer Name: N/A",
		Areas: []structurer.Area{
			{Number: 1, Label: "1", NegativeSide: report.NotAvailable, PositiveSide: report.NotAvailable},
		},
		Checklists: report.NotAvailable,
	}

	m := Merge(insp, structurer.ThermalData{}, Config{})
	assert.Contains(t, m.MissingInfo, "Some property details are marked as N/A or not available")
	assert.Contains(t, m.MissingInfo, "Impacted Area 1: Negative side description not available")
	assert.Contains(t, m.MissingInfo, "Impacted Area 1: Positive side description not available")
	assert.Contains(t, m.MissingInfo, "No thermal readings could be extracted from the thermal report")
	assert.Contains(t, m.MissingInfo, "Inspection checklists section not found")
}

func TestMerge_NegativeSideFallsBackToDescription(t *testing.T) {
	insp := structurer.InspectionData{
		Areas: []structurer.Area{
			{Number: 1, Label: "1", Description: "general damp observations"},
			{Number: 2, Label: "2"},
		},
	}

	m := Merge(insp, structurer.ThermalData{Readings: readings("30.0 °C")}, Config{})
	require.Len(t, m.Observations, 2)
	assert.Equal(t, "general damp observations", m.Observations[0].NegativeSide)
	assert.Equal(t, report.NotAvailable, m.Observations[1].NegativeSide)
	assert.Equal(t, report.NotAvailable, m.Observations[0].PositiveSide)
}

func TestMerge_RawContentCapped(t *testing.T) {
	insp := structurer.InspectionData{
		Areas: []structurer.Area{
			{Number: 1, Label: "1", RawContent: strings.Repeat("x", 900)},
		},
	}

	m := Merge(insp, structurer.ThermalData{}, Config{})
	require.Len(t, m.Observations, 1)
	assert.LessOrEqual(t, len(m.Observations[0].RawContent), 600)
}
