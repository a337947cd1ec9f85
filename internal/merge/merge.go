// Package merge pairs structured inspection data with thermal readings,
// computes summary statistics, detects cross-document conflicts and
// enumerates missing information. Everything here is a pure function over
// already-structured input: no I/O, and absence is always represented as
// data, never as an error.
package merge

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/report"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/structurer"
)

// Config carries the merge-time tunables. Zero values fall back to defaults.
type Config struct {
	// ThermalStride is the number of thermal images assumed to be captured
	// per impacted area, in area order. This positional pairing is a design
	// approximation, not a content match: nothing validates it against the
	// actual images.
	ThermalStride int
	// MaxRawContentChars caps the raw content snippet of a merged record.
	MaxRawContentChars int
}

// DefaultConfig returns the merge tunables used when none are given.
func DefaultConfig() Config {
	return Config{ThermalStride: 3, MaxRawContentChars: 600}
}

// Merge combines one inspection document and one thermal document into the
// unified report handed to the narrative provider.
func Merge(insp structurer.InspectionData, th structurer.ThermalData, cfg Config) *report.Merged {
	if cfg.ThermalStride <= 0 {
		cfg.ThermalStride = DefaultConfig().ThermalStride
	}
	if cfg.MaxRawContentChars <= 0 {
		cfg.MaxRawContentChars = DefaultConfig().MaxRawContentChars
	}

	return &report.Merged{
		PropertyInfo:      insp.PropertyInfo,
		Observations:      mergeObservations(insp.Areas, th.Readings, cfg),
		ThermalSummary:    summarizeThermal(th.Readings),
		ChecklistFindings: insp.Checklists,
		SummaryTable:      insp.SummaryTable,
		Conflicts:         detectConflicts(insp, th),
		MissingInfo:       identifyMissing(insp, th),
	}
}

func mergeObservations(areas []structurer.Area, readings []report.ThermalReading, cfg Config) []report.Observation {
	obs := make([]report.Observation, 0, len(areas))
	for _, a := range areas {
		o := report.Observation{
			AreaNumber:       a.Number,
			AreaLabel:        a.Label,
			NegativeSide:     firstNonEmpty(a.NegativeSide, a.Description),
			PositiveSide:     firstNonEmpty(a.PositiveSide),
			RawContent:       structurer.Truncate(a.RawContent, cfg.MaxRawContentChars),
			ThermalReadings:  []report.ThermalReading{},
			TemperatureRange: report.NotAvailable,
		}

		// Positional pairing: area N owns the N-th stride-sized window of
		// readings, clipped to the reading list. Non-numeric labels get none.
		if a.Numbered() {
			start := (a.Number - 1) * cfg.ThermalStride
			if start >= 0 && start < len(readings) {
				end := min(start+cfg.ThermalStride, len(readings))
				o.ThermalReadings = append(o.ThermalReadings, readings[start:end]...)
				if tr := temperatureRange(o.ThermalReadings); tr != "" {
					o.TemperatureRange = tr
				}
			}
		}
		obs = append(obs, o)
	}
	return obs
}

// temperatureRange picks the numerically lowest and highest hotspot among the
// readings and renders their formatted strings; readings without a parseable
// hotspot are skipped.
func temperatureRange(readings []report.ThermalReading) string {
	var minStr, maxStr string
	var minVal, maxVal float64
	found := false
	for _, r := range readings {
		v, err := parseTemp(r.Hotspot)
		if err != nil {
			continue
		}
		if !found || v < minVal {
			minVal, minStr = v, r.Hotspot
		}
		if !found || v > maxVal {
			maxVal, maxStr = v, r.Hotspot
		}
		found = true
	}
	if !found {
		return ""
	}
	return fmt.Sprintf("%s to %s", minStr, maxStr)
}

func summarizeThermal(readings []report.ThermalReading) report.ThermalSummary {
	s := report.ThermalSummary{
		TotalImages:      len(readings),
		OverallHotspot:   report.NotAvailable,
		OverallColdspot:  report.NotAvailable,
		AvgHotspot:       report.NotAvailable,
		TempDifferential: report.NotAvailable,
		DeviceUsed:       report.NotAvailable,
		InspectionDate:   report.NotAvailable,
		Emissivity:       report.NotAvailable,
	}
	if len(readings) == 0 {
		return s
	}

	// Values that fail to parse are excluded from the statistics, never an
	// error.
	var hotspots, coldspots []float64
	for _, r := range readings {
		if v, err := parseTemp(r.Hotspot); err == nil {
			hotspots = append(hotspots, v)
		}
		if v, err := parseTemp(r.Coldspot); err == nil {
			coldspots = append(coldspots, v)
		}
	}

	if len(hotspots) > 0 {
		s.OverallHotspot = fmt.Sprintf("%.1f °C", slices.Max(hotspots))
		var sum float64
		for _, v := range hotspots {
			sum += v
		}
		s.AvgHotspot = fmt.Sprintf("%.1f °C", sum/float64(len(hotspots)))
	}
	if len(coldspots) > 0 {
		s.OverallColdspot = fmt.Sprintf("%.1f °C", slices.Min(coldspots))
	}
	if len(hotspots) > 0 && len(coldspots) > 0 {
		s.TempDifferential = fmt.Sprintf("%.1f °C", slices.Max(hotspots)-slices.Min(coldspots))
	}

	first := readings[0]
	if first.Device != "" {
		s.DeviceUsed = first.Device
	}
	if first.Date != "" {
		s.InspectionDate = first.Date
	}
	if first.Emissivity != "" {
		s.Emissivity = first.Emissivity
	}
	return s
}

var inspectionDateRe = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)

func detectConflicts(insp structurer.InspectionData, th structurer.ThermalData) []report.Conflict {
	var conflicts []report.Conflict

	inspDate := inspectionDateRe.FindString(insp.SiteDetails)
	var thermalDate string
	if len(th.Readings) > 0 {
		thermalDate = th.Readings[0].Date
	}
	if inspDate != "" && thermalDate != "" {
		// Literal day/month token comparison, deliberately not calendar
		// aware: "1/03/24" vs "01.03.2024" still conflicts.
		ip := strings.Split(inspDate, ".")
		tp := strings.Split(thermalDate, "/")
		if len(ip) >= 2 && len(tp) >= 2 && (ip[0] != tp[0] || ip[1] != tp[1]) {
			conflicts = append(conflicts, report.Conflict{
				Type: report.ConflictDateMismatch,
				Detail: fmt.Sprintf(
					"Inspection date (%s) differs from thermal scan date (%s). Reports may have been prepared on different days.",
					inspDate, thermalDate),
			})
		}
	}

	if len(insp.Areas) > 0 && len(th.Readings) == 0 {
		conflicts = append(conflicts, report.Conflict{
			Type: report.ConflictMissingThermal,
			Detail: fmt.Sprintf(
				"Inspection report has %d impacted areas, but no thermal readings found.",
				len(insp.Areas)),
		})
	}
	return conflicts
}

func identifyMissing(insp structurer.InspectionData, th structurer.ThermalData) []string {
	var missing []string

	if insp.SiteDetails == "" || strings.Contains(insp.SiteDetails, "N/A") {
		missing = append(missing, "Some property details are marked as N/A or not available")
	}
	if len(insp.Areas) == 0 {
		missing = append(missing, "No impacted areas could be extracted from the inspection report")
	}
	for _, a := range insp.Areas {
		label := a.Label
		if label == "" {
			label = "?"
		}
		if a.NegativeSide == report.NotAvailable {
			missing = append(missing, fmt.Sprintf("Impacted Area %s: Negative side description not available", label))
		}
		if a.PositiveSide == report.NotAvailable {
			missing = append(missing, fmt.Sprintf("Impacted Area %s: Positive side description not available", label))
		}
	}
	if len(th.Readings) == 0 {
		missing = append(missing, "No thermal readings could be extracted from the thermal report")
	}
	if insp.Checklists == "" || insp.Checklists == report.NotAvailable {
		missing = append(missing, "Inspection checklists section not found")
	}
	return missing
}

func parseTemp(s string) (float64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, "°C", ""))
	return strconv.ParseFloat(s, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return report.NotAvailable
}
