package structurer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/report"
)

// ThermalData is the structured form of one thermal survey document.
type ThermalData struct {
	RawText  string
	Readings []report.ThermalReading
}

var (
	pageMarkerRe = regexp.MustCompile(`\[Page\s*\d+\]`)

	hotspotRe    = regexp.MustCompile(`(?i)(?:Hot\s*spot|Max(?:imum)?\s*Temp(?:erature)?)\s*:?\s*([\d.]+\s*°?\s*C)`)
	coldspotRe   = regexp.MustCompile(`(?i)(?:Cold\s*spot|Min(?:imum)?\s*Temp(?:erature)?)\s*:?\s*([\d.]+\s*°?\s*C)`)
	emissivityRe = regexp.MustCompile(`(?i)Emissivity\s*:?\s*([\d.]+)`)
	reflectedRe  = regexp.MustCompile(`(?i)Reflected\s*(?:Apparent)?\s*Temp(?:erature)?\s*:?\s*([\d.]+\s*°?\s*C)`)
	imageFileRe  = regexp.MustCompile(`(?i)(?:Thermal\s*)?Image\s*:?\s*(\S+\.(?:jpe?g|png|bmp|tiff?))`)
	deviceRe     = regexp.MustCompile(`(?i)(?:Device|Camera|Equipment)\s*:?\s*(.*?)(?:Serial|\n|$)`)
	dateTokenRe  = regexp.MustCompile(`(\d{2}[/\-.]\d{2}[/\-.]\d{2,4}|\d{4}[/\-.]\d{2}[/\-.]\d{2})`)
	imageNumRe   = regexp.MustCompile(`\n(\d{1,3})\s*$`)

	tempValueRe = regexp.MustCompile(`[\d.]+`)
)

// StructureThermal splits normalized thermal text on page markers and parses
// each page into at most one reading. Pages that yield no field at all are
// dropped entirely; that is how cover sheets and blank separators are
// filtered out without any explicit page classification. Never fails.
func StructureThermal(raw string) ThermalData {
	text := Normalize(raw)
	d := ThermalData{RawText: text}

	for _, page := range pageMarkerRe.Split(text, -1) {
		if strings.TrimSpace(page) == "" {
			continue
		}
		r := parseThermalPage(page)
		if !r.Empty() {
			d.Readings = append(d.Readings, r)
		}
	}
	return d
}

func parseThermalPage(page string) report.ThermalReading {
	var r report.ThermalReading

	if m := hotspotRe.FindStringSubmatch(page); m != nil {
		r.Hotspot = formatTemp(m[1])
	}
	if m := coldspotRe.FindStringSubmatch(page); m != nil {
		r.Coldspot = formatTemp(m[1])
	}
	if m := emissivityRe.FindStringSubmatch(page); m != nil {
		r.Emissivity = m[1]
	}
	if m := reflectedRe.FindStringSubmatch(page); m != nil {
		r.ReflectedTemp = m[1]
	}
	if m := imageFileRe.FindStringSubmatch(page); m != nil {
		r.ImageFile = m[1]
	}
	if m := deviceRe.FindStringSubmatch(page); m != nil {
		r.Device = strings.TrimSpace(m[1])
	}
	if m := dateTokenRe.FindStringSubmatch(page); m != nil {
		r.Date = m[1]
	}
	// A standalone short number on the last line is the image/page counter.
	if m := imageNumRe.FindStringSubmatch(strings.TrimSpace(page)); m != nil {
		r.ImageNumber, _ = strconv.Atoi(m[1])
	}
	return r
}

// formatTemp rewrites a matched temperature to the canonical "<number> °C"
// form regardless of how the source spaced the value and degree symbol.
func formatTemp(raw string) string {
	num := tempValueRe.FindString(raw)
	if num == "" {
		return strings.TrimSpace(raw)
	}
	return num + " °C"
}
