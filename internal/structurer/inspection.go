package structurer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/report"
)

// Config carries the tunable bounds applied while structuring a document.
// Zero values fall back to the defaults.
type Config struct {
	MaxAreaDescChars   int // cap on negative/positive side descriptions
	MaxRawContentChars int // cap on per-area raw content snippets
	MaxChecklistChars  int // cap on the checklist block
	SiteFallbackChars  int // site-details span kept when no header matches
	DegradedRawChars   int // raw span kept for the synthesized single area
}

// DefaultConfig returns the bounds used throughout when none are given.
func DefaultConfig() Config {
	return Config{
		MaxAreaDescChars:   400,
		MaxRawContentChars: 600,
		MaxChecklistChars:  3000,
		SiteFallbackChars:  800,
		DegradedRawChars:   2000,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxAreaDescChars <= 0 {
		c.MaxAreaDescChars = d.MaxAreaDescChars
	}
	if c.MaxRawContentChars <= 0 {
		c.MaxRawContentChars = d.MaxRawContentChars
	}
	if c.MaxChecklistChars <= 0 {
		c.MaxChecklistChars = d.MaxChecklistChars
	}
	if c.SiteFallbackChars <= 0 {
		c.SiteFallbackChars = d.SiteFallbackChars
	}
	if c.DegradedRawChars <= 0 {
		c.DegradedRawChars = d.DegradedRawChars
	}
	return c
}

// Area is an impacted-area record as read from the inspection document,
// before thermal pairing. Description is only set on the degraded paths
// where no negative/positive split was possible.
type Area struct {
	Number       int // 0 when the header label was not numeric
	Label        string
	NegativeSide string
	PositiveSide string
	Description  string
	RawContent   string
}

// Numbered reports whether the area carries a usable 1-indexed number.
func (a Area) Numbered() bool { return a.Number > 0 }

// InspectionData is the structured form of one inspection document.
type InspectionData struct {
	RawText      string
	SiteDetails  string
	PropertyInfo report.PropertyInfo
	Areas        []Area
	Checklists   string
	SummaryTable string
}

var siteDetailsChain = NewChain(
	`(?is)(Customer\s*Name.*?)(?:Impacted\s*Area|Affected\s*Area|Observation\s*Area|Area\s*(?:of\s*)?(?:Concern|Inspection)|Checklists?|Check\s*List|Findings|$)`,
	`(?is)(Inspection\s*(?:Form|Report|Details?).*?)(?:Impacted\s*Area|Affected\s*Area|Observation|Area\s*\d|Checklists?|$)`,
	`(?is)((?:Site|Property|Project)\s*(?:Details?|Information|Info).*?)(?:Impacted\s*Area|Affected\s*Area|Observation|Area\s*\d|Checklists?|$)`,
	`(?is)((?:Client|Owner)\s*(?:Name|Details?).*?)(?:Impacted\s*Area|Affected\s*Area|Observation|Area\s*\d|Checklists?|$)`,
)

// Property field chains, applied to the site-details span only.
var (
	propertyTypeChain    = NewChain(`(?i)Property\s*Type\s*:?\s*(.*?)(?:\n|$)`)
	addressChain         = NewChain(`(?i)Address\s*:?\s*(.*?)(?:\n|$)`)
	floorsChain          = NewChain(`(?i)Floors\s*:?\s*(\d+)`)
	propertyAgeChain     = NewChain(`(?i)Property\s*Age.*?:?\s*(\d+)`)
	inspectionDateChain  = NewChain(`(?i)Inspection\s*Date.*?:?\s*([\d./]+)`)
	inspectedByChain     = NewChain(`(?i)Inspected\s*By\s*:?\s*(.*?)(?:\n|$)`)
	previousRepairsChain = NewChain(`(?i)Previous\s*Repair.*?:?\s*(Yes|No)`)
	previousAuditChain   = NewChain(`(?i)Previous\s*Structural\s*audit.*?:?\s*(Yes|No)`)
)

// Area header patterns, ranked most specific first. The first pattern that
// splits the text into more than one segment wins.
var areaHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Impacted\s*Area\s*(\d+)`),
	regexp.MustCompile(`(?i)Affected\s*Area\s*(\d+)`),
	regexp.MustCompile(`(?i)Observation\s*Area\s*(\d+)`),
	regexp.MustCompile(`(?i)Area\s*(?:of\s*)?(?:Concern|Inspection)\s*(\d+)`),
	regexp.MustCompile(`(?i)(?:Location|Zone|Section)\s*(\d+)`),
	regexp.MustCompile(`(?i)Area\s*#?\s*(\d+)`),
}

// Secondary split markers for documents without numbered area headers.
var obsSplitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Negative|Positive)\s*side\s*(?:Description|Observations?)`),
	regexp.MustCompile(`(?i)(?:Damage|Issue)\s*(?:Observed|Description)`),
	regexp.MustCompile(`(?i)Observation\s*(?:Details?|Description)`),
}

var (
	negativeSideChain = NewChain(
		`(?is)Negative\s*side\s*(?:Description|Observations?)\s*(.*?)(?:Positive\s*side|Impacted\s*Area|Affected\s*Area|Observation\s*Area|Area\s*#?\s*\d|$)`,
		`(?is)(?:Damage|Issue|Problem)\s*(?:Observed|Description|Details?)\s*:?\s*(.*?)(?:Positive\s*side|Probable\s*(?:Source|Cause)|Impacted|Affected|Area\s*#?\s*\d|$)`,
	)
	positiveSideChain = NewChain(
		`(?is)Positive\s*side\s*(?:Description|Observations?)\s*(.*?)(?:Impacted\s*Area|Affected\s*Area|Observation\s*Area|Negative\s*side|Area\s*#?\s*\d|$)`,
		`(?is)(?:Probable\s*(?:Source|Cause)|Source\s*(?:of\s*)?(?:Issue|Problem|Leak))\s*:?\s*(.*?)(?:Impacted|Affected|Negative|Damage|Area\s*#?\s*\d|$)`,
	)
)

var checklistChain = NewChain(
	`(?is)(Checklists?.*?)(?:SUMMARY\s*TABLE|Summary\s*(?:of\s*)?Findings|Appendix|$)`,
	`(?is)(Check\s*List.*?)(?:Summary|Appendix|$)`,
	`(?is)(Inspection\s*(?:Checklist|Findings).*?)(?:Summary|Appendix|$)`,
	`(?is)((?:Site|Building)\s*(?:Checklist|Check\s*List).*?)(?:Summary|Appendix|$)`,
)

var summaryTableChain = NewChain(
	`(?is)(SUMMARY\s*TABLE.*?)(?:Appendix|Photo\s*1|$)`,
	`(?is)(Summary\s*(?:of\s*)?(?:Findings|Observations|Issues).*?)(?:Appendix|Photo|Annexure|$)`,
	`(?is)((?:Observation|Inspection)\s*Summary.*?)(?:Appendix|Photo|Annexure|$)`,
	`(?is)((?:Final|Overall)\s*Summary.*?)(?:Appendix|Photo|Annexure|$)`,
)

// StructureInspection normalizes raw page-marked inspection text and applies
// the pattern chains to produce a structurally complete record. It never
// fails: every field has a defined fallback, and when no area header matches
// anywhere a single degraded area is synthesized so that observations are
// never empty. Callers can tell the degraded record apart because both of its
// side descriptions are NotAvailable.
func StructureInspection(raw string, cfg Config) InspectionData {
	cfg = cfg.withDefaults()
	text := Normalize(raw)

	site := extractSiteDetails(text, cfg)
	d := InspectionData{
		RawText:      text,
		SiteDetails:  site,
		PropertyInfo: extractPropertyInfo(site),
		Areas:        extractAreas(text, cfg),
		Checklists:   extractChecklists(text, cfg),
		SummaryTable: summaryTableChain.First(text),
	}

	if len(d.Areas) == 0 {
		degraded := Truncate(text, cfg.DegradedRawChars)
		d.Areas = []Area{{
			Number:       1,
			Label:        "1",
			NegativeSide: report.NotAvailable,
			PositiveSide: report.NotAvailable,
			Description:  degraded,
			RawContent:   degraded,
		}}
	}
	return d
}

func extractSiteDetails(text string, cfg Config) string {
	if v, ok := siteDetailsChain.Find(text); ok {
		return v
	}
	return Truncate(text, cfg.SiteFallbackChars)
}

func extractPropertyInfo(site string) report.PropertyInfo {
	return report.PropertyInfo{
		RawDetails:      site,
		PropertyType:    propertyTypeChain.First(site),
		Address:         addressChain.First(site),
		Floors:          floorsChain.First(site),
		PropertyAge:     propertyAgeChain.First(site),
		InspectionDate:  inspectionDateChain.First(site),
		InspectedBy:     inspectedByChain.First(site),
		PreviousRepairs: previousRepairsChain.First(site),
		PreviousAudit:   previousAuditChain.First(site),
	}
}

func extractAreas(text string, cfg Config) []Area {
	for _, re := range areaHeaderPatterns {
		labels, contents := splitCaptured(re, text)
		if len(labels) > 0 {
			return buildAreas(labels, contents, cfg)
		}
	}

	// No numbered headers anywhere: fall back to splitting on observation
	// markers and number the areas by split order. Only a raw description is
	// recoverable on this path.
	for _, re := range obsSplitPatterns {
		parts := re.Split(text, -1)
		if len(parts) <= 1 {
			continue
		}
		var areas []Area
		for i, part := range parts[1:] {
			snippet := strings.TrimSpace(Truncate(part, cfg.MaxAreaDescChars))
			if snippet == "" {
				continue
			}
			areas = append(areas, Area{
				Number:      i + 1,
				Label:       strconv.Itoa(i + 1),
				Description: snippet,
			})
		}
		return areas
	}
	return nil
}

func buildAreas(labels, contents []string, cfg Config) []Area {
	areas := make([]Area, 0, len(labels))
	for i, label := range labels {
		content := strings.TrimSpace(contents[i])
		a := Area{
			Label:        label,
			NegativeSide: report.NotAvailable,
			PositiveSide: report.NotAvailable,
			RawContent:   Truncate(content, cfg.MaxRawContentChars),
		}
		if n, err := strconv.Atoi(label); err == nil {
			a.Number = n
		}
		if v, ok := negativeSideChain.Find(content); ok {
			a.NegativeSide = Truncate(v, cfg.MaxAreaDescChars)
		}
		if v, ok := positiveSideChain.Find(content); ok {
			a.PositiveSide = Truncate(v, cfg.MaxAreaDescChars)
		}
		areas = append(areas, a)
	}
	return areas
}

func extractChecklists(text string, cfg Config) string {
	if v, ok := checklistChain.Find(text); ok {
		return Truncate(v, cfg.MaxChecklistChars)
	}
	return report.NotAvailable
}
