package narrative

import "strings"

// systemPrompt anchors every LLM call. It forbids invented facts and forces
// "Not Available" for anything missing from the merged data.
const systemPrompt = `You are a professional building inspection report writer working for a waterproofing and diagnostics company. Your job is to generate a Detailed Diagnostic Report (DDR) from raw inspection data.

STRICT RULES:
1. ONLY use information explicitly present in the provided data. Never invent or assume facts.
2. If any information is missing, write "Not Available" - do NOT guess.
3. If two data sources conflict, explicitly mention the conflict and present both versions.
4. Use simple, client-friendly language. The reader is a property owner, not an engineer.
5. Be specific - mention exact locations, flat numbers, area names as found in the data.
6. For severity assessment, provide clear reasoning based on the observations.
7. Keep the tone professional but accessible.`

const generationHead = `Based on the following inspection data extracted from site documents, generate a professional Detailed Diagnostic Report (DDR).

--- START OF EXTRACTED DATA ---
`

const generationTail = `
--- END OF EXTRACTED DATA ---

Generate the DDR with EXACTLY these sections. Use the data above and follow the formatting below:

## 1. PROPERTY ISSUE SUMMARY
Write a 3-5 sentence overview of the key issues found during inspection. Mention the property type, location if available, and the primary concerns identified.

## 2. AREA-WISE OBSERVATIONS
For EACH impacted area found in the data, create a sub-section with:
- **Location**: Where exactly the issue is
- **Negative Side (Damage Observed)**: What damage/problem was seen
- **Positive Side (Probable Source)**: Where the issue is originating from
- **Thermal Findings**: If thermal data is available for this area, include temperature readings
- **Visual Evidence**: Reference any photos mentioned

Present each area clearly separated. If an area has no data for a field, write "Not Available".

## 3. PROBABLE ROOT CAUSE
Based on the observations, explain the likely root causes. Connect the positive side findings (source) to the negative side issues (damage). Think about water pathways, structural connections, and material failures.

## 4. SEVERITY ASSESSMENT
Rate the overall severity and per-area severity using: Low / Moderate / High / Critical
For each rating, explain WHY based on observable evidence:
- What makes it that severity level?
- Is it getting worse or stable?
- What's the risk if left untreated?

## 5. RECOMMENDED ACTIONS
List practical remediation steps, organized by priority:
- **Immediate** (within 1-2 weeks)
- **Short-term** (within 1-3 months)
- **Long-term** (preventive measures)

Be specific about treatments, materials, or approaches mentioned in the inspection data.

## 6. ADDITIONAL NOTES
Include any relevant context such as:
- Weather/seasonal considerations
- Previous repair history
- Structural concerns
- Equipment used during inspection
- Any caveats about the inspection scope

## 7. MISSING OR UNCLEAR INFORMATION
List ALL information that was:
- Explicitly marked as "N/A" or "Not Available" in the source data
- Expected but not found in either document
- Conflicting between the inspection report and thermal report

For each item, note what it is and why it matters for the diagnosis.

IMPORTANT REMINDERS:
- Do NOT invent any facts. Everything must trace back to the provided data.
- Use "Not Available" when data is missing - never guess.
- Mention any conflicts between documents explicitly.
- Write for a property owner - avoid unnecessary jargon.
`

// BuildGenerationPrompt wraps the merged data in the DDR generation prompt.
// Concatenation instead of a format string keeps any stray verbs in the
// merged data from being misinterpreted.
func BuildGenerationPrompt(mergedData string) string {
	var b strings.Builder
	b.Grow(len(generationHead) + len(mergedData) + len(generationTail))
	b.WriteString(generationHead)
	b.WriteString(mergedData)
	b.WriteString(generationTail)
	return b.String()
}

// BuildValidationPrompt asks the model to cross-check a generated report
// against the source data it was built from.
func BuildValidationPrompt(mergedData, report string) string {
	var b strings.Builder
	b.WriteString("Review the following DDR report for accuracy. Check it against the source data provided.\n\nSOURCE DATA:\n")
	b.WriteString(mergedData)
	b.WriteString("\n\nGENERATED REPORT:\n")
	b.WriteString(report)
	b.WriteString(`

Check for:
1. Any claims in the report NOT supported by the source data (hallucinations)
2. Any important observations from the source data MISSING from the report
3. Any "Not Available" items that actually have data in the source
4. Any severity ratings that don't match the evidence

Respond with:
- ISSUES FOUND: List each problem found (or "None" if the report is accurate)
- SUGGESTED FIXES: For each issue, suggest what should be changed
- OVERALL QUALITY: Rate as Good / Needs Minor Fixes / Needs Major Revision
`)
	return b.String()
}
