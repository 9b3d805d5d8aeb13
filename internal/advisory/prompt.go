package advisory

import "fmt"

// Region is the farming context the report is written for.
const Region = "Jaipur, Rajasthan, India"

// Sections lists the report headings in the order the model must emit them.
var Sections = []string{
	"Disease Overview:",
	"Immediate Impact & Symptoms:",
	"Disease Timeline & Spread:",
	"Economic Impact (per Acre):",
	"Organic & Biological Cures:",
	"Chemical Cures:",
	"Prevention Plan:",
	"Related Diseases:",
}

// BuildPrompt returns the fixed advisory prompt for a human-readable disease name.
func BuildPrompt(disease string) string {
	return fmt.Sprintf(`You are an expert agricultural scientist. Your task is to generate a detailed advisory report for a farmer in %[2]s, about the crop disease: "%[1]s".

IMPORTANT INSTRUCTIONS:
- Do NOT include any preamble, introduction, or letter formatting like "To:", "From:", "Date:", or "Subject:".
- The response MUST start directly with the first section heading.
- Use markdown for formatting: Use **Section Title** for headings. Use * for bullet points.

Generate the report with these exact sections:

**%[3]s** What is %[1]s? Explain it simply.
**%[4]s** How does this disease harm the plant right now? What are the visible signs?
**%[5]s** How fast does it progress? Can it spread to other plants?
**%[6]s** Estimate the potential yield loss in percentage and approximate financial loss per acre for a typical crop in Rajasthan if left untreated. Mention the cost to cure per acre.
**%[7]s** List 3-4 practical, non-chemical treatment methods suitable for the region.
**%[8]s** List specific, commonly available fungicides or pesticides, including application instructions.
**%[9]s** A checklist of 5-6 steps the farmer can take to prevent this in the future.
**%[10]s** What other diseases might occur alongside or be mistaken for this one?
`, disease, Region,
		Sections[0], Sections[1], Sections[2], Sections[3],
		Sections[4], Sections[5], Sections[6], Sections[7])
}
