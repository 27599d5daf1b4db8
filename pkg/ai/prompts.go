package ai

import (
	"fmt"
	"strings"
)

const ChatSystemInstruction = `You are an expert AI Farming Advisor for Uganda.
Be helpful, friendly, and provide concise, accurate information related to farming, crops, livestock, soil health, pest control, irrigation, and market information relevant to Uganda.
If the user asks a question outside of farming topics, politely decline to answer and steer the conversation back to agriculture.
Keep your answers relatively brief unless the user asks for more detail.
You can use markdown for light formatting like lists or bolding if it enhances clarity.`

const ChatAcknowledgement = "Okay, I understand. I'm ready to help with farming queries related to Uganda."

const jsonOnly = "Reply ONLY with a single valid JSON object. Do not omit any field."

func regionLine(region, withRegion, without string) string {
	if region != "" {
		return fmt.Sprintf(withRegion, region)
	}
	return without
}

func renderAdvicePrompt(in AdviceInput) (system, user string) {
	system = fmt.Sprintf("You are an expert agricultural advisor specializing in deep, research-based, actionable guidance for farming in %s. %s",
		in.Country, jsonOnly)
	var b strings.Builder
	b.WriteString(regionLine(in.Region, "You are focusing on the %s region.\n", "You are providing general advice for the whole country.\n"))
	fmt.Fprintf(&b, `Generate a comprehensive, step-by-step planting, management and harvesting plan covering the whole crop lifecycle.
Take the current date into account (e.g. if it is mid-season).

Country: %s
Region: %s
Crop: %s
Current Date: %s

JSON fields:
- introduction (string)
- soilPreparation (array of strings)
- plantingProcess (array of strings)
- waterManagement (string)
- weedingSchedule (string)
- pestAndDiseaseControl (array of strings)
- fertilization (string)
- harvestingTips (array of strings)
- postHarvestHandling (array of strings)
- specialConsiderations (string)

If a section does not apply, say "Not typically required" for strings or use an empty array.`,
		in.Country, orDefault(in.Region, "not specified"), in.Crop, in.CurrentDate)
	return system, b.String()
}

func renderAutofillPrompt(in AutofillInput) (system, user string) {
	system = "You are an agricultural expert specializing in crops and farming practices for various countries. " + jsonOnly
	region := orDefault(in.Region, "Not specified (provide general advice for the country)")
	user = fmt.Sprintf(`Suggest calendar details for a crop, adapted to the region and to where the current month falls in the season.

Country: %s
Crop Name: %s
Region: %s
Current Month: %s

JSON fields:
- plantingMonthsStr: planting months as a parsable string such as "Mar-Apr, Sep"
- harvestMonthsStr: harvest months in the same format, consistent with the planting months
- weedingInfo: local weeding guidance
- notes: a note of at most 150 characters
- iconHint: a 1-2 word icon hint such as "maize cob"
- cropType: "Traditional" or "Modern"

Example:
{"plantingMonthsStr":"Mar-May, Sep-Oct","harvestMonthsStr":"Jul-Aug, Dec-Jan","weedingInfo":"First weeding 2-3 weeks after emergence.","notes":"Staple cereal.","iconHint":"corn cob","cropType":"Modern"}`,
		in.Country, in.CropName, region, in.CurrentMonth)
	return system, user
}

func renderDiagnosePrompt(in DiagnoseInput, days int) (system, user string) {
	system = "You are an expert agronomist and plant pathologist for Uganda, specializing in visual crop assessment and growth tracking. " + jsonOnly
	user = fmt.Sprintf(`The attached photo shows a crop from the %s region of Uganda.

Expected Crop Name: %s
Planting Date: %s
Current Date: %s
Days Since Planting: %d

JSON fields:
- identification: {isExpectedPlant (bool, true only if reasonably confident the photo shows the expected crop), identifiedPlantName, confidence (High|Medium|Low)}
- healthAssessment: {overallHealth, leafAnalysis {color, texture, abnormalities[]}, pestIndicators {pestsVisible[], signsOfPests[]}, diseaseIndicators {symptoms[], potentialDiseases[]}, fruitFlowerAnalysis, overallStatusNotes}
- growthStageAdvice: {daysSincePlanting, expectedStage, stageSpecificCareTips[] (2-4 tips)}
- recommendations: {nutrientDeficiencyHints, wateringStressHints, suggestedActions[] (2-4 steps)}
- additionalNotes

If something cannot be judged from the image, say so in the relevant field.`,
		in.Region, in.CropName, in.PlantingDate, in.CurrentDate, days)
	return system, user
}

func renderArticlePrompt(in ArticleInput, today string) (system, user string) {
	system = "You are an expert writing comprehensive, engaging and practical farming articles for smallholder and medium-scale farmers. " + jsonOnly
	var b strings.Builder
	fmt.Fprintf(&b, "Write an article of roughly 1500 words relevant to %s", in.Country)
	b.WriteString(regionLine(in.Region, ", specifically the %s region.\n", ".\n"))
	b.WriteString(regionLine(in.Topic, "The main topic is: %s\n", "Pick a general farming improvement or innovation relevant to the context.\n"))
	fmt.Fprintf(&b, `Today's date is %s.

Structure:
1. title: catchy, at most 15 words.
2. introduction: one paragraph with a hook, why it matters, the topic and what the reader gains.
3. bodySectionHints: 2-4 short theme phrases.
4. fullArticleText: the body in markdown, one "## " heading per body section hint, with step-by-step lists, plausible statistics and short farmer examples.
5. conclusion: one paragraph with key takeaways and an encouraging close.
Also provide source, imageHint (1-2 words) and imagePromptSuggestion.`, today)
	return system, b.String()
}

func renderNewsPrompt(in NewsInput, today string) (system, user string) {
	system = "You generate plausible, clearly fictional but realistic-sounding agriculture news snippets. Keep them positive or informative. " + jsonOnly
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a news snippet for %s.\n", in.Country)
	b.WriteString(regionLine(in.Region, "Focus on the %s region.\n", ""))
	b.WriteString(regionLine(in.Topic, "The topic is %s.\n", ""))
	fmt.Fprintf(&b, `Today's date is %s.

JSON fields: title (max 15 words), summary (2-3 sentences, max 70 words), source, date, imageHint (1-2 words), imagePromptSuggestion.`, today)
	return system, b.String()
}
