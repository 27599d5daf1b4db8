package ai

import (
	"context"
	"fmt"
	"strings"
)

type mockClient struct{}

// NewMock answers every flow with canned content so the app runs without
// model credentials.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) Complete(_ context.Context, p Prompt) (string, error) {
	switch p.Flow {
	case FlowAdvice:
		return `{
  "introduction": "Offline sample advice. Configure an AI provider for tailored guidance.",
  "soilPreparation": ["Clear the field and dig to 20-30 cm.", "Mix in well-rotted manure two weeks before planting."],
  "plantingProcess": ["Plant at the onset of the rains.", "Space rows 75 cm apart."],
  "waterManagement": "Rely on seasonal rains; mulch to hold moisture in dry spells.",
  "weedingSchedule": "Weed 2-3 weeks after emergence and again before flowering.",
  "pestAndDiseaseControl": ["Scout weekly for fall armyworm.", "Remove and burn diseased plants."],
  "fertilization": "Apply DAP at planting and top-dress with CAN at knee height.",
  "harvestingTips": ["Harvest when husks are dry and grains are hard."],
  "postHarvestHandling": ["Dry to 13% moisture before storage.", "Store in hermetic bags."],
  "specialConsiderations": "Consider intercropping with beans to improve soil fertility."
}`, nil
	case FlowAutofill:
		return `{"plantingMonthsStr":"Mar-Apr, Aug-Sep","harvestMonthsStr":"Jul-Aug, Dec-Jan","weedingInfo":"2-3 weeks after planting, then as needed.","notes":"Offline sample suggestion.","iconHint":"plant leaf","cropType":"Traditional"}`, nil
	case FlowDiagnose:
		return `{
  "identification": {"isExpectedPlant": true, "confidence": "Low"},
  "healthAssessment": {"overallHealth": "Offline sample assessment; no image analysis was performed."},
  "growthStageAdvice": {"expectedStage": "Vegetative growth", "stageSpecificCareTips": ["Keep the field weed-free."]},
  "recommendations": {"suggestedActions": ["Configure an AI provider for a real diagnosis."]}
}`, nil
	case FlowArticle:
		return `{
  "title": "Building Healthier Soils Season by Season",
  "introduction": "Offline sample article introduction.",
  "bodySectionHints": ["Why soil health matters", "Simple composting steps"],
  "fullArticleText": "## Why soil health matters\n\nHealthy soil holds water and feeds crops.\n\n## Simple composting steps\n\n1. Collect crop residue.\n2. Layer with manure.\n3. Turn every two weeks.",
  "conclusion": "Small steps each season add up to better harvests.",
  "source": "AgriAdvisor AI Digest",
  "imageHint": "compost pile",
  "imagePromptSuggestion": "A farmer turning a compost heap beside a green field."
}`, nil
	case FlowNews:
		return `{"title":"Farmers Share Seed Through Village Banks","summary":"Offline sample news snippet about community seed banks.","source":"AgriTech AI Digest","imageHint":"seed bank","imagePromptSuggestion":"Farmers exchanging seed bags at a village meeting."}`, nil
	case FlowChat:
		return fmt.Sprintf("(offline) You asked: %s", strings.TrimSpace(p.User)), nil
	}
	return "", fmt.Errorf("mock: unknown flow %q", p.Flow)
}
