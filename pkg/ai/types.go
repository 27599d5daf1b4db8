package ai

import "agniro/pkg/months"

const (
	FlowAdvice   = "plantingAdvice"
	FlowAutofill = "cropAutofill"
	FlowDiagnose = "diagnosePlantHealth"
	FlowChat     = "farmingChat"
	FlowArticle  = "farmingArticle"
	FlowNews     = "farmingNews"
)

type AdviceInput struct {
	Country     string `json:"countryName"`
	Region      string `json:"region"`
	Crop        string `json:"crop"`
	CurrentDate string `json:"currentDate"`
}

type PlantingAdvice struct {
	Introduction          string   `json:"introduction"`
	SoilPreparation       []string `json:"soilPreparation"`
	PlantingProcess       []string `json:"plantingProcess"`
	WaterManagement       string   `json:"waterManagement"`
	WeedingSchedule       string   `json:"weedingSchedule"`
	PestAndDiseaseControl []string `json:"pestAndDiseaseControl"`
	Fertilization         string   `json:"fertilization"`
	HarvestingTips        []string `json:"harvestingTips"`
	PostHarvestHandling   []string `json:"postHarvestHandling"`
	SpecialConsiderations string   `json:"specialConsiderations"`
}

type AutofillInput struct {
	Country      string       `json:"countryName"`
	CropName     string       `json:"cropName"`
	Region       string       `json:"region"`
	CurrentMonth months.Month `json:"currentMonth"`
}

type CropAutofill struct {
	PlantingMonthsStr string `json:"plantingMonthsStr"`
	HarvestMonthsStr  string `json:"harvestMonthsStr"`
	WeedingInfo       string `json:"weedingInfo"`
	Notes             string `json:"notes"`
	IconHint          string `json:"iconHint"`
	CropType          string `json:"cropType"`
}

type DiagnoseInput struct {
	CropName     string `json:"cropName"`
	PlantingDate string `json:"plantingDate"`
	CurrentDate  string `json:"currentDate"`
	PhotoDataURI string `json:"photoDataUri"`
	Region       string `json:"region"`
}

type Identification struct {
	IsExpectedPlant     bool   `json:"isExpectedPlant"`
	IdentifiedPlantName string `json:"identifiedPlantName,omitempty"`
	Confidence          string `json:"confidence,omitempty"`
}

type LeafAnalysis struct {
	Color         string   `json:"color,omitempty"`
	Texture       string   `json:"texture,omitempty"`
	Abnormalities []string `json:"abnormalities,omitempty"`
}

type PestIndicators struct {
	PestsVisible []string `json:"pestsVisible,omitempty"`
	SignsOfPests []string `json:"signsOfPests,omitempty"`
}

type DiseaseIndicators struct {
	Symptoms          []string `json:"symptoms,omitempty"`
	PotentialDiseases []string `json:"potentialDiseases,omitempty"`
}

type HealthAssessment struct {
	OverallHealth       string            `json:"overallHealth"`
	LeafAnalysis        LeafAnalysis      `json:"leafAnalysis"`
	PestIndicators      PestIndicators    `json:"pestIndicators"`
	DiseaseIndicators   DiseaseIndicators `json:"diseaseIndicators"`
	FruitFlowerAnalysis string            `json:"fruitFlowerAnalysis,omitempty"`
	OverallStatusNotes  string            `json:"overallStatusNotes,omitempty"`
}

type GrowthStageAdvice struct {
	DaysSincePlanting     int      `json:"daysSincePlanting"`
	ExpectedStage         string   `json:"expectedStage"`
	StageSpecificCareTips []string `json:"stageSpecificCareTips"`
}

type Recommendations struct {
	NutrientDeficiencyHints string   `json:"nutrientDeficiencyHints,omitempty"`
	WateringStressHints     string   `json:"wateringStressHints,omitempty"`
	SuggestedActions        []string `json:"suggestedActions"`
}

type Diagnosis struct {
	Identification    Identification    `json:"identification"`
	HealthAssessment  HealthAssessment  `json:"healthAssessment"`
	GrowthStageAdvice GrowthStageAdvice `json:"growthStageAdvice"`
	Recommendations   Recommendations   `json:"recommendations"`
	AdditionalNotes   string            `json:"additionalNotes,omitempty"`
}

type ChatInput struct {
	UserQuery   string    `json:"userQuery"`
	ChatHistory []Message `json:"chatHistory"`
}

type ChatReply struct {
	AIResponse string `json:"aiResponse"`
}

type ArticleInput struct {
	Country string `json:"countryName"`
	Region  string `json:"region,omitempty"`
	Topic   string `json:"topic,omitempty"`
}

type ArticleDraft struct {
	Title                 string   `json:"title"`
	Introduction          string   `json:"introduction"`
	BodySectionHints      []string `json:"bodySectionHints"`
	FullArticleText       string   `json:"fullArticleText"`
	Conclusion            string   `json:"conclusion"`
	Source                string   `json:"source"`
	Date                  string   `json:"date"`
	ImageHint             string   `json:"imageHint"`
	ImagePromptSuggestion string   `json:"imagePromptSuggestion"`
}

type NewsInput = ArticleInput

type NewsSnippet struct {
	Title                 string `json:"title"`
	Summary               string `json:"summary"`
	Source                string `json:"source"`
	Date                  string `json:"date"`
	ImageHint             string `json:"imageHint"`
	ImagePromptSuggestion string `json:"imagePromptSuggestion"`
}
