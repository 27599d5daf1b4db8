package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	missingSection = "Information not provided by AI for this section."
	dateLayout     = "2006-01-02"
)

// Flows runs each advisory request against the model and repairs the
// reply so callers always get every field.
type Flows struct {
	llm     Client
	log     *zap.Logger
	now     func() time.Time
	timeout time.Duration
}

func NewFlows(llm Client, log *zap.Logger, timeout time.Duration) *Flows {
	return &Flows{llm: llm, log: log, now: time.Now, timeout: timeout}
}

// WithClock returns a copy of f reading the current time from now.
func (f *Flows) WithClock(now func() time.Time) *Flows {
	cp := *f
	cp.now = now
	return &cp
}

// Today is the current date as YYYY-MM-DD.
func (f *Flows) Today() string { return f.now().Format(dateLayout) }

func (f *Flows) complete(ctx context.Context, p Prompt) (string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	start := time.Now()
	out, err := f.llm.Complete(ctx, p)
	if err != nil {
		f.log.Error("AI call failed", zap.String("flow", p.Flow), zap.Error(err))
		return "", fmt.Errorf("%s: %w", p.Flow, err)
	}
	f.log.Debug("AI call", zap.String("flow", p.Flow), zap.Duration("took", time.Since(start)), zap.Int("chars", len(out)))
	return out, nil
}

func (f *Flows) completeJSON(ctx context.Context, p Prompt, v any) error {
	p.JSON = true
	out, err := f.complete(ctx, p)
	if err != nil {
		return err
	}
	if err := decodeJSON(out, v); err != nil {
		f.log.Warn("unusable AI reply", zap.String("flow", p.Flow), zap.Error(err))
		return fmt.Errorf("%s: %w", p.Flow, err)
	}
	return nil
}

func (f *Flows) PlantingAdvice(ctx context.Context, in AdviceInput) (*PlantingAdvice, error) {
	if strings.TrimSpace(in.Crop) == "" || strings.TrimSpace(in.Country) == "" {
		return nil, fmt.Errorf("%w: country and crop are required", ErrInvalidInput)
	}
	if in.CurrentDate == "" {
		in.CurrentDate = f.Today()
	}
	var raw struct {
		Introduction          *string  `json:"introduction"`
		SoilPreparation       []string `json:"soilPreparation"`
		PlantingProcess       []string `json:"plantingProcess"`
		WaterManagement       *string  `json:"waterManagement"`
		WeedingSchedule       *string  `json:"weedingSchedule"`
		PestAndDiseaseControl []string `json:"pestAndDiseaseControl"`
		Fertilization         *string  `json:"fertilization"`
		HarvestingTips        []string `json:"harvestingTips"`
		PostHarvestHandling   []string `json:"postHarvestHandling"`
		SpecialConsiderations *string  `json:"specialConsiderations"`
	}
	system, user := renderAdvicePrompt(in)
	if err := f.completeJSON(ctx, Prompt{Flow: FlowAdvice, System: system, User: user}, &raw); err != nil {
		return nil, err
	}
	section := func(name string, s *string) string {
		if s == nil {
			f.log.Warn("AI output missing key", zap.String("flow", FlowAdvice), zap.String("key", name))
			return missingSection
		}
		return *s
	}
	return &PlantingAdvice{
		Introduction:          section("introduction", raw.Introduction),
		SoilPreparation:       orEmpty(raw.SoilPreparation),
		PlantingProcess:       orEmpty(raw.PlantingProcess),
		WaterManagement:       section("waterManagement", raw.WaterManagement),
		WeedingSchedule:       section("weedingSchedule", raw.WeedingSchedule),
		PestAndDiseaseControl: orEmpty(raw.PestAndDiseaseControl),
		Fertilization:         section("fertilization", raw.Fertilization),
		HarvestingTips:        orEmpty(raw.HarvestingTips),
		PostHarvestHandling:   orEmpty(raw.PostHarvestHandling),
		SpecialConsiderations: section("specialConsiderations", raw.SpecialConsiderations),
	}, nil
}

func (f *Flows) AutofillCrop(ctx context.Context, in AutofillInput) (*CropAutofill, error) {
	if utf8.RuneCountInString(strings.TrimSpace(in.CropName)) < 2 {
		return nil, fmt.Errorf("%w: crop name must be at least 2 characters", ErrInvalidInput)
	}
	if !in.CurrentMonth.Valid() {
		return nil, fmt.Errorf("%w: current month is not a calendar month", ErrInvalidInput)
	}
	var out CropAutofill
	system, user := renderAutofillPrompt(in)
	if err := f.completeJSON(ctx, Prompt{Flow: FlowAutofill, System: system, User: user}, &out); err != nil {
		return nil, err
	}
	out.WeedingInfo = orDefault(out.WeedingInfo, "General weeding as needed.")
	out.Notes = orDefault(out.Notes, "No specific notes provided by AI.")
	out.IconHint = orDefault(out.IconHint, "plant")
	if out.CropType != "Traditional" && out.CropType != "Modern" {
		out.CropType = "Traditional"
	}
	return &out, nil
}

// DaysBetween is whole days from planted to current, never negative.
func DaysBetween(planted, current string) (int, error) {
	p, err := time.Parse(dateLayout, planted)
	if err != nil {
		return 0, fmt.Errorf("%w: plantingDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	c, err := time.Parse(dateLayout, current)
	if err != nil {
		return 0, fmt.Errorf("%w: currentDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	days := int(c.Sub(p).Hours() / 24)
	if days < 0 {
		return 0, nil
	}
	return days, nil
}

func (f *Flows) DiagnosePlantHealth(ctx context.Context, in DiagnoseInput) (*Diagnosis, error) {
	if strings.TrimSpace(in.CropName) == "" {
		return nil, fmt.Errorf("%w: cropName is required", ErrInvalidInput)
	}
	if in.CurrentDate == "" {
		in.CurrentDate = f.Today()
	}
	days, err := DaysBetween(in.PlantingDate, in.CurrentDate)
	if err != nil {
		return nil, err
	}
	img, err := ParseDataURI(in.PhotoDataURI)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Identification   *Identification `json:"identification"`
		HealthAssessment *struct {
			OverallHealth       string             `json:"overallHealth"`
			LeafAnalysis        *LeafAnalysis      `json:"leafAnalysis"`
			PestIndicators      *PestIndicators    `json:"pestIndicators"`
			DiseaseIndicators   *DiseaseIndicators `json:"diseaseIndicators"`
			FruitFlowerAnalysis string             `json:"fruitFlowerAnalysis"`
			OverallStatusNotes  string             `json:"overallStatusNotes"`
		} `json:"healthAssessment"`
		GrowthStageAdvice *GrowthStageAdvice `json:"growthStageAdvice"`
		Recommendations   *Recommendations   `json:"recommendations"`
		AdditionalNotes   string             `json:"additionalNotes"`
	}
	system, user := renderDiagnosePrompt(in, days)
	if err := f.completeJSON(ctx, Prompt{Flow: FlowDiagnose, System: system, User: user, Image: img}, &raw); err != nil {
		return nil, err
	}

	out := &Diagnosis{
		HealthAssessment:  HealthAssessment{OverallHealth: "Assessment not provided by AI."},
		GrowthStageAdvice: GrowthStageAdvice{ExpectedStage: "N/A"},
		AdditionalNotes:   raw.AdditionalNotes,
	}
	if raw.Identification != nil {
		out.Identification = *raw.Identification
	}
	if ha := raw.HealthAssessment; ha != nil {
		out.HealthAssessment = HealthAssessment{
			OverallHealth:       ha.OverallHealth,
			FruitFlowerAnalysis: ha.FruitFlowerAnalysis,
			OverallStatusNotes:  ha.OverallStatusNotes,
		}
		if ha.LeafAnalysis != nil {
			out.HealthAssessment.LeafAnalysis = *ha.LeafAnalysis
		}
		if ha.PestIndicators != nil {
			out.HealthAssessment.PestIndicators = *ha.PestIndicators
		}
		if ha.DiseaseIndicators != nil {
			out.HealthAssessment.DiseaseIndicators = *ha.DiseaseIndicators
		}
	}
	if raw.GrowthStageAdvice != nil {
		out.GrowthStageAdvice = *raw.GrowthStageAdvice
	}
	out.GrowthStageAdvice.DaysSincePlanting = days
	out.GrowthStageAdvice.StageSpecificCareTips = orEmpty(out.GrowthStageAdvice.StageSpecificCareTips)
	if raw.Recommendations != nil {
		out.Recommendations = *raw.Recommendations
	}
	out.Recommendations.SuggestedActions = orEmpty(out.Recommendations.SuggestedActions)
	return out, nil
}

// chatHistory prepends the advisor primer unless the history already opens
// with it.
func chatHistory(h []Message) []Message {
	primed := len(h) >= 2 &&
		h[0].Role == RoleUser && h[0].Text == ChatSystemInstruction &&
		h[1].Role == RoleModel
	if primed {
		return append([]Message(nil), h...)
	}
	out := make([]Message, 0, len(h)+2)
	out = append(out,
		Message{Role: RoleUser, Text: ChatSystemInstruction},
		Message{Role: RoleModel, Text: ChatAcknowledgement},
	)
	return append(out, h...)
}

func (f *Flows) Chat(ctx context.Context, in ChatInput) (*ChatReply, error) {
	if strings.TrimSpace(in.UserQuery) == "" {
		return nil, fmt.Errorf("%w: userQuery is required", ErrInvalidInput)
	}
	for _, m := range in.ChatHistory {
		if m.Role != RoleUser && m.Role != RoleModel {
			return nil, fmt.Errorf("%w: history role must be user or model", ErrInvalidInput)
		}
	}
	out, err := f.complete(ctx, Prompt{Flow: FlowChat, User: in.UserQuery, History: chatHistory(in.ChatHistory)})
	if err != nil {
		return nil, err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, fmt.Errorf("%s: %w", FlowChat, ErrEmptyOutput)
	}
	return &ChatReply{AIResponse: out}, nil
}

func (f *Flows) GenerateArticle(ctx context.Context, in ArticleInput) (*ArticleDraft, error) {
	if strings.TrimSpace(in.Country) == "" {
		return nil, fmt.Errorf("%w: country is required", ErrInvalidInput)
	}
	today := f.Today()
	var out ArticleDraft
	system, user := renderArticlePrompt(in, today)
	if err := f.completeJSON(ctx, Prompt{Flow: FlowArticle, System: system, User: user}, &out); err != nil {
		return nil, err
	}
	out.Date = today
	if out.Title == "" || out.Introduction == "" || out.FullArticleText == "" || out.Conclusion == "" {
		f.log.Warn("AI article missing core text, defaulting", zap.String("flow", FlowArticle))
		title := "Farming Insights"
		if in.Topic != "" {
			title = "Article on " + in.Topic
		}
		out.Title = orDefault(out.Title, title)
		out.Introduction = orDefault(out.Introduction, "Introduction not generated.")
		out.FullArticleText = orDefault(out.FullArticleText, "Main article content not generated.")
		out.Conclusion = orDefault(out.Conclusion, "Conclusion not generated.")
	}
	out.BodySectionHints = orEmpty(out.BodySectionHints)
	out.Source = orDefault(out.Source, "AgriAdvisor AI Digest")
	out.ImageHint = orDefault(out.ImageHint, "farming article")
	out.ImagePromptSuggestion = orDefault(out.ImagePromptSuggestion, `An illustration for an article titled "`+out.Title+`"`)
	return &out, nil
}

func (f *Flows) FarmingNews(ctx context.Context, in NewsInput) (*NewsSnippet, error) {
	if strings.TrimSpace(in.Country) == "" {
		return nil, fmt.Errorf("%w: country is required", ErrInvalidInput)
	}
	today := f.Today()
	var out NewsSnippet
	system, user := renderNewsPrompt(in, today)
	if err := f.completeJSON(ctx, Prompt{Flow: FlowNews, System: system, User: user}, &out); err != nil {
		return nil, err
	}
	if out.Title == "" && out.Summary == "" {
		return nil, fmt.Errorf("%s: %w", FlowNews, ErrEmptyOutput)
	}
	out.Date = today
	out.Source = orDefault(out.Source, "AgriTech AI Digest")
	return &out, nil
}
