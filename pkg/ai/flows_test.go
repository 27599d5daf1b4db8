package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"agniro/pkg/months"
)

type scripted struct {
	reply string
	err   error
	got   []Prompt
}

func (s *scripted) Complete(_ context.Context, p Prompt) (string, error) {
	s.got = append(s.got, p)
	return s.reply, s.err
}

var today = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newFlows(reply string) (*Flows, *scripted) {
	s := &scripted{reply: reply}
	return NewFlows(s, zap.NewNop(), time.Second).WithClock(func() time.Time { return today }), s
}

const pixel = "data:image/png;base64,iVBORw0KGgo="

func TestPlantingAdviceDefaultsMissingKeys(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := &scripted{reply: "```json\n{\"introduction\":\"Hi\",\"soilPreparation\":[\"dig\"],\"fertilization\":\"\"}\n```"}
	f := NewFlows(s, zap.New(core), 0)

	out, err := f.PlantingAdvice(context.Background(), AdviceInput{Country: "Uganda", Region: "Northern", Crop: "Maize"})
	require.NoError(t, err)
	assert.Equal(t, "Hi", out.Introduction)
	assert.Equal(t, []string{"dig"}, out.SoilPreparation)
	assert.Equal(t, "", out.Fertilization)
	assert.Equal(t, missingSection, out.WaterManagement)
	assert.Equal(t, missingSection, out.SpecialConsiderations)
	assert.Equal(t, []string{}, out.HarvestingTips)
	assert.Equal(t, 3, logs.FilterMessage("AI output missing key").Len())

	require.Len(t, s.got, 1)
	assert.True(t, s.got[0].JSON)
	assert.Equal(t, FlowAdvice, s.got[0].Flow)
	assert.Contains(t, s.got[0].User, "Northern")
}

func TestFlowsSurfaceCollaboratorFailure(t *testing.T) {
	f, s := newFlows("")
	_, err := f.PlantingAdvice(context.Background(), AdviceInput{Country: "Uganda", Crop: "Maize"})
	assert.True(t, errors.Is(err, ErrEmptyOutput))

	s.reply = "null"
	_, err = f.GenerateArticle(context.Background(), ArticleInput{Country: "Uganda"})
	assert.True(t, errors.Is(err, ErrEmptyOutput))

	s.reply = "Sorry, I cannot help."
	_, err = f.FarmingNews(context.Background(), NewsInput{Country: "Uganda"})
	assert.True(t, errors.Is(err, ErrEmptyOutput))

	boom := errors.New("quota exceeded")
	s.err = boom
	_, err = f.Chat(context.Background(), ChatInput{UserQuery: "hi"})
	assert.True(t, errors.Is(err, boom))
}

func TestAutofill(t *testing.T) {
	f, _ := newFlows(`{"plantingMonthsStr":"Mar-Apr","cropType":"Hybrid"}`)
	out, err := f.AutofillCrop(context.Background(), AutofillInput{Country: "Uganda", CropName: "Maize", CurrentMonth: months.Mar})
	require.NoError(t, err)
	assert.Equal(t, &CropAutofill{
		PlantingMonthsStr: "Mar-Apr",
		HarvestMonthsStr:  "",
		WeedingInfo:       "General weeding as needed.",
		Notes:             "No specific notes provided by AI.",
		IconHint:          "plant",
		CropType:          "Traditional",
	}, out)

	_, err = f.AutofillCrop(context.Background(), AutofillInput{Country: "Uganda", CropName: "M", CurrentMonth: months.Mar})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = f.AutofillCrop(context.Background(), AutofillInput{Country: "Uganda", CropName: "Maize", CurrentMonth: 13})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestDiagnoseInjectsDaysAndDefaults(t *testing.T) {
	f, s := newFlows(`{"identification":{"isExpectedPlant":true},"growthStageAdvice":{"daysSincePlanting":999,"expectedStage":"Tasseling"}}`)
	out, err := f.DiagnosePlantHealth(context.Background(), DiagnoseInput{
		CropName: "Maize", PlantingDate: "2025-01-01", CurrentDate: "2025-03-14", PhotoDataURI: pixel, Region: "Central",
	})
	require.NoError(t, err)
	assert.Equal(t, 72, out.GrowthStageAdvice.DaysSincePlanting)
	assert.Equal(t, "Tasseling", out.GrowthStageAdvice.ExpectedStage)
	assert.Equal(t, []string{}, out.GrowthStageAdvice.StageSpecificCareTips)
	assert.True(t, out.Identification.IsExpectedPlant)
	assert.Equal(t, "Assessment not provided by AI.", out.HealthAssessment.OverallHealth)
	assert.Equal(t, []string{}, out.Recommendations.SuggestedActions)

	require.NotNil(t, s.got[0].Image)
	assert.Equal(t, "image/png", s.got[0].Image.MIMEType)
}

func TestDiagnoseMissingObjects(t *testing.T) {
	f, _ := newFlows(`{}`)
	out, err := f.DiagnosePlantHealth(context.Background(), DiagnoseInput{
		CropName: "Beans", PlantingDate: "2025-04-01", CurrentDate: "2025-03-14", PhotoDataURI: pixel,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.GrowthStageAdvice.DaysSincePlanting)
	assert.Equal(t, "N/A", out.GrowthStageAdvice.ExpectedStage)
	assert.False(t, out.Identification.IsExpectedPlant)
}

func TestDiagnoseRejectsBadInput(t *testing.T) {
	f, s := newFlows(`{}`)
	for name, in := range map[string]DiagnoseInput{
		"date":  {CropName: "Beans", PlantingDate: "March 1", PhotoDataURI: pixel},
		"photo": {CropName: "Beans", PlantingDate: "2025-03-01", PhotoDataURI: "http://example.com/a.png"},
		"crop":  {PlantingDate: "2025-03-01", PhotoDataURI: pixel},
	} {
		_, err := f.DiagnosePlantHealth(context.Background(), in)
		assert.True(t, errors.Is(err, ErrInvalidInput), name)
	}
	assert.Empty(t, s.got)
}

func TestDaysBetween(t *testing.T) {
	d, err := DaysBetween("2024-02-28", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2, d)
	d, err = DaysBetween("2024-03-02", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 0, d)
}

func TestChatPrimer(t *testing.T) {
	f, s := newFlows("  Plant after the first rains.  ")
	out, err := f.Chat(context.Background(), ChatInput{UserQuery: "When do I plant maize?"})
	require.NoError(t, err)
	assert.Equal(t, "Plant after the first rains.", out.AIResponse)

	h := s.got[0].History
	require.Len(t, h, 2)
	assert.Equal(t, ChatSystemInstruction, h[0].Text)
	assert.Equal(t, RoleModel, h[1].Role)

	primed := append(h, Message{Role: RoleUser, Text: "hello"}, Message{Role: RoleModel, Text: "hi"})
	_, err = f.Chat(context.Background(), ChatInput{UserQuery: "again", ChatHistory: primed})
	require.NoError(t, err)
	assert.Len(t, s.got[1].History, 4)

	_, err = f.Chat(context.Background(), ChatInput{UserQuery: "x", ChatHistory: []Message{{Role: "system", Text: "y"}}})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestGenerateArticleForcesDateAndDefaults(t *testing.T) {
	f, _ := newFlows(`{"title":"","introduction":"Intro","date":"May 23, 2024"}`)
	out, err := f.GenerateArticle(context.Background(), ArticleInput{Country: "Uganda", Topic: "soil health"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", out.Date)
	assert.Equal(t, "Article on soil health", out.Title)
	assert.Equal(t, "Intro", out.Introduction)
	assert.Equal(t, "Main article content not generated.", out.FullArticleText)
	assert.Equal(t, "Conclusion not generated.", out.Conclusion)
	assert.Equal(t, "AgriAdvisor AI Digest", out.Source)
	assert.Equal(t, "farming article", out.ImageHint)
	assert.Equal(t, `An illustration for an article titled "Article on soil health"`, out.ImagePromptSuggestion)
	assert.Equal(t, []string{}, out.BodySectionHints)
}

func TestFarmingNews(t *testing.T) {
	f, _ := newFlows(`{"title":"Seed banks grow","summary":"s","date":"yesterday"}`)
	out, err := f.FarmingNews(context.Background(), NewsInput{Country: "Uganda", Region: "Eastern"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", out.Date)
	assert.Equal(t, "AgriTech AI Digest", out.Source)
}

func TestMockAnswersEveryFlow(t *testing.T) {
	f := NewFlows(NewMock(), zap.NewNop(), 0)
	ctx := context.Background()

	_, err := f.PlantingAdvice(ctx, AdviceInput{Country: "Uganda", Crop: "Maize"})
	require.NoError(t, err)
	_, err = f.AutofillCrop(ctx, AutofillInput{Country: "Uganda", CropName: "Maize"})
	require.NoError(t, err)
	_, err = f.DiagnosePlantHealth(ctx, DiagnoseInput{CropName: "Maize", PlantingDate: "2024-01-01", PhotoDataURI: pixel})
	require.NoError(t, err)
	_, err = f.Chat(ctx, ChatInput{UserQuery: "hi"})
	require.NoError(t, err)
	a, err := f.GenerateArticle(ctx, ArticleInput{Country: "Uganda"})
	require.NoError(t, err)
	assert.Len(t, a.BodySectionHints, 2)
	_, err = f.FarmingNews(ctx, NewsInput{Country: "Uganda"})
	require.NoError(t, err)
}
