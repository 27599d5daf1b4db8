// Package article holds the fixed archive entries and the id and date
// rules shared by the article repository and generation service.
package article

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"agniro/entities"
)

const (
	PlaceholderImageURL = "https://placehold.co/600x400.png"
	DateLayout          = "2006-01-02"
	LatestLimit         = 3

	generatedPrefix = "ai-gen-"
)

var ErrNotArchivable = errors.New("only AI-generated articles can be saved to the archive")

var static = []entities.Article{
	{
		ID:               "static-article-1",
		Title:            "Archived: Revolutionizing Maize Farming with Precision Agriculture",
		Source:           "AgriTech Today (Archive)",
		Date:             "2024-05-10",
		Introduction:     "This is an archived article placeholder. Drone technology and advanced soil sensors were instrumental in transforming maize farming practices across several districts in Uganda. Early adopters reported significant yield increases, often up to 30%, coupled with a reduction in input costs like fertilizers and pesticides.",
		FullArticleText:  "The primary challenge was the initial investment and the need for specialized training, but cooperative models helped many smallholders access these technologies. The long-term impact included better land management and more resilient farming systems against climate variability. Further research showed that integrating weather data with sensor readings could optimize irrigation schedules, saving water while maximizing growth. Many young farmers were particularly keen to adopt these methods, seeing them as a pathway to more profitable and sustainable agriculture.",
		Conclusion:       "Ultimately, precision agriculture, exemplified by these early maize farming projects, set a new benchmark for efficiency and productivity in the region, paving the way for broader technological adoption.",
		BodySectionHints: []string{},
		ImageURL:         PlaceholderImageURL,
		ImageHint:        "drone farm",
		Type:             entities.ArticleStaticArchived,
	},
	{
		ID:               "static-news-1",
		Title:            "Archived: New Drought-Resistant Cassava Variety Released",
		Source:           "NARO Archives",
		Date:             "2024-05-15",
		Introduction:     "The release of the NAROCASS 1 variety by the National Agricultural Research Organisation marked a turning point for cassava farmers, especially in drought-prone areas. This variety not only offered better yield potential but also showed increased resistance to common diseases like Cassava Mosaic Disease.",
		FullArticleText:  "Adoption rates were high, supported by government extension services and farmer field schools that demonstrated the benefits and proper agronomic practices for NAROCASS 1. Post-harvest handling improvements were also introduced alongside the new variety to ensure that the increased yields translated into better food security and market opportunities. The success of NAROCASS 1 spurred further research into other climate-resilient crop varieties.",
		Conclusion:       "This initiative significantly contributed to food security and showcased the power of agricultural research in addressing local challenges.",
		BodySectionHints: []string{},
		ImageURL:         PlaceholderImageURL,
		ImageHint:        "cassava plant",
		Type:             entities.ArticleStaticArchived,
	},
}

// Static returns a fresh copy of the built-in archive.
func Static() []entities.Article {
	out := make([]entities.Article, len(static))
	for i, a := range static {
		out[i] = Clone(a)
	}
	return out
}

// IsStatic reports whether id names a built-in archive entry.
func IsStatic(id string) bool {
	for _, a := range static {
		if a.ID == id {
			return true
		}
	}
	return false
}

func Clone(a entities.Article) entities.Article {
	a.BodySectionHints = append([]string{}, a.BodySectionHints...)
	return a
}

func GeneratedID(now time.Time) string {
	return fmt.Sprintf("%s%d", generatedPrefix, now.UnixMilli())
}

// ArchivedID derives the id of an archived copy from the generated id.
func ArchivedID(generatedID string, now time.Time) string {
	return fmt.Sprintf("ai-archived-%s-%d", strings.TrimPrefix(generatedID, generatedPrefix), now.UnixMilli())
}

var dateLayouts = []string{DateLayout, time.RFC3339, "January 2, 2006", "Jan 2, 2006", "2 January 2006"}

// ParseDate reads the stored form and the older display forms.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate rewrites any recognised date as YYYY-MM-DD and leaves
// anything else untouched.
func NormalizeDate(s string) string {
	if t, ok := ParseDate(s); ok {
		return t.Format(DateLayout)
	}
	return s
}

// SortByDate orders newest first. Undated entries go last, keeping their
// relative order.
func SortByDate(as []entities.Article) {
	sort.SliceStable(as, func(i, j int) bool {
		ti, okI := ParseDate(as[i].Date)
		tj, okJ := ParseDate(as[j].Date)
		if okI != okJ {
			return okI
		}
		return ti.After(tj)
	})
}
