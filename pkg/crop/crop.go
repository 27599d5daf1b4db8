// Package crop holds the rules shared by the crop repository and its HTTP
// surface: validation and id construction.
package crop

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"agniro/entities"
	"agniro/pkg/months"
)

var ErrInvalidCrop = errors.New("invalid crop")

const DateLayout = "2006-01-02"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and collapses every run of non-alphanumerics to "-".
func Slug(s string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// NewID builds "<region>-<name>-<unix millis>".
func NewID(region entities.RegionName, name string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", Slug(string(region)), Slug(name), now.UnixMilli())
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Validate applies the form rules for a crop about to be stored.
func Validate(c entities.Crop) error {
	if utf8.RuneCountInString(strings.TrimSpace(c.Name)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", ErrInvalidCrop)
	}
	if !c.Region.Valid() {
		return fmt.Errorf("%w: unknown region %q", ErrInvalidCrop, c.Region)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: type must be Traditional or Modern", ErrInvalidCrop)
	}
	for _, m := range append(append([]months.Month{}, c.PlantingMonths...), c.HarvestMonths...) {
		if !m.Valid() {
			return fmt.Errorf("%w: bad month %d", ErrInvalidCrop, int(m))
		}
	}
	if c.DatePlanted != "" && !ValidDate(c.DatePlanted) {
		return fmt.Errorf("%w: datePlanted must be YYYY-MM-DD", ErrInvalidCrop)
	}
	return nil
}

// Clone returns c with its month slices copied.
func Clone(c entities.Crop) entities.Crop {
	c.PlantingMonths = append([]months.Month{}, c.PlantingMonths...)
	c.HarvestMonths = append([]months.Month{}, c.HarvestMonths...)
	return c
}
