// Package story implements the bedtime story pipeline: a classifier
// routes the request, a storyteller drafts, a judge reviews, and a
// reviser applies feedback until the draft is accepted or the revision
// budget runs out.
package story

import "strings"

// Category labels a story request so generation can be tailored to it.
type Category string

const (
	CategoryAnimals    Category = "animals"
	CategoryAdventure  Category = "adventure"
	CategoryFriendship Category = "friendship"
	CategoryCalming    Category = "bedtime-calming"
	CategoryFantasy    Category = "fantasy"
	CategoryOther      Category = "other"
)

// Categories returns the known labels in presentation order.
func Categories() []Category {
	return []Category{
		CategoryAnimals,
		CategoryAdventure,
		CategoryFriendship,
		CategoryCalming,
		CategoryFantasy,
		CategoryOther,
	}
}

// ParseCategory normalizes a raw classifier reply into a Category.
// Unknown labels are passed through unchanged with known=false so the
// caller can log them without rejecting the run.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	return c, c.Known()
}

// Known reports whether the category is one of the predefined labels.
func (c Category) Known() bool {
	switch c {
	case CategoryAnimals, CategoryAdventure, CategoryFriendship,
		CategoryCalming, CategoryFantasy, CategoryOther:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }
