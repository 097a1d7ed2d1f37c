package enums

import "fmt"

// Occasion categorizes what a wishlist is being assembled for.
type Occasion string

const (
	OccasionChristmas     Occasion = "Christmas"
	OccasionBirthday      Occasion = "Birthday"
	OccasionFathersDay    Occasion = "Father's Day"
	OccasionMothersDay    Occasion = "Mother's Day"
	OccasionValentinesDay Occasion = "Valentine's Day"
	OccasionOther         Occasion = "Other"
)

var validOccasions = []Occasion{
	OccasionChristmas,
	OccasionBirthday,
	OccasionFathersDay,
	OccasionMothersDay,
	OccasionValentinesDay,
	OccasionOther,
}

// String implements fmt.Stringer.
func (o Occasion) String() string {
	return string(o)
}

// IsValid reports whether the occasion is recognized.
func (o Occasion) IsValid() bool {
	for _, candidate := range validOccasions {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOccasion converts a raw string into an Occasion.
func ParseOccasion(value string) (Occasion, error) {
	for _, candidate := range validOccasions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid occasion %q", value)
}

// Occasions lists every recognized occasion in display order.
func Occasions() []Occasion {
	out := make([]Occasion, len(validOccasions))
	copy(out, validOccasions)
	return out
}
