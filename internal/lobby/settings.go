package lobby

import "unicode/utf8"

// Limits bound what an owner may set through UpdateSettings.
type Limits struct {
	MaxRounds      int
	MinDrawingTime int
	MaxDrawingTime int
	MaxCustomWords int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxRounds:      10,
		MinDrawingTime: 15,
		MaxDrawingTime: 240,
		MaxCustomWords: 2000,
	}
}

// Validate checks settings against the limits.
func (l Limits) Validate(s Settings) error {
	if s.Rounds < 1 || s.Rounds > l.MaxRounds {
		return ErrInvalidSettings
	}
	if s.DrawingTime < l.MinDrawingTime || s.DrawingTime > l.MaxDrawingTime {
		return ErrInvalidSettings
	}
	if utf8.RuneCountInString(s.CustomWords) > l.MaxCustomWords {
		return ErrInvalidSettings
	}
	return nil
}
