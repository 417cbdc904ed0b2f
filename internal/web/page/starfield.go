package page

import (
	"math/rand"
	"time"
)

// StarSize is the CSS size class of a star.
type StarSize string

const (
	StarSmall  StarSize = "small"
	StarMedium StarSize = "medium"
	StarLarge  StarSize = "large"
)

var starSizes = []StarSize{StarSmall, StarMedium, StarLarge}

// Star is one twinkling dot of the hero background.
type Star struct {
	Size StarSize
	// Top and Left are percentages of the starfield box.
	Top      float64
	Left     float64
	Duration time.Duration
	Delay    time.Duration
}

// GenerateStars places n stars at random. Durations fall in [2s, 5s) and
// delays in [0s, 5s).
func GenerateStars(n int, rng *rand.Rand) []Star {
	if n <= 0 {
		return nil
	}
	stars := make([]Star, 0, n)
	for i := 0; i < n; i++ {
		stars = append(stars, Star{
			Size:     starSizes[rng.Intn(len(starSizes))],
			Top:      rng.Float64() * 100,
			Left:     rng.Float64() * 100,
			Duration: 2*time.Second + time.Duration(rng.Float64()*float64(3*time.Second)),
			Delay:    time.Duration(rng.Float64() * float64(5*time.Second)),
		})
	}
	return stars
}
