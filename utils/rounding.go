package utils

import "math"

// RoundHalfUp rounds to the nearest integer with ties going up (-2.5 -> -2).
func RoundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }

// Round1 rounds to one decimal place, ties up.
func Round1(v float64) float64 { return math.Floor(v*10+0.5) / 10 }

func Round2(v float64) float64 { return math.Round(v*100) / 100 }
