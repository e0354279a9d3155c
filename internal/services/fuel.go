package services

import "math"

// EstimateFuelCost converts a distance into money:
// (distanceKm / 100) * consumptionPer100Km * pricePerUnit.
// A NaN, infinite or negative distance costs 0.
func EstimateFuelCost(distanceKm, consumptionPer100Km, pricePerUnit float64) float64 {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return 0
	}
	return distanceKm / 100 * consumptionPer100Km * pricePerUnit
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
