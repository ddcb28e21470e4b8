package resolve

import (
	"math"

	"roguedex/pkg/models"
)

// ComputeStats aggregates villain counts. Ties for most frequent resolve
// to the villain encountered first.
func ComputeStats(villains []models.Villain) models.Stats {
	stats := models.Stats{TotalVillains: len(villains)}
	if len(villains) == 0 {
		return stats
	}

	sum := 0
	for _, v := range villains {
		sum += v.Frequency
		if v.Frequency > stats.MostFrequentCount {
			stats.MostFrequent = v.Name
			stats.MostFrequentCount = v.Frequency
		}
	}
	stats.AverageFrequency = round2(float64(sum) / float64(len(villains)))
	return stats
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
