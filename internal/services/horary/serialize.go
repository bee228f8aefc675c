package horary

import (
	"fmt"
	"time"

	"Horary/internal/domain/models"
	"Horary/pkg/astro"
)

// SerializeChart flattens a chart into its wire representation.
func SerializeChart(chart *models.Chart) *models.SerializedChart {
	bodies := make(map[string]models.SerializedBody, len(chart.Bodies))
	for body, pos := range chart.Bodies {
		sb := models.SerializedBody{
			Longitude:    pos.Longitude,
			Latitude:     pos.Latitude,
			House:        pos.House,
			Sign:         pos.Sign,
			DignityScore: pos.DignityScore,
			Retrograde:   pos.Retrograde,
			Speed:        pos.Speed,
			DegreeInSign: astro.DegreeInSign(pos.Longitude),
		}
		if analysis, ok := chart.SolarAnalyses[body]; ok {
			a := analysis
			sb.Solar = &a
		}
		bodies[string(body)] = sb
	}

	rulers := make(map[string]models.CelestialBody, len(chart.HouseRulers))
	for house, ruler := range chart.HouseRulers {
		rulers[fmt.Sprintf("%d", house)] = ruler
	}

	return &models.SerializedChart{
		Bodies:         bodies,
		Aspects:        chart.Aspects,
		Cusps:          chart.Cusps[:],
		HouseRulers:    rulers,
		Ascendant:      chart.Ascendant,
		Midheaven:      chart.Midheaven,
		MoonLastAspect: chart.MoonLastAspect,
		MoonNextAspect: chart.MoonNextAspect,
		Timezone: models.TimezoneInfo{
			LocalTime:    chart.LocalTime.Format(time.RFC3339),
			UTCTime:      chart.UTCTime.Format(time.RFC3339),
			Timezone:     chart.Timezone,
			LocationName: chart.LocationName,
			Latitude:     chart.Latitude,
			Longitude:    chart.Longitude,
		},
	}
}
