package pipeline

import (
	"log"
	"sort"
)

// ReportWriter renders the tabular summary for the ranked cities.
// Implemented by the xlsx writer; stubbed in tests.
type ReportWriter interface {
	Write(cities []*CityAggregate, labels map[string]string) error
}

// Analyzer ranks the aggregated cities and selects the winner set.
type Analyzer struct {
	report ReportWriter
	labels map[string]string
}

func NewAnalyzer(report ReportWriter, labels map[string]string) *Analyzer {
	return &Analyzer{report: report, labels: labels}
}

// rankingEntry is the transient record the sort runs over.
type rankingEntry struct {
	cityName  string
	tempAvg   float64
	condHours float64
}

// Analyze filters out failed cities, ranks the rest by descending
// (temperature, condition-hours) and returns the best city or cities.
// The winner set extends past rank 1 only while the ranking tuple is
// exactly equal to the best one. The report is a side effect; a report
// failure never affects the returned winners.
func (a *Analyzer) Analyze(aggregated map[string]*CityAggregate) []string {
	log.Printf("analyze: started for %d cities", len(aggregated))

	entries := make([]rankingEntry, 0, len(aggregated))
	for city, agg := range aggregated {
		if agg == nil || agg.Status != StatusOK {
			log.Printf("analyze: skipped %s, no usable data", city)
			continue
		}

		// Zero-hour days were already excluded from the averages;
		// dropping them here only tidies the report.
		kept := agg.Days[:0]
		for _, day := range agg.Days {
			if day.HoursCount > 0 {
				kept = append(kept, day)
			}
		}
		agg.Days = kept

		entries = append(entries, rankingEntry{
			cityName:  city,
			tempAvg:   agg.AggTempAvg,
			condHours: agg.AggRelevantCondHours,
		})
	}

	if len(entries) == 0 {
		log.Printf("analyze: no rankable cities")
		return []string{}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].tempAvg != entries[j].tempAvg {
			return entries[i].tempAvg > entries[j].tempAvg
		}
		return entries[i].condHours > entries[j].condHours
	})

	ranked := make([]*CityAggregate, len(entries))
	for i, e := range entries {
		agg := aggregated[e.cityName]
		agg.Rank = i + 1
		ranked[i] = agg
	}

	best := entries[0]
	winners := []string{best.cityName}
	for _, e := range entries[1:] {
		if e.tempAvg != best.tempAvg || e.condHours != best.condHours {
			break
		}
		winners = append(winners, e.cityName)
	}

	log.Printf("analyze: the best city to live in is %s", a.label(winners[0]))
	for _, city := range winners[1:] {
		log.Printf("analyze: tied with %s", a.label(city))
	}
	log.Printf("analyze: average temperature: %.1f", best.tempAvg)
	log.Printf("analyze: average condition hours: %.1f", best.condHours)

	if a.report != nil {
		if err := a.report.Write(ranked, a.labels); err != nil {
			log.Printf("analyze: cant generate output report: %v", err)
		}
	}

	log.Printf("analyze: complete")
	return winners
}

func (a *Analyzer) label(city string) string {
	if label, ok := a.labels[city]; ok {
		return label
	}
	return city
}
