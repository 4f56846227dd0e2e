package intel

import (
	"math/rand"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/model"
)

// ApplyCounterIntelligence runs the CIC check spec.md §4.8 describes:
// "Each gathered report passes a CIC check against the viewing house's
// CIC level; failure results in suppressed or corrupted data per
// configured variance." A failed check degrades the report's quality
// one step rather than discarding it outright, except at the bottom of
// the scale where it is suppressed (stripped of its payload).
func ApplyCounterIntelligence(reg *config.Registry, r *rand.Rand, defenderCIC int, report *model.IntelReport) {
	roll := r.Intn(20) + 1
	if roll > defenderCIC {
		return // check passed, report stands at its gathered quality.
	}

	switch report.Quality {
	case model.QualityPerfect:
		report.Quality = model.QualityPartial
	case model.QualityPartial:
		report.Quality = model.QualityStale
	default:
		report.Quality = model.QualityCorrupted
		report.Payload = nil
	}
}

// ReportKindName maps a ScoutMissionKind to the ReportKind it produces
// on a successful gather (spec.md §4.8 report-kind list).
func ReportKindName(kind model.ScoutMissionKind) model.ReportKind {
	switch kind {
	case model.ScoutOnColony:
		return model.ReportColony
	case model.ScoutOnStarbase:
		return model.ReportStarbase
	default:
		return model.ReportSystem
	}
}
