package orchestrator

import "codeberg.org/wayfare/server/internal/providers"

// per-issue penalties when a provider reports issues without a score
const (
	errorPenalty   = 25
	warningPenalty = 10
	infoPenalty    = 2
)

// scoreFromReport derives the 0-100 quality score from a validation
// report. A nil report means no validation signal existed, and the score
// is omitted rather than defaulted to a misleading value.
func scoreFromReport(report *providers.ValidationReport) *int {
	if report == nil {
		return nil
	}

	score := report.QualityScore

	// some providers flag issues without scoring; derive a score from
	// issue severity so callers always get one alongside a report
	if score == 0 && len(report.Issues) > 0 {
		score = 100

		for _, issue := range report.Issues {
			switch issue.Severity {
			case providers.SeverityError:
				score -= errorPenalty
			case providers.SeverityWarning:
				score -= warningPenalty
			default:
				score -= infoPenalty
			}
		}
	}

	if score < 0 {
		score = 0
	}

	if score > 100 {
		score = 100
	}

	return &score
}
