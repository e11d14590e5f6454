package orchestrator

import (
	"testing"

	"codeberg.org/wayfare/server/internal/providers"
)

func TestScoreFromReportNil(t *testing.T) {
	if got := scoreFromReport(nil); got != nil {
		t.Errorf("nil report should omit the score, got %d", *got)
	}
}

func TestScoreFromReportExplicitScore(t *testing.T) {
	report := &providers.ValidationReport{
		Issues:       []providers.Issue{{Severity: providers.SeverityError, Reason: "day 4 is unreachable"}},
		QualityScore: 63,
	}

	got := scoreFromReport(report)
	if got == nil || *got != 63 {
		t.Errorf("an explicit provider score wins over derivation, got %v", got)
	}
}

func TestScoreFromReportDerivedFromIssues(t *testing.T) {
	report := &providers.ValidationReport{
		Issues: []providers.Issue{
			{Severity: providers.SeverityError, Reason: "closed on mondays"},
			{Severity: providers.SeverityWarning, Reason: "tight transfer"},
			{Severity: providers.SeverityInfo, Reason: "rainy season"},
		},
	}

	got := scoreFromReport(report)
	if got == nil {
		t.Fatal("a report with issues should always yield a score")
	}

	// 100 - 25 - 10 - 2
	if *got != 63 {
		t.Errorf("expected derived score 63, got %d", *got)
	}
}

func TestScoreFromReportClampsAtZero(t *testing.T) {
	issues := make([]providers.Issue, 6)
	for i := range issues {
		issues[i] = providers.Issue{Severity: providers.SeverityError, Reason: "broken"}
	}

	got := scoreFromReport(&providers.ValidationReport{Issues: issues})
	if got == nil || *got != 0 {
		t.Errorf("heavily penalized reports clamp at 0, got %v", got)
	}
}

func TestScoreFromReportClampsAtHundred(t *testing.T) {
	got := scoreFromReport(&providers.ValidationReport{QualityScore: 140})
	if got == nil || *got != 100 {
		t.Errorf("scores clamp at 100, got %v", got)
	}
}

func TestScoreFromReportCleanReportWithoutScore(t *testing.T) {
	// no issues, no score: the provider sent an empty report; keep 0
	// rather than inventing a perfect score
	got := scoreFromReport(&providers.ValidationReport{})
	if got == nil || *got != 0 {
		t.Errorf("expected 0 for an empty report, got %v", got)
	}
}
