package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func creativeServer(t *testing.T, handler http.HandlerFunc) *CreativeAdapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewCreativeAdapter(CreativeConfig{URL: srv.URL, APIKey: "test-key", Model: "draft-v2"})
}

func TestCreativeInvokeSuccess(t *testing.T) {
	adapter := creativeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", auth)
		}

		var req creativeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		if req.Location != "Kyoto" || req.Days != 2 {
			t.Errorf("unexpected request params: %+v", req)
		}

		json.NewEncoder(w).Encode(creativeResponse{ //nolint:errcheck // test response
			Itinerary: &Itinerary{
				Title: "Two days in Kyoto",
				Days: []DayPlan{
					{Day: 1, Activities: []Activity{{Name: "Fushimi Inari"}}},
					{Day: 2, Activities: []Activity{{Name: "Arashiyama"}}},
				},
			},
		})
	})

	result := adapter.Invoke(context.Background(), Params{Location: "Kyoto", Days: 2})

	if !result.Succeeded {
		t.Fatalf("expected success, got %s", result.FailureReason)
	}

	if result.Role != RoleCreative {
		t.Errorf("expected role creative, got %s", result.Role)
	}

	if result.Payload == nil || len(result.Payload.Days) != 2 {
		t.Error("expected a two day payload")
	}

	if result.Latency <= 0 {
		t.Error("latency should be recorded")
	}
}

func TestCreativeInvokeMalformedBody(t *testing.T) {
	adapter := creativeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{not json")) //nolint:errcheck // test response
	})

	result := adapter.Invoke(context.Background(), Params{Location: "Kyoto", Days: 2})

	if result.Succeeded {
		t.Fatal("malformed body should fail")
	}

	if result.FailureReason != FailureInvalidResponse {
		t.Errorf("expected invalid_response, got %s", result.FailureReason)
	}
}

func TestCreativeInvokeEmptyItinerary(t *testing.T) {
	adapter := creativeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(creativeResponse{ //nolint:errcheck // test response
			Itinerary: &Itinerary{Title: "Empty"},
		})
	})

	result := adapter.Invoke(context.Background(), Params{Location: "Kyoto", Days: 2})

	if result.Succeeded {
		t.Fatal("an itinerary without days should fail")
	}

	if result.FailureReason != FailureInvalidResponse {
		t.Errorf("expected invalid_response, got %s", result.FailureReason)
	}
}

func TestCreativeInvokeRejectedByProvider(t *testing.T) {
	adapter := creativeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unsupported location", http.StatusUnprocessableEntity)
	})

	result := adapter.Invoke(context.Background(), Params{Location: "Atlantis", Days: 2})

	if result.Succeeded {
		t.Fatal("a 4xx response should fail")
	}

	if result.FailureReason != FailureRejected {
		t.Errorf("expected rejected, got %s", result.FailureReason)
	}
}

func TestCreativeInvokeServerError(t *testing.T) {
	adapter := creativeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	result := adapter.Invoke(context.Background(), Params{Location: "Kyoto", Days: 2})

	if result.Succeeded {
		t.Fatal("a 5xx response should fail")
	}

	if result.FailureReason != FailureTransportError {
		t.Errorf("expected transport_error, got %s", result.FailureReason)
	}
}

func TestCreativeInvokeTimeout(t *testing.T) {
	adapter := creativeServer(t, func(w http.ResponseWriter, r *http.Request) {
		// drain the body so the server notices the client abort, then hang
		// until the aborted request's context releases the handler
		io.Copy(io.Discard, r.Body) //nolint:errcheck // test fixture
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result := adapter.Invoke(ctx, Params{Location: "Kyoto", Days: 2})

	if result.Succeeded {
		t.Fatal("expected timeout failure")
	}

	if result.FailureReason != FailureTimeout {
		t.Errorf("expected timeout, got %s", result.FailureReason)
	}
}

func TestCreativeInvokeUnreachableProvider(t *testing.T) {
	// closed port: connection refused
	adapter := NewCreativeAdapter(CreativeConfig{URL: "http://127.0.0.1:1", APIKey: "k"})

	result := adapter.Invoke(context.Background(), Params{Location: "Kyoto", Days: 2})

	if result.Succeeded {
		t.Fatal("expected transport failure")
	}

	if result.FailureReason != FailureTransportError {
		t.Errorf("expected transport_error, got %s", result.FailureReason)
	}
}

func TestValidatorInvokeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(validatorResponse{ //nolint:errcheck // test response
			Report: &ValidationReport{
				Issues:       []Issue{{Severity: SeverityWarning, Reason: "day 2 is densely packed"}},
				QualityScore: 78,
			},
		})
	}))
	t.Cleanup(srv.Close)

	adapter := NewValidatorAdapter(ValidatorConfig{URL: srv.URL, APIKey: "k"})

	result := adapter.Invoke(context.Background(), Params{Location: "Kyoto", Days: 2})

	if !result.Succeeded {
		t.Fatalf("expected success, got %s", result.FailureReason)
	}

	if result.Report == nil || result.Report.QualityScore != 78 {
		t.Error("expected the preliminary report to carry through")
	}

	if result.Payload != nil {
		t.Error("validator results never carry a payload")
	}
}

func TestValidatorInvokeMissingReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{}")) //nolint:errcheck // test response
	}))
	t.Cleanup(srv.Close)

	adapter := NewValidatorAdapter(ValidatorConfig{URL: srv.URL, APIKey: "k"})

	result := adapter.Invoke(context.Background(), Params{Location: "Kyoto", Days: 2})

	if result.Succeeded {
		t.Fatal("a response without a report should fail")
	}

	if result.FailureReason != FailureInvalidResponse {
		t.Errorf("expected invalid_response, got %s", result.FailureReason)
	}
}

func TestSupervisorInvokeRevision(t *testing.T) {
	draft := &Itinerary{
		Title: "Two days in Kyoto",
		Days:  []DayPlan{{Day: 1, Activities: []Activity{{Name: "Fushimi Inari"}}}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req supervisorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		if req.Draft == nil {
			t.Error("supervisor request must carry the draft")
		}

		if req.Preliminary == nil {
			t.Error("supervisor request should forward the preliminary report")
		}

		revised := *req.Draft
		revised.Title = "Two days in Kyoto, revised"

		json.NewEncoder(w).Encode(supervisorResponse{ //nolint:errcheck // test response
			Itinerary: &revised,
			Report:    &ValidationReport{QualityScore: 91},
		})
	}))
	t.Cleanup(srv.Close)

	adapter := NewSupervisorAdapter(SupervisorConfig{URL: srv.URL, APIKey: "k", Model: "qa-v1"})

	result := adapter.Invoke(context.Background(), Params{
		Location:    "Kyoto",
		Days:        2,
		Draft:       draft,
		Preliminary: &ValidationReport{QualityScore: 70},
	})

	if !result.Succeeded {
		t.Fatalf("expected success, got %s", result.FailureReason)
	}

	if result.Payload == nil || result.Payload.Title != "Two days in Kyoto, revised" {
		t.Error("expected the revised itinerary")
	}

	if result.Report == nil || result.Report.QualityScore != 91 {
		t.Error("expected the authoritative report")
	}
}

func TestSupervisorInvokeApprovalWithoutRevision(t *testing.T) {
	draft := &Itinerary{
		Title: "Two days in Kyoto",
		Days:  []DayPlan{{Day: 1, Activities: []Activity{{Name: "Fushimi Inari"}}}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(supervisorResponse{ //nolint:errcheck // test response
			Report: &ValidationReport{QualityScore: 88},
		})
	}))
	t.Cleanup(srv.Close)

	adapter := NewSupervisorAdapter(SupervisorConfig{URL: srv.URL, APIKey: "k"})

	result := adapter.Invoke(context.Background(), Params{Location: "Kyoto", Days: 2, Draft: draft})

	if !result.Succeeded {
		t.Fatalf("expected success, got %s", result.FailureReason)
	}

	if result.Payload != draft {
		t.Error("an approval without a revision should keep the draft")
	}
}

func TestSupervisorInvokeWithoutDraft(t *testing.T) {
	adapter := NewSupervisorAdapter(SupervisorConfig{URL: "http://127.0.0.1:1", APIKey: "k"})

	result := adapter.Invoke(context.Background(), Params{Location: "Kyoto", Days: 2})

	if result.Succeeded {
		t.Fatal("invoking the supervisor without a draft should fail")
	}

	if result.FailureReason != FailureRejected {
		t.Errorf("expected rejected, got %s", result.FailureReason)
	}
}

func TestSupervisorInvokeMissingReport(t *testing.T) {
	draft := &Itinerary{Days: []DayPlan{{Day: 1}}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(supervisorResponse{ //nolint:errcheck // test response
			Itinerary: draft,
		})
	}))
	t.Cleanup(srv.Close)

	adapter := NewSupervisorAdapter(SupervisorConfig{URL: srv.URL, APIKey: "k"})

	result := adapter.Invoke(context.Background(), Params{Location: "Kyoto", Days: 2, Draft: draft})

	if result.Succeeded {
		t.Fatal("a supervisor response without a report should fail")
	}

	if result.FailureReason != FailureInvalidResponse {
		t.Errorf("expected invalid_response, got %s", result.FailureReason)
	}
}
