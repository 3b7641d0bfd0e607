package project

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/foliolabs/folio/domain/search"
)

func validParams() Params {
	return Params{
		Title:            "Dental Clinic Site",
		ClientName:       "Dr. Smith",
		Category:         "Healthcare",
		ShortDescription: "Booking and patient portal",
		Platform:         "Wix Studio",
		StartDate:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNew_DefaultsStatusToPending(t *testing.T) {
	p := New(validParams())
	if p.Status() != "Pending" {
		t.Errorf("expected status Pending, got %q", p.Status())
	}
}

func TestNew_KeepsExplicitStatus(t *testing.T) {
	params := validParams()
	params.Status = "Completed"

	p := New(params)
	if p.Status() != "Completed" {
		t.Errorf("expected status Completed, got %q", p.Status())
	}
}

func TestValidate_Valid(t *testing.T) {
	p := New(validParams())
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	p := New(Params{})

	err := p.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, field := range []string{"title", "client_name", "short_description", "category", "platform", "start_date"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected error to name %s, got %q", field, err.Error())
		}
	}
}

func TestValidate_WhitespaceOnlyTitle(t *testing.T) {
	params := validParams()
	params.Title = "   "

	err := New(params).Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBudget_PrefersFinalized(t *testing.T) {
	proposed := 500.0
	finalized := 750.0
	params := validParams()
	params.ProposedBudget = &proposed
	params.FinalizedBudget = &finalized

	p := New(params)
	if got := p.Budget(); got == nil || *got != finalized {
		t.Errorf("expected finalized budget %v, got %v", finalized, got)
	}
}

func TestBudget_FallsBackToProposed(t *testing.T) {
	proposed := 500.0
	params := validParams()
	params.ProposedBudget = &proposed

	p := New(params)
	if got := p.Budget(); got == nil || *got != proposed {
		t.Errorf("expected proposed budget %v, got %v", proposed, got)
	}
}

func TestBudget_NilWhenUnset(t *testing.T) {
	p := New(validParams())
	if p.Budget() != nil {
		t.Error("expected nil budget")
	}
}

func TestIsIndexed(t *testing.T) {
	p := New(validParams())
	if p.IsIndexed() {
		t.Error("project without embedding should not be indexed")
	}

	params := validParams()
	params.Embedding = search.Vector{0.1, 0.2}
	if !New(params).IsIndexed() {
		t.Error("project with embedding should be indexed")
	}
}

func TestDocument_CarriesTextFields(t *testing.T) {
	params := validParams()
	params.Tagline = "Modern dental sites"
	params.Features = []string{"Booking"}
	params.Developers = []string{"Alice"}

	text := search.ComposeText(New(params).Document())

	for _, want := range []string{
		"Project: Dental Clinic Site",
		"Tagline: Modern dental sites",
		"Category: Healthcare",
		"Platform: Wix Studio",
		"Features: Booking",
		"Developers: Alice",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected composed text to contain %q, got %q", want, text)
		}
	}
}

func TestFeatures_ReturnsCopy(t *testing.T) {
	params := validParams()
	params.Features = []string{"Booking"}
	p := New(params)

	got := p.Features()
	got[0] = "mutated"

	if p.Features()[0] != "Booking" {
		t.Error("mutating the returned slice should not affect the project")
	}
}
