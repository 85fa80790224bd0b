package handlers

import (
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"tcu-system/internal/models"
)

func TestParseRequestForm(t *testing.T) {
	hours, date, err := parseRequestForm("5", "trabajo comunal", "2024-01-01")
	if err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	if hours != 5 || date.Format("2006-01-02") != "2024-01-01" {
		t.Fatalf("unexpected parse result %d %v", hours, date)
	}

	// today is fine, tomorrow is not
	today := time.Now().Format("2006-01-02")
	if _, _, err := parseRequestForm("1", "x", today); err != nil {
		t.Fatalf("today must be accepted: %v", err)
	}
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	if _, _, err := parseRequestForm("1", "x", tomorrow); !errors.Is(err, ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate got %v", err)
	}

	for _, hours := range []string{"0", "-3", "101", "abc", ""} {
		if _, _, err := parseRequestForm(hours, "x", "2024-01-01"); !errors.Is(err, ErrInvalidHours) {
			t.Fatalf("hours %q: expected ErrInvalidHours got %v", hours, err)
		}
	}
	// boundaries are inclusive
	for _, hours := range []string{"1", "100"} {
		if _, _, err := parseRequestForm(hours, "x", "2024-01-01"); err != nil {
			t.Fatalf("hours %q must be accepted: %v", hours, err)
		}
	}

	if _, _, err := parseRequestForm("5", "x", "01/02/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate got %v", err)
	}
}

// The future-date check must work on calendar dates in the server's zone:
// behind UTC, tomorrow's local date must still be rejected after UTC
// midnight; ahead of UTC, today's local date must be accepted before it.
func TestParseRequestFormDateUsesLocalCalendar(t *testing.T) {
	orig := time.Local
	defer func() { time.Local = orig }()

	zones := []*time.Location{
		time.FixedZone("behind", -6*3600),
		time.FixedZone("ahead", 13*3600),
	}
	for _, zone := range zones {
		time.Local = zone

		today := time.Now().In(zone).Format("2006-01-02")
		if _, _, err := parseRequestForm("5", "x", today); err != nil {
			t.Fatalf("zone %s: today %s must be accepted: %v", zone, today, err)
		}

		tomorrow := time.Now().In(zone).AddDate(0, 0, 1).Format("2006-01-02")
		if _, _, err := parseRequestForm("5", "x", tomorrow); !errors.Is(err, ErrFutureDate) {
			t.Fatalf("zone %s: tomorrow %s must be rejected, got %v", zone, tomorrow, err)
		}
	}
}

func TestAcceptUpload(t *testing.T) {
	ok := []string{"a.pdf", "b.DOC", "c.docx", "d.jpg", "e.JPEG", "f.png", "g.txt"}
	for _, name := range ok {
		h := &multipart.FileHeader{Filename: name, Size: 1024}
		if warning := acceptUpload(h); warning != "" {
			t.Fatalf("%s must be accepted, got %q", name, warning)
		}
	}

	bad := []string{"a.exe", "b.sh", "noext", "c.pdf.zip"}
	for _, name := range bad {
		h := &multipart.FileHeader{Filename: name, Size: 1024}
		if warning := acceptUpload(h); warning == "" {
			t.Fatalf("%s must be rejected", name)
		}
	}

	big := &multipart.FileHeader{Filename: "a.pdf", Size: maxUploadSize + 1}
	if warning := acceptUpload(big); warning == "" {
		t.Fatalf("oversized file must be rejected")
	}
	exact := &multipart.FileHeader{Filename: "a.pdf", Size: maxUploadSize}
	if warning := acceptUpload(exact); warning != "" {
		t.Fatalf("file at the limit must be accepted, got %q", warning)
	}
}

func TestCanReviewRequest(t *testing.T) {
	ownerID := uint(7)
	owner := models.User{ID: ownerID}
	other := models.User{ID: 8}
	admin := models.User{ID: 1}
	student := models.User{ID: 2}

	req := models.Request{
		Project: &models.Project{ID: 3, ProfessorID: &ownerID},
	}

	if !canReviewRequest(admin, models.RoleAdmin, req) {
		t.Fatalf("admin must review anything")
	}
	if !canReviewRequest(owner, models.RoleProfessor, req) {
		t.Fatalf("owning professor must be allowed")
	}
	if canReviewRequest(other, models.RoleProfessor, req) {
		t.Fatalf("non-owning professor must be blocked")
	}
	if canReviewRequest(student, models.RoleStudent, req) {
		t.Fatalf("students never review")
	}

	// orphan project or missing professor never passes for professors
	if canReviewRequest(owner, models.RoleProfessor, models.Request{}) {
		t.Fatalf("request without project must be blocked for professors")
	}
	if canReviewRequest(owner, models.RoleProfessor, models.Request{Project: &models.Project{ID: 3}}) {
		t.Fatalf("project without professor must be blocked for professors")
	}
}

func TestCanViewRequest(t *testing.T) {
	anaID := uint(2)
	ana := models.User{ID: anaID}
	luis := models.User{ID: 3}
	req := models.Request{StudentID: &anaID}

	if !canViewRequest(ana, models.RoleStudent, req) {
		t.Fatalf("owner student must view their request")
	}
	if canViewRequest(luis, models.RoleStudent, req) {
		t.Fatalf("other students must be blocked")
	}
	if !canViewRequest(models.User{ID: 1}, models.RoleAdmin, req) {
		t.Fatalf("admin must view anything")
	}
	if !canViewRequest(models.User{ID: 9}, models.RoleProfessor, req) {
		t.Fatalf("staff may open any request detail")
	}
}
