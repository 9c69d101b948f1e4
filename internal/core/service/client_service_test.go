package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
)

func TestClientService_Create(t *testing.T) {
	fixClock(t)
	repo := newStubClientRepo()
	svc := NewClientService(repo, &stubSheetParser{}, discardLogger)

	c, err := svc.Create(context.Background(), adminActor, "Client 1", "123 Main St")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		t.Fatalf("id/created_at not set: %+v", c)
	}
	if stored := repo.byID[c.ID]; stored == nil || stored.Address != "123 Main St" {
		t.Fatalf("client not stored: %+v", stored)
	}
}

func TestClientService_Create_NonAdminForbidden(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, &stubSheetParser{}, discardLogger)

	if _, err := svc.Create(context.Background(), bobActor, "Client 1", "addr"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("nothing must be stored")
	}
}

func TestClientService_Create_RepoError(t *testing.T) {
	repo := newStubClientRepo()
	repo.createErr = errDBDown
	svc := NewClientService(repo, &stubSheetParser{}, discardLogger)

	if _, err := svc.Create(context.Background(), adminActor, "Client 1", "addr"); !errors.Is(err, errDBDown) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestClientService_List_SortedByName(t *testing.T) {
	fixClock(t)
	repo := newStubClientRepo()
	svc := NewClientService(repo, &stubSheetParser{}, discardLogger)

	for _, name := range []string{"Zeta Pools", "Acme", "Marina Club", "Beach House"} {
		if _, err := svc.Create(context.Background(), adminActor, name, "addr"); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	clients, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Acme", "Beach House", "Marina Club", "Zeta Pools"}
	if len(clients) != len(want) {
		t.Fatalf("expected %d clients, got %d", len(want), len(clients))
	}
	for i, c := range clients {
		if c.Name != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], c.Name)
		}
	}
}

func TestClientService_Delete(t *testing.T) {
	repo := newStubClientRepo()
	repo.byID["c-1"] = &domain.Client{ID: "c-1", Name: "Acme"}
	svc := NewClientService(repo, &stubSheetParser{}, discardLogger)

	if err := svc.Delete(context.Background(), bobActor, "c-1"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor, "c-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor, "c-1"); err != domain.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientService_Delete_KeepsReports(t *testing.T) {
	fixClock(t)
	clients := newStubClientRepo()
	reports := newStubReportRepo()
	clientSvc := NewClientService(clients, &stubSheetParser{}, discardLogger)
	reportSvc := NewReportService(reports, clients, discardLogger)

	c, _ := clientSvc.Create(context.Background(), adminActor, "Acme", "addr")
	r, err := reportSvc.Create(context.Background(), bobActor, ports.CreateReportInput{ClientID: c.ID, Description: "leak", Priority: "URGENT"})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}

	if err := clientSvc.Delete(context.Background(), adminActor, c.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}
	if _, ok := reports.byID[r.ID]; !ok {
		t.Fatalf("report must survive client deletion")
	}
}

func TestClientService_Import(t *testing.T) {
	fixClock(t)
	repo := newStubClientRepo()
	parser := &stubSheetParser{rows: []ports.ClientRow{
		{Name: "Acme", Address: "1 First St"},
		{Name: "Beach House", Address: "2 Second St"},
		{Name: "Marina Club", Address: "3 Third St"},
	}}
	svc := NewClientService(repo, parser, discardLogger)

	n, err := svc.Import(context.Background(), adminActor, "clients.xlsx", strings.NewReader("ignored"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 imported, got %d", n)
	}
	if len(repo.byID) != 3 {
		t.Fatalf("expected 3 stored, got %d", len(repo.byID))
	}
	for _, c := range repo.byID {
		if c.ID == "" || c.CreatedAt.IsZero() {
			t.Errorf("imported client missing id/created_at: %+v", c)
		}
	}
}

func TestClientService_Import_NoRows(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, &stubSheetParser{}, discardLogger)

	n, err := svc.Import(context.Background(), adminActor, "empty.csv", strings.NewReader(""))
	if err != nil || n != 0 {
		t.Fatalf("expected 0 imported and no error, got %d %v", n, err)
	}
}

func TestClientService_Import_ParserError(t *testing.T) {
	repo := newStubClientRepo()
	parser := &stubSheetParser{err: fmt.Errorf("missing Name column: %w", domain.ErrInvalidSpreadsheet)}
	svc := NewClientService(repo, parser, discardLogger)

	_, err := svc.Import(context.Background(), adminActor, "bad.xlsx", strings.NewReader("x"))
	if !errors.Is(err, domain.ErrInvalidSpreadsheet) {
		t.Fatalf("expected ErrInvalidSpreadsheet, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("nothing must be stored")
	}
}

func TestClientService_Import_NonAdminForbidden(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), &stubSheetParser{}, discardLogger)

	if _, err := svc.Import(context.Background(), eveActor, "c.csv", strings.NewReader("")); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
