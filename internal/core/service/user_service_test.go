package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
)

func TestUserService_Create_Success(t *testing.T) {
	fixClock(t)
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	user, err := svc.Create(context.Background(), adminActor, ports.CreateUserInput{
		Username: "bob", Password: "pass123", Role: domain.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID == "" || user.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at to be set: %+v", user)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.users["bob"].PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Create_DefaultsToEmployee(t *testing.T) {
	fixClock(t)
	svc := NewUserService(newStubUserRepo(), discardLogger)

	user, err := svc.Create(context.Background(), adminActor, ports.CreateUserInput{Username: "bob", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleEmployee {
		t.Fatalf("expected employee role, got %q", user.Role)
	}
}

func TestUserService_Create_NonAdminForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	_, err := svc.Create(context.Background(), bobActor, ports.CreateUserInput{Username: "x", Password: "y"})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("nothing must be stored")
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), discardLogger)

	cases := []ports.CreateUserInput{
		{Username: "", Password: "pw"},
		{Username: "bob", Password: ""},
		{Username: "bob", Password: "pw", Role: "manager"},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), adminActor, in); err != domain.ErrInvalidInput {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestUserService_Create_DuplicateLeavesOriginal(t *testing.T) {
	fixClock(t)
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	first, err := svc.Create(context.Background(), adminActor, ports.CreateUserInput{Username: "bob", Password: "pw1", Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err = svc.Create(context.Background(), adminActor, ports.CreateUserInput{Username: "bob", Password: "pw2", Role: domain.RoleAdmin})
	if err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	stored := repo.users["bob"]
	if stored.ID != first.ID || stored.Role != domain.RoleEmployee {
		t.Fatalf("existing record altered: %+v", stored)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")) != nil {
		t.Fatalf("existing password altered")
	}
}

func TestUserService_List(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["bob"] = &domain.User{ID: "1", Username: "bob"}
	repo.users["eve"] = &domain.User{ID: "2", Username: "eve"}
	svc := NewUserService(repo, discardLogger)

	users, err := svc.List(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	if _, err := svc.List(context.Background(), bobActor); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for employee, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["bob"] = &domain.User{ID: "u-1", Username: "bob"}
	svc := NewUserService(repo, discardLogger)

	if err := svc.Delete(context.Background(), bobActor, "u-1"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor, "u-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.users["bob"]; ok {
		t.Fatalf("user still stored")
	}
	if err := svc.Delete(context.Background(), adminActor, "u-1"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
