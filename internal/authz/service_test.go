package authz

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupAuthz(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSeedBuiltinRolesAndEnforce(t *testing.T) {
	svc := setupAuthz(t)
	if err := svc.SeedBuiltinRoles(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.SetStaffRoles(7, []string{"kommissionierung"}); err != nil {
		t.Fatalf("set roles: %v", err)
	}

	ok, err := svc.EnforceStaff(7, "/api/v1/staff/orders/42/claim-picking", "POST")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if !ok {
		t.Fatal("kommissionierung must be allowed to claim picking")
	}

	ok, err = svc.EnforceStaff(7, "/api/v1/staff/orders/42/claim-control", "POST")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if ok {
		t.Fatal("kommissionierung must not be allowed to claim control")
	}
}

func TestZerlegerHasNoWorkflowAccess(t *testing.T) {
	svc := setupAuthz(t)
	if err := svc.SeedBuiltinRoles(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.SetStaffRoles(9, []string{"zerleger"}); err != nil {
		t.Fatalf("set roles: %v", err)
	}

	for _, check := range []struct{ obj, act string }{
		{"/staff/orders", "GET"},
		{"/staff/orders/1/claim-picking", "POST"},
		{"/staff/orders/1/claim-control", "POST"},
	} {
		ok, err := svc.EnforceStaff(9, check.obj, check.act)
		if err != nil {
			t.Fatalf("enforce %s: %v", check.obj, err)
		}
		if ok {
			t.Fatalf("zerleger must be denied %s %s", check.act, check.obj)
		}
	}
}

func TestNormalizeObjectStripsAPIPrefix(t *testing.T) {
	cases := map[string]string{
		"/api/v1/staff/orders": "/staff/orders",
		"staff/orders":         "/staff/orders",
		"":                     "/",
		"/api/v1":              "/",
	}
	for in, want := range cases {
		if got := NormalizeObject(in); got != want {
			t.Fatalf("NormalizeObject(%q) = %q, want %q", in, got, want)
		}
	}
}
