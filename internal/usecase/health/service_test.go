package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func TestCheck_Healthy(t *testing.T) {
	svc := New(&mockPinger{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("Status = %q, want %q", report.Status, Healthy)
	}
	if report.Checks["registry"] != CheckOK {
		t.Errorf("registry check = %q, want %q", report.Checks["registry"], CheckOK)
	}
}

func TestCheck_RegistryDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")})

	report := svc.Check(context.Background())
	if report.Status != Unhealthy {
		t.Errorf("Status = %q, want %q", report.Status, Unhealthy)
	}
	if report.Checks["registry"] != CheckError {
		t.Errorf("registry check = %q, want %q", report.Checks["registry"], CheckError)
	}
}
