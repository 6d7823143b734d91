package sessions

import (
	"strings"
	"testing"
	"time"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/models"
)

func TestIssueVerify(t *testing.T) {
	svc := NewService("test-secret")
	session := &models.UserSession{
		UserID:    "user-1",
		Username:  "ash",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	token, err := svc.Issue(session)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got.UserID != session.UserID || got.Username != session.Username {
		t.Errorf("Verify() = %+v, want %+v", got, session)
	}
}

func TestVerifyRejections(t *testing.T) {
	svc := NewService("test-secret")

	expired := &models.UserSession{
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	expiredToken, err := svc.Issue(expired)
	if err != nil {
		t.Fatal(err)
	}

	valid := &models.UserSession{
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	validToken, err := svc.Issue(valid)
	if err != nil {
		t.Fatal(err)
	}

	otherSvc := NewService("other-secret")

	tests := []struct {
		name  string
		svc   *Service
		token string
	}{
		{"malformed", svc, "not-a-token"},
		{"tampered payload", svc, "x" + validToken},
		{"wrong secret", otherSvc, validToken},
		{"expired", svc, expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.svc.Verify(tt.token); err == nil {
				t.Error("Verify() succeeded, want error")
			}
		})
	}
}

func TestTokenFormat(t *testing.T) {
	svc := NewService("test-secret")
	token, err := svc.Issue(&models.UserSession{UserID: "u", ExpiresAt: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(token, ".") != 1 {
		t.Errorf("token = %q, want exactly one separator", token)
	}
}
