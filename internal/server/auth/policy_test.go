package auth

import (
	"testing"

	"github.com/mvaldesc/conecta-api/internal/server/models"
)

func TestRequireSuperuser(t *testing.T) {
	t.Parallel()

	if err := RequireSuperuser(&models.User{ID: "u1", IsSuperuser: true}); err != nil {
		t.Fatalf("superuser must pass: %v", err)
	}
	if err := RequireSuperuser(&models.User{ID: "u1"}); err == nil {
		t.Fatalf("regular user must be forbidden")
	}
	if err := RequireSuperuser(nil); err == nil {
		t.Fatalf("nil identity must be forbidden")
	}
}

func TestRequireSuperuserOrOwner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity *models.User
		ownerID  string
		wantOK   bool
	}{
		{"owner passes", &models.User{ID: "u1"}, "u1", true},
		{"non-owner fails", &models.User{ID: "u1"}, "u2", false},
		{"superuser passes regardless", &models.User{ID: "u9", IsSuperuser: true}, "u2", true},
		{"superuser passes with unknown owner", &models.User{ID: "u9", IsSuperuser: true}, "", true},
		{"unknown owner degrades to superuser check", &models.User{ID: "u1"}, "", false},
		{"nil identity fails", nil, "u1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireSuperuserOrOwner(tt.identity, tt.ownerID)
			if tt.wantOK && err != nil {
				t.Fatalf("expected pass, got %v", err)
			}
			if !tt.wantOK && err == nil {
				t.Fatalf("expected forbidden, got nil")
			}
		})
	}
}
