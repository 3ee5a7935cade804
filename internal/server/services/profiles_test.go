package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/mvaldesc/conecta-api/internal/common"
	"github.com/mvaldesc/conecta-api/internal/server/models"
)

func TestProfileUpdate_MergesFields(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	existing := &models.Profile{
		ID:           "p1",
		Name:         "Alice's shop",
		Description:  sql.NullString{String: "old description", Valid: true},
		WhatsappLink: sql.NullString{String: "https://wa.me/111", Valid: true},
		CoverImage:   sql.NullString{String: "profiles/2026/1/1/cover.png", Valid: true},
		UserID:       "u1",
	}
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{},
		p: &fakeProfilesRepo{byID: map[string]*models.Profile{"p1": existing}},
	}
	s := NewProfileService(db, rm, testLogger())

	desc := "new description"
	fb := "https://facebook.com/alice"
	clear := ""
	got, err := s.Update(context.Background(), "p1", ProfileUpdate{
		Description:  &desc,
		FacebookLink: &fb,
		WhatsappLink: &clear,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if got.Description.String != "new description" || !got.Description.Valid {
		t.Fatalf("description not updated: %+v", got.Description)
	}
	if got.FacebookLink.String != fb || !got.FacebookLink.Valid {
		t.Fatalf("facebook link not set: %+v", got.FacebookLink)
	}
	if got.WhatsappLink.Valid {
		t.Fatalf("empty string must clear the column, got %+v", got.WhatsappLink)
	}
	if got.Name != "Alice's shop" {
		t.Fatalf("untouched name changed: %q", got.Name)
	}
	if got.CoverImage.String != existing.CoverImage.String {
		t.Fatalf("untouched image changed: %+v", got.CoverImage)
	}
	if rm.p.updated == nil {
		t.Fatalf("repository Update not called")
	}
}

func TestProfileUpdate_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}, p: &fakeProfilesRepo{}}
	s := NewProfileService(db, rm, testLogger())

	_, err := s.Update(context.Background(), "ghost", ProfileUpdate{})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestProfileGetters(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	p := &models.Profile{ID: "p1", Name: "shop", UserID: "u1"}
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{},
		p: &fakeProfilesRepo{
			byID:   map[string]*models.Profile{"p1": p},
			byUser: map[string]*models.Profile{"u1": p},
		},
	}
	s := NewProfileService(db, rm, testLogger())

	got, err := s.GetByID(context.Background(), "p1")
	if err != nil || got.ID != "p1" {
		t.Fatalf("GetByID: got (%+v, %v)", got, err)
	}

	got, err = s.GetByUserID(context.Background(), "u1")
	if err != nil || got.UserID != "u1" {
		t.Fatalf("GetByUserID: got (%+v, %v)", got, err)
	}

	if _, err = s.GetByID(context.Background(), "nope"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("GetByID missing: want ErrorNotFound, got %v", err)
	}
}
