package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mvaldesc/conecta-api/internal/common"
	"github.com/mvaldesc/conecta-api/internal/dbx"
	"github.com/mvaldesc/conecta-api/internal/logging"
	"github.com/mvaldesc/conecta-api/internal/server/auth"
	"github.com/mvaldesc/conecta-api/internal/server/config"
	"github.com/mvaldesc/conecta-api/internal/server/models"
	profilesrepo "github.com/mvaldesc/conecta-api/internal/server/repositories/profiles"
	"github.com/mvaldesc/conecta-api/internal/server/repositories/repomanager"
	usersrepo "github.com/mvaldesc/conecta-api/internal/server/repositories/users"
)

// --- shared test helpers and fakes ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "test-secret",
		SuperuserKey:                "root-key",
		AccessTokenValidityDuration: time.Hour,
	}
}

type fakeUsersRepo struct {
	usersrepo.Repository

	byID       map[string]*models.User
	byUsername map[string]*models.User
	byEmail    map[string]*models.User

	loginOut *models.User
	loginErr error

	created   []*models.User
	createErr error

	updated *models.User

	newHash string

	deleted []string
}

func lookupUser(m map[string]*models.User, key string) (*models.User, error) {
	if u, ok := m[key]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	return u, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return lookupUser(f.byID, id)
}
func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return lookupUser(f.byUsername, username)
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return lookupUser(f.byEmail, email)
}
func (f *fakeUsersRepo) GetByUsernameOrEmail(ctx context.Context, value string) (*models.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.loginOut != nil {
		return f.loginOut, nil
	}
	return nil, common.ErrorNotFound
}
func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	f.updated = u
	return u, nil
}
func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id string, hash string) error {
	f.newHash = hash
	return nil
}
func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeProfilesRepo struct {
	profilesrepo.Repository

	byID   map[string]*models.Profile
	byUser map[string]*models.Profile

	created   []*models.Profile
	createErr error

	updated *models.Profile
}

func (f *fakeProfilesRepo) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, p)
	return p, nil
}
func (f *fakeProfilesRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, common.ErrorNotFound
}
func (f *fakeProfilesRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if p, ok := f.byUser[userID]; ok {
		return p, nil
	}
	return nil, common.ErrorNotFound
}
func (f *fakeProfilesRepo) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	f.updated = p
	return p, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakeProfilesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profilesrepo.Repository { return m.p }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

// --- login ---

func TestLogin_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	rm := &fakeRepoManager{u: &fakeUsersRepo{
		loginOut: &models.User{ID: "u1", Username: "alice", Email: "alice@example.com", PasswordHash: hash},
	}}
	s := NewAuthService(db, rm, testConfig(), testLogger())

	res, err := s.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.ID != "u1" || res.Username != "alice" || res.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", res)
	}

	claims, err := auth.ParseToken(res.AccessToken, []byte("test-secret"))
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != "alice" || claims.UserID != "u1" || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := NewAuthService(db, rm, testConfig(), testLogger())

	if _, err := s.Login(context.Background(), "ghost", "x"); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, _ := auth.HashPassword("right")
	rm := &fakeRepoManager{u: &fakeUsersRepo{
		loginOut: &models.User{ID: "u1", Username: "alice", PasswordHash: hash},
	}}
	s := NewAuthService(db, rm, testConfig(), testLogger())

	_, err := s.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_LookupError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{loginErr: errBoom{}}}
	s := NewAuthService(db, rm, testConfig(), testLogger())

	if _, err := s.Login(context.Background(), "alice", "x"); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want ErrorInternal, got %v", err)
	}
}

// Same generic error for unknown user and wrong password, so responses
// cannot be used to probe which accounts exist.
func TestLogin_NoUserEnumeration(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, _ := auth.HashPassword("right")
	rmKnown := &fakeRepoManager{u: &fakeUsersRepo{
		loginOut: &models.User{ID: "u1", Username: "alice", PasswordHash: hash},
	}}
	rmUnknown := &fakeRepoManager{u: &fakeUsersRepo{}}

	_, errKnown := NewAuthService(db, rmKnown, testConfig(), testLogger()).Login(context.Background(), "alice", "wrong")
	_, errUnknown := NewAuthService(db, rmUnknown, testConfig(), testLogger()).Login(context.Background(), "ghost", "wrong")

	if !errors.Is(errKnown, common.ErrInvalidCredentials) || !errors.Is(errUnknown, common.ErrInvalidCredentials) {
		t.Fatalf("want identical ErrInvalidCredentials, got %v and %v", errKnown, errUnknown)
	}
	if errKnown.Error() != errUnknown.Error() {
		t.Fatalf("error messages differ: %q vs %q", errKnown.Error(), errUnknown.Error())
	}
}
