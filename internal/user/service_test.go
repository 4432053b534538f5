package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hitoshi/todolist/internal/model"
)

// --- テスト用モック ---

// mockUserRepo はテスト用のUserRepositoryモック。
type mockUserRepo struct {
	users     map[string]*model.User
	nextID    int64
	saveCalls int
	saveErr   error
	findErr   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User), nextID: 1}
}

func (m *mockUserRepo) Save(_ context.Context, user *model.User) (*model.User, error) {
	m.saveCalls++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	if _, ok := m.users[user.Username]; ok {
		return nil, model.NewDuplicateUsernameError()
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return user, nil
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	u, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	return u, nil
}

// mockCredentialService はテスト用のCredentialServiceモック。
// ハッシュは平文に接頭辞を付けるだけの決定的な実装。
type mockCredentialService struct {
	hashErr  error
	tokenErr error
}

func (m *mockCredentialService) HashPassword(plain string) (string, error) {
	if m.hashErr != nil {
		return "", m.hashErr
	}
	return "hashed:" + plain, nil
}

func (m *mockCredentialService) VerifyPassword(plain, hash string) bool {
	return hash == "hashed:"+plain
}

func (m *mockCredentialService) CreateToken(username string) (string, error) {
	if m.tokenErr != nil {
		return "", m.tokenErr
	}
	return "token-for-" + username, nil
}

// mockMetrics はテスト用のMetricsRecorderモック。
type mockMetrics struct {
	signups int
}

func (m *mockMetrics) RecordSignup() { m.signups++ }

// --- SignUp テスト ---

// TestSignUp_Success は新規ユーザー登録が成功し、パスワードが
// ハッシュ化されて保存されることを検証する。
func TestSignUp_Success(t *testing.T) {
	repo := newMockUserRepo()
	metrics := &mockMetrics{}
	svc := NewService(repo, &mockCredentialService{}, metrics)

	created, err := svc.SignUp(context.Background(), "alice", "pass123")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	if created.ID == 0 {
		t.Error("created user should have a non-zero ID")
	}
	if created.Username != "alice" {
		t.Errorf("Username = %q, want %q", created.Username, "alice")
	}
	if created.PasswordHash != "hashed:pass123" {
		t.Errorf("PasswordHash = %q, want hashed value", created.PasswordHash)
	}
	if metrics.signups != 1 {
		t.Errorf("signup metric = %d, want 1", metrics.signups)
	}
}

// TestSignUp_EmptyFields は空のユーザー名・パスワードが検証エラーに
// なることを検証する。ストアには触れない。
func TestSignUp_EmptyFields(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pass123"},
		{"empty password", "alice", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockUserRepo()
			svc := NewService(repo, &mockCredentialService{}, nil)

			_, err := svc.SignUp(context.Background(), tt.username, tt.password)
			assertAPIErrorCode(t, err, model.ErrCodeValidation)
			if repo.saveCalls != 0 {
				t.Errorf("Save should not be called on validation error, got %d calls", repo.saveCalls)
			}
		})
	}
}

// TestSignUp_DuplicateUsername はユーザー名重複がDUPLICATE_USERNAMEで
// 返ることを検証する。
func TestSignUp_DuplicateUsername(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, &mockCredentialService{}, nil)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "alice", "pass123"); err != nil {
		t.Fatalf("first SignUp returned error: %v", err)
	}

	_, err := svc.SignUp(ctx, "alice", "other-pass")
	assertAPIErrorCode(t, err, model.ErrCodeDuplicateUsername)
}

// TestSignUp_HashFailure はハッシュ化失敗が内部エラーとして伝播することを検証する。
func TestSignUp_HashFailure(t *testing.T) {
	repo := newMockUserRepo()
	cred := &mockCredentialService{hashErr: fmt.Errorf("bcrypt failure")}
	svc := NewService(repo, cred, nil)

	_, err := svc.SignUp(context.Background(), "alice", "pass123")
	if err == nil {
		t.Fatal("SignUp should fail when hashing fails")
	}
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("hash failure should not be an APIError, got %v", apiErr)
	}
	if repo.saveCalls != 0 {
		t.Errorf("Save should not be called when hashing fails, got %d calls", repo.saveCalls)
	}
}

// --- LogIn テスト ---

// TestLogIn_Success は正しい資格情報でトークンが発行されることを検証する。
func TestLogIn_Success(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, &mockCredentialService{}, nil)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "alice", "pass123"); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	token, err := svc.LogIn(ctx, "alice", "pass123")
	if err != nil {
		t.Fatalf("LogIn returned error: %v", err)
	}
	if token != "token-for-alice" {
		t.Errorf("token = %q, want %q", token, "token-for-alice")
	}
}

// TestLogIn_UnknownUser は存在しないユーザーがUSER_NOT_FOUNDになることを検証する。
func TestLogIn_UnknownUser(t *testing.T) {
	svc := NewService(newMockUserRepo(), &mockCredentialService{}, nil)

	_, err := svc.LogIn(context.Background(), "nobody", "pass123")
	assertAPIErrorCode(t, err, model.ErrCodeUserNotFound)
}

// TestLogIn_WrongPassword はパスワード不一致がINVALID_CREDENTIALSに
// なることを検証する。
func TestLogIn_WrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, &mockCredentialService{}, nil)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "alice", "pass123"); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	_, err := svc.LogIn(ctx, "alice", "wrong-password")
	assertAPIErrorCode(t, err, model.ErrCodeInvalidCredentials)
}

// TestLogIn_EmptyFields は空のユーザー名・パスワードが検証エラーになることを検証する。
func TestLogIn_EmptyFields(t *testing.T) {
	svc := NewService(newMockUserRepo(), &mockCredentialService{}, nil)

	_, err := svc.LogIn(context.Background(), "", "pass123")
	assertAPIErrorCode(t, err, model.ErrCodeValidation)

	_, err = svc.LogIn(context.Background(), "alice", "")
	assertAPIErrorCode(t, err, model.ErrCodeValidation)
}

// assertAPIErrorCode はエラーが指定コードのAPIErrorであることを検証する。
func assertAPIErrorCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T: %v", err, err)
	}
	if apiErr.Code != wantCode {
		t.Errorf("Code = %q, want %q", apiErr.Code, wantCode)
	}
}
