package service

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/clinic-review-platform/internal/remote"
	"github.com/iliyamo/clinic-review-platform/internal/repository"
)

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   SignupInput
		want string
	}{
		{"missing name", SignupInput{Email: "a@example.com", Password: "password1"}, "お名前を入力してください"},
		{"bad email", SignupInput{Name: "花子", Email: "not-an-email", Password: "password1"}, "正しいメールアドレスを入力してください"},
		{"short password", SignupInput{Name: "花子", Email: "a@example.com", Password: "12345"}, "パスワードは6文字以上にしてください"},
	}
	for _, tc := range cases {
		_, err := env.Auth.Signup(ctx, tc.in)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: got %v, want validation error", tc.name, err)
		}
		if ve.Message != tc.want {
			t.Errorf("%s: message %q, want %q", tc.name, ve.Message, tc.want)
		}
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signupPatient(t, "一郎", "dup@example.com")

	_, err := env.Auth.Signup(context.Background(), SignupInput{
		Name: "二郎", Email: "DUP@example.com", Password: "password1",
	})
	if !errors.Is(err, repository.ErrEmailExists) {
		t.Fatalf("got %v, want ErrEmailExists", err)
	}
}

func TestSignupAssignsRoleBadge(t *testing.T) {
	env := newTestEnv(t, nil)

	pt := env.signupPatient(t, "患者", "pt@example.com")
	if pt.User.Role != "patient" || pt.User.Avatar != "PT" {
		t.Errorf("patient signup: role=%q avatar=%q", pt.User.Role, pt.User.Avatar)
	}
	cl := env.signupClinic(t, "院長", "cl@example.com")
	if cl.User.Role != "clinic" || cl.User.Avatar != "CL" {
		t.Errorf("clinic signup: role=%q avatar=%q", cl.User.Role, cl.User.Avatar)
	}
}

func TestLoginLocalOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	env.signupPatient(t, "花子", "hanako@example.com")

	if _, err := env.Auth.Login(ctx, "nobody@example.com", "password1"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown email: got %v, want ErrUserNotFound", err)
	}
	if _, err := env.Auth.Login(ctx, "hanako@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}

	res, err := env.Auth.Login(ctx, "Hanako@Example.com", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token.Token == "" {
		t.Fatal("login returned empty access token")
	}
	u, err := env.Auth.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if u.Email != "hanako@example.com" {
		t.Errorf("current user email = %q", u.Email)
	}
}

func TestSessionSingularity(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.signupPatient(t, "一人目", "first@example.com")
	second := env.signupPatient(t, "二人目", "second@example.com")

	sess, err := env.Sessions.Current(ctx)
	if err != nil {
		t.Fatalf("current session: %v", err)
	}
	if sess.UserID != second.User.ID {
		t.Errorf("session belongs to %q, want %q", sess.UserID, second.User.ID)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	env.signupPatient(t, "花子", "hanako@example.com")

	if err := env.Auth.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := env.Auth.Logout(ctx); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if _, err := env.Auth.CurrentUser(ctx); !errors.Is(err, ErrRequiresAuth) {
		t.Fatalf("after logout: got %v, want ErrRequiresAuth", err)
	}
}

func TestUpgradeRole(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	res := env.signupPatient(t, "花子", "hanako@example.com")

	u, err := env.Auth.UpgradeRole(ctx, res.User.ID)
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if u.Role != "clinic" || u.Avatar != "CL" {
		t.Errorf("after upgrade: role=%q avatar=%q", u.Role, u.Avatar)
	}
	// Upgrading twice is a no-op.
	if _, err := env.Auth.UpgradeRole(ctx, res.User.ID); err != nil {
		t.Fatalf("second upgrade: %v", err)
	}
	stored, err := env.Users.GetByID(ctx, res.User.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stored.Role != "clinic" || stored.Avatar != "CL" {
		t.Errorf("stored role=%q avatar=%q", stored.Role, stored.Avatar)
	}
}

func TestSignupRemoteUnconfirmed(t *testing.T) {
	gw := &fakeGateway{
		SignUpFn: func(email, _ string) (remote.Session, error) {
			return remote.Session{UserID: "uid-1"}, nil // no access token yet
		},
	}
	env := newTestEnv(t, gw)

	_, err := env.Auth.Signup(context.Background(), SignupInput{
		Name: "花子", Email: "hanako@example.com", Password: "password1",
	})
	if !errors.Is(err, ErrEmailUnconfirmed) {
		t.Fatalf("got %v, want ErrEmailUnconfirmed", err)
	}
}

func TestSignupAdoptsRemoteIdentity(t *testing.T) {
	gw := &fakeGateway{
		SignUpFn: func(email, _ string) (remote.Session, error) {
			return remote.Session{UserID: "uid-42", AccessToken: "tok"}, nil
		},
	}
	env := newTestEnv(t, gw)

	res, err := env.Auth.Signup(context.Background(), SignupInput{
		Name: "花子", Email: "hanako@example.com", Password: "password1",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if res.User.ID != "uid-42" {
		t.Errorf("account id = %q, want remote identity uid-42", res.User.ID)
	}
}

func TestLoginMigratesLocalAccount(t *testing.T) {
	// The account exists locally but the mirror has never heard of
	// it. Login must register it remotely and sign in again.
	signIns := 0
	gw := &fakeGateway{}
	gw.SignInFn = func(email, _ string) (remote.Session, error) {
		signIns++
		if !gw.called("SignUp") {
			return remote.Session{}, remote.ErrInvalidLogin
		}
		return remote.Session{UserID: "uid-7", AccessToken: "tok"}, nil
	}

	env := newTestEnv(t, nil)
	local := env.signupPatient(t, "花子", "hanako@example.com")

	env.Auth.Remote = gw
	res, err := env.Auth.Login(context.Background(), "hanako@example.com", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !gw.called("SignUp") {
		t.Error("migration never registered the account remotely")
	}
	if signIns != 2 {
		t.Errorf("sign-in attempts = %d, want 2", signIns)
	}
	if res.User.ID != local.User.ID {
		t.Errorf("migration replaced local identity: %q -> %q", local.User.ID, res.User.ID)
	}
}

func TestLoginRejectsBadRemoteCredentials(t *testing.T) {
	gw := &fakeGateway{
		SignInFn: func(string, string) (remote.Session, error) {
			return remote.Session{}, remote.ErrInvalidLogin
		},
	}
	env := newTestEnv(t, gw)

	_, err := env.Auth.Login(context.Background(), "nobody@example.com", "whatever1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginMaterializesForeignIdentity(t *testing.T) {
	// An identity created on another device logs in here for the
	// first time: a local account row must appear.
	gw := &fakeGateway{
		SignInFn: func(string, string) (remote.Session, error) {
			return remote.Session{UserID: "uid-elsewhere", AccessToken: "tok"}, nil
		},
		GetProfileFn: func(id string) (remote.Profile, error) {
			return remote.Profile{ID: id, Email: "taro@example.com", DisplayName: "太郎", Role: "patient", Avatar: "PT"}, nil
		},
	}
	env := newTestEnv(t, gw)

	res, err := env.Auth.Login(context.Background(), "taro@example.com", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.ID != "uid-elsewhere" || res.User.Name != "太郎" {
		t.Errorf("materialized user = %+v", res.User)
	}
	if _, err := env.Users.GetByEmail(context.Background(), "taro@example.com"); err != nil {
		t.Errorf("local account row missing: %v", err)
	}
}

func TestLoginPromotesClinicOwner(t *testing.T) {
	// Local state says this account operates a facility; a remote
	// login must come back with the clinic role.
	env := newTestEnv(t, nil)
	res := env.signupClinic(t, "院長", "owner@example.com")
	if _, err := env.Lifecycle.SaveClinicProfile(context.Background(), res.User.ID, ProfileInput{Name: "テスト医院", Address: "東京都新宿区1-1-1"}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	// Downgrade locally to simulate a stale profile.
	if err := env.Users.UpdateRole(context.Background(), res.User.ID, "patient", "PT"); err != nil {
		t.Fatalf("downgrade: %v", err)
	}

	gw := &fakeGateway{
		SignInFn: func(string, string) (remote.Session, error) {
			return remote.Session{UserID: res.User.ID, AccessToken: "tok"}, nil
		},
		GetProfileFn: func(id string) (remote.Profile, error) {
			return remote.Profile{ID: id, Email: "owner@example.com", DisplayName: "院長", Role: "patient", Avatar: "PT"}, nil
		},
	}
	env.Auth.Remote = gw

	out, err := env.Auth.Login(context.Background(), "owner@example.com", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if out.User.Role != "clinic" {
		t.Errorf("role after login = %q, want clinic", out.User.Role)
	}
}
