package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/iliyamo/clinic-review-platform/internal/model"
	"github.com/iliyamo/clinic-review-platform/internal/remote"
	"github.com/iliyamo/clinic-review-platform/internal/repository"
	"github.com/iliyamo/clinic-review-platform/internal/utils"
)

// AuthService owns identity: registration, login, logout, the single
// device session and role upgrades. When a remote gateway is
// configured the service keeps the hosted account in step with the
// local one and migrates local-only accounts upward on their first
// remote login.
type AuthService struct {
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
	Clinics  *repository.ClinicRepo
	Audit    *Auditor
	Remote   remote.Gateway // nil runs local-only
	Sync     *SyncService   // optional post-login state pull

	JWTSecret    string
	AccessTTLMin int
	BcryptCost   int
}

// SignupInput carries the registration form.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult is the outcome of a successful signup or login.
type AuthResult struct {
	User  model.User
	Token utils.AccessToken
}

// Signup validates the form, registers the account (remotely first
// when mirroring is on, so the remote identity becomes the account
// id) and signs the user in.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := in.Role
	if role != model.RoleClinic {
		role = model.RolePatient
	}
	if name == "" {
		return AuthResult{}, invalid("お名前を入力してください")
	}
	if !strings.Contains(email, "@") {
		return AuthResult{}, invalid("正しいメールアドレスを入力してください")
	}
	if len(in.Password) < 6 {
		return AuthResult{}, invalid("パスワードは6文字以上にしてください")
	}

	id := utils.NewID("u")
	if s.Remote != nil {
		sess, err := s.Remote.SignUp(ctx, email, in.Password)
		if err != nil {
			return AuthResult{}, err
		}
		if sess.UserID != "" {
			id = sess.UserID
		}
		if sess.AccessToken == "" {
			// Account exists remotely but cannot be used until the
			// confirmation mail is opened.
			return AuthResult{}, ErrEmailUnconfirmed
		}
		if err := s.Remote.UpsertProfile(ctx, remote.Profile{
			ID: id, Email: email, DisplayName: name, Role: role, Avatar: avatarForRole(role),
		}); err != nil {
			log.Printf("auth: remote profile mirror failed: %v", err)
		}
	}

	u, err := s.Users.Create(ctx, id, name, email, in.Password, role, avatarForRole(role), s.BcryptCost)
	if err != nil {
		return AuthResult{}, err
	}
	res, err := s.establishSession(ctx, u)
	if err != nil {
		return AuthResult{}, err
	}
	s.Audit.Record(ctx, u.ID, "signup", map[string]any{"role": role})
	return res, nil
}

// Login authenticates against the local store, or against the remote
// service when mirroring is on. A local-only account whose
// credentials check out locally but are unknown remotely is migrated:
// registered remotely and signed in again in the same call.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	local, lookupErr := s.Users.GetByEmail(ctx, email)
	haveLocal := lookupErr == nil
	if lookupErr != nil && !errors.Is(lookupErr, sql.ErrNoRows) {
		return AuthResult{}, lookupErr
	}

	if s.Remote == nil {
		if !haveLocal {
			return AuthResult{}, ErrUserNotFound
		}
		if !utils.VerifyPassword(local.PasswordHash, password) {
			return AuthResult{}, ErrInvalidCredentials
		}
		res, err := s.establishSession(ctx, local)
		if err != nil {
			return AuthResult{}, err
		}
		s.Audit.Record(ctx, local.ID, "login", nil)
		return res, nil
	}

	sess, err := s.Remote.SignIn(ctx, email, password)
	if err != nil {
		if !errors.Is(err, remote.ErrInvalidLogin) || !haveLocal || !utils.VerifyPassword(local.PasswordHash, password) {
			if errors.Is(err, remote.ErrInvalidLogin) {
				return AuthResult{}, ErrInvalidCredentials
			}
			return AuthResult{}, err
		}
		// The account predates the remote mirror. Register it there
		// with the same credentials, then sign in again.
		if _, upErr := s.Remote.SignUp(ctx, email, password); upErr != nil && !strings.Contains(strings.ToLower(upErr.Error()), "already") {
			return AuthResult{}, upErr
		}
		sess, err = s.Remote.SignIn(ctx, email, password)
		if err != nil {
			if errors.Is(err, remote.ErrInvalidLogin) {
				return AuthResult{}, ErrInvalidCredentials
			}
			return AuthResult{}, err
		}
	}

	u, err := s.reconcileRemoteLogin(ctx, sess, local, haveLocal, email, password)
	if err != nil {
		return AuthResult{}, err
	}
	res, err := s.establishSession(ctx, u)
	if err != nil {
		return AuthResult{}, err
	}
	if s.Sync != nil {
		if err := s.Sync.FromRemote(ctx); err != nil {
			log.Printf("auth: post-login sync failed: %v", err)
		}
	}
	s.Audit.Record(ctx, u.ID, "login", nil)
	return res, nil
}

// reconcileRemoteLogin makes sure a remote profile exists, promotes
// the role to clinic when local state says so, and materializes a
// local account row for identities created on another device.
func (s *AuthService) reconcileRemoteLogin(ctx context.Context, sess remote.Session, local model.User, haveLocal bool, email, password string) (model.User, error) {
	profile, err := s.Remote.GetProfile(ctx, sess.UserID)
	if err != nil {
		name := email
		if i := strings.Index(email, "@"); i > 0 {
			name = email[:i]
		}
		role := model.RolePatient
		if haveLocal {
			name, role = local.Name, local.Role
		}
		profile = remote.Profile{ID: sess.UserID, Email: email, DisplayName: name, Role: role, Avatar: avatarForRole(role)}
		if err := s.Remote.UpsertProfile(ctx, profile); err != nil {
			log.Printf("auth: remote profile create failed: %v", err)
		}
	}

	desired := profile.Role
	ownerID := sess.UserID
	if haveLocal {
		ownerID = local.ID
	}
	if _, err := s.Clinics.GetByOwner(ctx, ownerID); err == nil {
		desired = model.RoleClinic
	} else if haveLocal && local.Role == model.RoleClinic {
		desired = model.RoleClinic
	}
	if desired != profile.Role {
		profile.Role = desired
		profile.Avatar = avatarForRole(desired)
		if err := s.Remote.UpsertProfile(ctx, profile); err != nil {
			log.Printf("auth: remote role promote failed: %v", err)
		}
	}

	if haveLocal {
		if local.Role != desired {
			if err := s.Users.UpdateRole(ctx, local.ID, desired, avatarForRole(desired)); err != nil {
				return model.User{}, err
			}
			local.Role = desired
			local.Avatar = avatarForRole(desired)
		}
		return local, nil
	}
	// First login on this device for an identity that lives remotely.
	return s.Users.Create(ctx, sess.UserID, profile.DisplayName, email, password, desired, avatarForRole(desired), s.BcryptCost)
}

// Logout clears the device session. Signing out while already signed
// out succeeds quietly.
func (s *AuthService) Logout(ctx context.Context) error {
	sess, err := s.Sessions.Current(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if err := s.Sessions.Clear(ctx); err != nil {
		return err
	}
	if s.Remote != nil {
		if err := s.Remote.SignOut(ctx); err != nil {
			log.Printf("auth: remote sign-out failed: %v", err)
		}
	}
	if sess.UserID != "" {
		s.Audit.Record(ctx, sess.UserID, "logout", nil)
	}
	return nil
}

// CurrentUser resolves the account owning the device session.
func (s *AuthService) CurrentUser(ctx context.Context) (model.User, error) {
	sess, err := s.Sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrRequiresAuth
		}
		return model.User{}, err
	}
	return s.Users.GetByID(ctx, sess.UserID)
}

// UpgradeRole switches a patient account to a clinic account so it
// can register a facility. Upgrading an account that is already a
// clinic is a no-op.
func (s *AuthService) UpgradeRole(ctx context.Context, userID string) (model.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	if u.Role == model.RoleClinic {
		return u, nil
	}
	if err := s.Users.UpdateRole(ctx, userID, model.RoleClinic, avatarForRole(model.RoleClinic)); err != nil {
		return model.User{}, err
	}
	u.Role = model.RoleClinic
	u.Avatar = avatarForRole(model.RoleClinic)
	if s.Remote != nil {
		if err := s.Remote.UpsertProfile(ctx, remote.Profile{
			ID: u.ID, Email: u.Email, DisplayName: u.Name, Role: u.Role, Avatar: u.Avatar,
		}); err != nil {
			log.Printf("auth: remote role upgrade mirror failed: %v", err)
		}
	}
	s.Audit.Record(ctx, userID, "role_upgrade_clinic", nil)
	return u, nil
}

// establishSession issues an access token and installs it as the one
// device session, displacing whoever was signed in before.
func (s *AuthService) establishSession(ctx context.Context, u model.User) (AuthResult, error) {
	tok, err := utils.NewAccessToken(s.JWTSecret, u.ID, u.Role, s.AccessTTLMin)
	if err != nil {
		return AuthResult{}, err
	}
	if err := s.Sessions.Replace(ctx, u.ID, utils.HashTokenRaw(tok.Token)); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: tok}, nil
}

// avatarForRole picks the two-letter badge shown on the account menu.
func avatarForRole(role string) string {
	if role == model.RoleClinic {
		return "CL"
	}
	return "PT"
}
