package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
	"github.com/dmwangi/uchaguzi/internal/pkg/auth"
	"github.com/dmwangi/uchaguzi/internal/pkg/biometrics"
)

type authFixture struct {
	svc        AuthService
	voters     *fakeVoterRepo
	candidates *fakeCandidateRepo
	admins     *fakeAdminRepo
	otps       *fakeOTPRepo
	jwt        *auth.JWTService
	mail       *fakeEmailService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		voters:     newFakeVoterRepo(),
		candidates: newFakeCandidateRepo(),
		admins:     newFakeAdminRepo(),
		otps:       newFakeOTPRepo(),
		jwt:        auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "uchaguzi-test"}),
		mail:       &fakeEmailService{},
	}
	f.svc = NewAuthService(f.voters, f.candidates, f.admins, f.otps, f.jwt, f.mail, zerolog.Nop())
	return f
}

func (f *authFixture) addVoter(t *testing.T, email string, descriptor []float64, status models.AccountStatus) int64 {
	t.Helper()

	id, err := f.voters.Create(context.Background(), &models.Voter{
		FirstName:    "Jane",
		LastName:     "Wanjiku",
		Email:        email,
		Faculty:      "Computing and Information Technology",
		Descriptor:   biometrics.Descriptor(descriptor).Encode(),
		Status:       status,
		VotingStatus: models.NotVoted,
	})
	if err != nil {
		t.Fatalf("seeding voter: %v", err)
	}
	return id
}

func (f *authFixture) addAdmin(t *testing.T, email, password string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if _, err := f.admins.Create(context.Background(), &models.Admin{
		FirstName: "Amina",
		LastName:  "Yusuf",
		Email:     email,
		Password:  hash,
	}); err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
}

func TestAdminLogin(t *testing.T) {
	f := newAuthFixture(t)
	f.addAdmin(t, "admin@uchaguzi.app", "s3cret-admin")

	session, err := f.svc.AdminLogin(context.Background(), &dto.AdminLoginRequest{
		Email:    "admin@uchaguzi.app",
		Password: "s3cret-admin",
	}, "")
	if err != nil {
		t.Fatalf("AdminLogin() error = %v", err)
	}

	if session.Kind != auth.PrincipalAdmin {
		t.Errorf("Kind = %q, want admin", session.Kind)
	}
	want := time.Now().Add(auth.SessionExpiry)
	if session.ExpiresAt.Before(want.Add(-time.Minute)) || session.ExpiresAt.After(want.Add(time.Minute)) {
		t.Errorf("ExpiresAt = %v, want about %v", session.ExpiresAt, want)
	}
	if _, err := f.jwt.ValidateSessionFor(session.Token, auth.PrincipalAdmin); err != nil {
		t.Errorf("issued token does not validate: %v", err)
	}
}

func TestAdminLoginBadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.addAdmin(t, "admin@uchaguzi.app", "s3cret-admin")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@uchaguzi.app", "guess"},
		{"unknown email", "ghost@uchaguzi.app", "s3cret-admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AdminLogin(context.Background(), &dto.AdminLoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}, "")
			if !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Errorf("AdminLogin() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestAdminLoginRejectsActiveSession(t *testing.T) {
	f := newAuthFixture(t)
	f.addAdmin(t, "admin@uchaguzi.app", "s3cret-admin")

	session, err := f.svc.AdminLogin(context.Background(), &dto.AdminLoginRequest{
		Email:    "admin@uchaguzi.app",
		Password: "s3cret-admin",
	}, "")
	if err != nil {
		t.Fatalf("first AdminLogin() error = %v", err)
	}

	_, err = f.svc.AdminLogin(context.Background(), &dto.AdminLoginRequest{
		Email:    "admin@uchaguzi.app",
		Password: "s3cret-admin",
	}, session.Token)
	if !errors.Is(err, apperrors.ErrAlreadyLoggedIn) {
		t.Errorf("second AdminLogin() error = %v, want ErrAlreadyLoggedIn", err)
	}
}

func TestBiometricLogin(t *testing.T) {
	f := newAuthFixture(t)
	descriptor := testDescriptor(1)
	id := f.addVoter(t, "jane@students.example.ke", descriptor, models.StatusActive)

	session, err := f.svc.BiometricLogin(context.Background(), auth.PrincipalVoter, &dto.BiometricLoginRequest{
		Email:      "jane@students.example.ke",
		Descriptor: descriptor,
	}, "")
	if err != nil {
		t.Fatalf("BiometricLogin() error = %v", err)
	}

	if session.Principal.PrincipalID != id {
		t.Errorf("PrincipalID = %d, want %d", session.Principal.PrincipalID, id)
	}
	if session.Kind != auth.PrincipalVoter {
		t.Errorf("Kind = %q, want voter", session.Kind)
	}
}

func TestBiometricLoginMismatch(t *testing.T) {
	f := newAuthFixture(t)
	f.addVoter(t, "jane@students.example.ke", testDescriptor(1), models.StatusActive)

	_, err := f.svc.BiometricLogin(context.Background(), auth.PrincipalVoter, &dto.BiometricLoginRequest{
		Email:      "jane@students.example.ke",
		Descriptor: unrelatedDescriptor(),
	}, "")
	if !errors.Is(err, apperrors.ErrBiometricMismatch) {
		t.Errorf("BiometricLogin() error = %v, want ErrBiometricMismatch", err)
	}
}

func TestBiometricLoginInactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	descriptor := testDescriptor(1)
	f.addVoter(t, "jane@students.example.ke", descriptor, models.StatusInactive)

	_, err := f.svc.BiometricLogin(context.Background(), auth.PrincipalVoter, &dto.BiometricLoginRequest{
		Email:      "jane@students.example.ke",
		Descriptor: descriptor,
	}, "")
	if !errors.Is(err, apperrors.ErrAccountInactive) {
		t.Errorf("BiometricLogin() error = %v, want ErrAccountInactive", err)
	}
}

func TestOTPFlow(t *testing.T) {
	f := newAuthFixture(t)
	f.addVoter(t, "jane@students.example.ke", testDescriptor(1), models.StatusActive)

	if err := f.svc.RequestOTP(context.Background(), auth.PrincipalVoter, &dto.OTPRequest{
		Email: "jane@students.example.ke",
	}); err != nil {
		t.Fatalf("RequestOTP() error = %v", err)
	}
	if len(f.mail.otpCodes) != 1 {
		t.Fatalf("one-time code emails sent = %d, want 1", len(f.mail.otpCodes))
	}
	code := f.mail.otpCodes[0]

	session, err := f.svc.VerifyOTP(context.Background(), auth.PrincipalVoter, &dto.OTPVerifyRequest{
		Email: "jane@students.example.ke",
		Code:  code,
	})
	if err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}

	// One-time code sessions get the short lifetime.
	want := time.Now().Add(auth.OTPSessionExpiry)
	if session.ExpiresAt.Before(want.Add(-time.Minute)) || session.ExpiresAt.After(want.Add(time.Minute)) {
		t.Errorf("ExpiresAt = %v, want about %v", session.ExpiresAt, want)
	}

	// The code is consumed on first use.
	_, err = f.svc.VerifyOTP(context.Background(), auth.PrincipalVoter, &dto.OTPVerifyRequest{
		Email: "jane@students.example.ke",
		Code:  code,
	})
	if !errors.Is(err, apperrors.ErrOTPInvalid) {
		t.Errorf("reused VerifyOTP() error = %v, want ErrOTPInvalid", err)
	}
}

func TestVerifyOTPIsOwnerScoped(t *testing.T) {
	f := newAuthFixture(t)
	f.addVoter(t, "jane@students.example.ke", testDescriptor(1), models.StatusActive)
	f.addVoter(t, "atieno@students.example.ke", unrelatedDescriptor(), models.StatusActive)

	if err := f.svc.RequestOTP(context.Background(), auth.PrincipalVoter, &dto.OTPRequest{
		Email: "jane@students.example.ke",
	}); err != nil {
		t.Fatalf("RequestOTP() error = %v", err)
	}
	code := f.mail.otpCodes[0]

	// Another account cannot spend a code issued to someone else.
	_, err := f.svc.VerifyOTP(context.Background(), auth.PrincipalVoter, &dto.OTPVerifyRequest{
		Email: "atieno@students.example.ke",
		Code:  code,
	})
	if !errors.Is(err, apperrors.ErrOTPInvalid) {
		t.Errorf("VerifyOTP() error = %v, want ErrOTPInvalid", err)
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	f := newAuthFixture(t)
	f.addVoter(t, "jane@students.example.ke", testDescriptor(1), models.StatusActive)

	if err := f.svc.RequestOTP(context.Background(), auth.PrincipalVoter, &dto.OTPRequest{
		Email: "jane@students.example.ke",
	}); err != nil {
		t.Fatalf("RequestOTP() error = %v", err)
	}
	code := f.mail.otpCodes[0]

	for _, row := range f.otps.rows {
		row.ExpiresAt = time.Now().Add(-time.Minute)
	}

	_, err := f.svc.VerifyOTP(context.Background(), auth.PrincipalVoter, &dto.OTPVerifyRequest{
		Email: "jane@students.example.ke",
		Code:  code,
	})
	if !errors.Is(err, apperrors.ErrOTPExpired) {
		t.Errorf("VerifyOTP() error = %v, want ErrOTPExpired", err)
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	f.addVoter(t, "jane@students.example.ke", testDescriptor(1), models.StatusActive)

	if err := f.svc.RequestOTP(context.Background(), auth.PrincipalVoter, &dto.OTPRequest{
		Email: "jane@students.example.ke",
	}); err != nil {
		t.Fatalf("RequestOTP() error = %v", err)
	}

	wrong := "000000"
	if f.mail.otpCodes[0] == wrong {
		wrong = "111111"
	}
	_, err := f.svc.VerifyOTP(context.Background(), auth.PrincipalVoter, &dto.OTPVerifyRequest{
		Email: "jane@students.example.ke",
		Code:  wrong,
	})
	if !errors.Is(err, apperrors.ErrOTPInvalid) {
		t.Errorf("VerifyOTP() error = %v, want ErrOTPInvalid", err)
	}
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)
	descriptor := testDescriptor(1)
	f.addVoter(t, "jane@students.example.ke", descriptor, models.StatusActive)

	session, err := f.svc.BiometricLogin(context.Background(), auth.PrincipalVoter, &dto.BiometricLoginRequest{
		Email:      "jane@students.example.ke",
		Descriptor: descriptor,
	}, "")
	if err != nil {
		t.Fatalf("BiometricLogin() error = %v", err)
	}

	if err := f.svc.Logout(auth.PrincipalVoter, session.Token); err != nil {
		t.Errorf("Logout() error = %v", err)
	}
	if err := f.svc.Logout(auth.PrincipalVoter, ""); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Errorf("Logout(empty) error = %v, want ErrNotLoggedIn", err)
	}
	if err := f.svc.Logout(auth.PrincipalAdmin, session.Token); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Errorf("Logout(wrong kind) error = %v, want ErrNotLoggedIn", err)
	}
}
