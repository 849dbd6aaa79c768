package service

import (
	"context"
	"strings"

	"github.com/koso-app/koso/internal/auth"
	"github.com/koso-app/koso/internal/validation"
	"github.com/sirupsen/logrus"
)

// Authenticator is the remote account service.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	Signup(ctx context.Context, req auth.SignupRequest) (string, error)
}

// SignupInput is the registration form as filled in by the user.
type SignupInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Confirm     string
	AcceptTerms bool
}

type AuthService struct {
	client Authenticator
	log    *logrus.Logger
}

func NewAuthService(client Authenticator, log *logrus.Logger) *AuthService {
	return &AuthService{client: client, log: log}
}

// Login validates the input locally before calling the auth service.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validation.ValidateEmail(email); err != nil {
		return "", err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", err
	}

	msg, err := as.client.Login(ctx, email, password)
	if err != nil {
		as.log.WithError(err).WithField("email", email).Warn("login failed")
		return "", err
	}
	as.log.WithField("email", email).Info("login succeeded")
	return msg, nil
}

func (as *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validation.ValidateEmail(email); err != nil {
		return "", err
	}

	msg, err := as.client.ForgotPassword(ctx, email)
	if err != nil {
		as.log.WithError(err).WithField("email", email).Warn("password reset request failed")
		return "", err
	}
	return msg, nil
}

// Signup checks the registration form and registers the user.
func (as *AuthService) Signup(ctx context.Context, in SignupInput) (string, error) {
	req := auth.SignupRequest{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Password:  in.Password,
	}
	if err := validation.ValidatePersonName("first name", req.FirstName); err != nil {
		return "", err
	}
	if err := validation.ValidatePersonName("last name", req.LastName); err != nil {
		return "", err
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return "", err
	}
	if err := validation.ValidateNewPassword(in.Password, in.Confirm); err != nil {
		return "", err
	}
	if err := validation.ValidateTermsAccepted(in.AcceptTerms); err != nil {
		return "", err
	}

	msg, err := as.client.Signup(ctx, req)
	if err != nil {
		as.log.WithError(err).WithField("email", req.Email).Warn("signup failed")
		return "", err
	}
	as.log.WithField("email", req.Email).Info("signup succeeded")
	return msg, nil
}
