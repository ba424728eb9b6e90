package services

import (
	"errors"
	"fmt"

	"github.com/rchoppari/EcomerceProj/internal/models"
	"github.com/rchoppari/EcomerceProj/internal/repositories"
)

// AuthResult is the identity and token returned by login and registration.
type AuthResult struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Token     string
}

// AuthService handles account registration and login.
type AuthService struct {
	accounts    repositories.AccountRepository
	tokens      *TokenService
	credentials CredentialPolicy
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts repositories.AccountRepository, tokens *TokenService, credentials CredentialPolicy) *AuthService {
	return &AuthService{
		accounts:    accounts,
		tokens:      tokens,
		credentials: credentials,
	}
}

// Login authenticates an account by email and password and issues a token.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	account, err := s.accounts.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoSuchAccount
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !s.credentials.Verify(account.Password, password) {
		return nil, ErrBadCredentials
	}
	return s.issue(account)
}

// Register creates a new account and issues a token for it.
func (s *AuthService) Register(firstName, lastName, email, password string) (*AuthResult, error) {
	exists, err := s.accounts.ExistsByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	sealed, err := s.credentials.Seal(password)
	if err != nil {
		return nil, err
	}
	account := &models.Account{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  sealed,
	}
	if err := s.accounts.Create(account); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to register account: %w", err)
	}
	return s.issue(account)
}

func (s *AuthService) issue(account *models.Account) (*AuthResult, error) {
	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		UserID:    account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Token:     token,
	}, nil
}
