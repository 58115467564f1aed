package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type authService struct {
	customerRepo repository.CustomerRepository
	tokens       security.TokenManager
}

func NewAuthService(customerRepo repository.CustomerRepository, tokens security.TokenManager) AuthService {
	return &authService{
		customerRepo: customerRepo,
		tokens:       tokens,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, phone, password, driverLicense string) (*domain.Customer, string, string, error) {
	if _, err := s.customerRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", "", ErrEmailTaken
	} else if !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	customer := &domain.Customer{
		Name:          name,
		Email:         email,
		Phone:         phone,
		PasswordHash:  string(hash),
		Role:          domain.CustomerRoleCustomer,
		DriverLicense: driverLicense,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(customer)
	if err != nil {
		return nil, "", "", err
	}
	return customer, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}
	return s.issueTokens(customer)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}
	customer, err := s.customerRepo.GetByID(ctx, claims.CustomerID)
	if err != nil {
		return "", "", err
	}
	return s.issueTokens(customer)
}

func (s *authService) issueTokens(c *domain.Customer) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(c.ID, c.Email, string(c.Role))
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(c.ID, c.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
