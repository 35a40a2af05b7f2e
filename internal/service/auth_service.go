package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/tagrapport/tagrapport/internal/db"
	"github.com/tagrapport/tagrapport/internal/domain"
	"github.com/tagrapport/tagrapport/internal/store"
)

// AuthService resolves tenant credentials, registers new companies, and
// issues login tokens.
type AuthService struct {
	db          *sql.DB
	companies   *store.CompanyStore
	inspectors  *store.InspectorStore
	users       *store.AuthUserStore
	tokenSecret []byte
	tokenTTL    time.Duration
	logger      *slog.Logger
}

func NewAuthService(database *sql.DB, tokenSecret string, tokenTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		db:          database,
		companies:   store.NewCompanyStore(database),
		inspectors:  store.NewInspectorStore(database),
		users:       store.NewAuthUserStore(database),
		tokenSecret: []byte(tokenSecret),
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// ResolveAPIToken maps an "<companyCode>:<inspectorCode>" credential to an
// Identity. The company segment is the authorization; the inspector segment
// is optional metadata and its absence is non-fatal.
func (s *AuthService) ResolveAPIToken(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	companyCode, inspectorCode, _ := strings.Cut(token, ":")
	if companyCode == "" {
		return nil, domain.ErrUnauthorized
	}

	company, err := s.companies.GetByCode(ctx, companyCode)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	identity := &domain.Identity{Company: company}
	if inspectorCode != "" {
		inspector, err := s.inspectors.GetByCode(ctx, company.ID, inspectorCode)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		identity.Inspector = inspector
	}
	return identity, nil
}

type RegisterInput struct {
	CompanyName string `json:"companyName"`
	CompanyCode string `json:"companyCode"`
	AdminName   string `json:"adminName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type RegisterResult struct {
	CompanyCode string `json:"companyCode"`
	Email       string `json:"email"`
}

// Register bootstraps a tenant: parent group, company, the two default
// departments, a default inspector, and the bcrypt-hashed admin user, all in
// one transaction.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	verr := &domain.ValidationError{}
	if in.CompanyName == "" {
		verr.Add("companyName", "company name is required")
	}
	if in.CompanyCode == "" {
		verr.Add("companyCode", "company code is required")
	}
	if in.AdminName == "" {
		verr.Add("adminName", "admin name is required")
	}
	if in.Email == "" {
		verr.Add("email", "email is required")
	}
	if in.Password == "" {
		verr.Add("password", "password is required")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	if _, err := s.companies.GetByCode(ctx, in.CompanyCode); err == nil {
		return nil, domain.Invalid("companyCode", "company code already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, domain.Invalid("email", "email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var result *RegisterResult
	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		companies := store.NewCompanyStore(tx)
		departments := store.NewDepartmentStore(tx)
		inspectors := store.NewInspectorStore(tx)
		users := store.NewAuthUserStore(tx)

		group, err := companies.CreateParentGroup(ctx, in.CompanyName+" Group", in.CompanyCode)
		if err != nil {
			return err
		}

		company, err := companies.Create(ctx, in.CompanyName, in.CompanyCode, group.ID)
		if err != nil {
			return err
		}

		if _, err := departments.Create(ctx, company.ID, "Residential", "RES"); err != nil {
			return err
		}
		if _, err := departments.Create(ctx, company.ID, "Commercial", "COM"); err != nil {
			return err
		}

		code := fmt.Sprintf("INS-001-%s", in.CompanyCode)
		if _, err := inspectors.Create(ctx, company.ID, in.AdminName, code, in.Email, ""); err != nil {
			return err
		}

		user, err := users.Create(ctx, company.ID, in.Email, string(hash), "admin")
		if err != nil {
			return err
		}

		result = &RegisterResult{CompanyCode: company.Code, Email: user.Email}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("company registered", "company_code", result.CompanyCode)
	return result, nil
}

type tokenClaims struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	CompanyID   string `json:"companyId"`
	CompanyCode string `json:"companyCode"`
	jwt.RegisteredClaims
}

// Login verifies the email/password pair and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	company, err := s.companies.GetByID(ctx, user.CompanyID)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := tokenClaims{
		Email:       user.Email,
		Role:        user.Role,
		CompanyID:   user.CompanyID,
		CompanyCode: company.Code,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokenSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// VerifyLoginToken validates a bearer token and returns the user id it was
// issued for.
func (s *AuthService) VerifyLoginToken(tokenString string) (string, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.tokenSecret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}

// CurrentUser returns the user a login token belongs to, with a company
// summary attached.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.AuthUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	company, err := s.companies.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	user.Company = company
	return user, nil
}
