package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"quizbank/internal/errs"
	"quizbank/internal/models"
	"quizbank/internal/users/store"
)

// Service implements the user account workflows.
type Service struct {
	store     store.UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewService creates a new user Service.
func NewService(s store.UserStore, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		store:     s,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new account. The email must not be registered yet and
// the stored password is a bcrypt hash.
func (s *Service) Register(ctx context.Context, firstname, lastname, email, password, profileImageURL string) (*models.User, error) {
	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.NewConflict("Already email registered", existing)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := models.NowMillis()
	user := &models.User{
		Firstname:       firstname,
		Lastname:        lastname,
		Email:           email,
		Password:        string(hashed),
		ProfileImageURL: profileImageURL,
		CreatedOn:       now,
		UpdatedOn:       now,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errs.NewNotFound("Email not registered")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errs.NewUnauthorized("Password is invalid")
	}

	return s.generateJWT(user)
}

// Profile returns the account details for the given id, password omitted.
func (s *Service) Profile(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NewValidation("Invalid user id")
	}
	user, err := s.store.ProfileByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewNotFound("User not found")
	}
	return user, nil
}

// EditProfile updates the mutable profile fields. A supplied password is
// re-hashed before storage; the email cannot change.
func (s *Service) EditProfile(ctx context.Context, id string, update models.UserProfileUpdate) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NewValidation("Invalid user id")
	}

	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		hashedStr := string(hashed)
		update.Password = &hashedStr
	}

	user, err := s.store.UpdateProfile(ctx, oid, update)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewNotFound("User not found")
	}
	return user, nil
}

// generateJWT signs an access token carrying the user's id and email.
func (s *Service) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"_id":   user.ID.Hex(),
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
