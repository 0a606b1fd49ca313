package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"mastoride/internal/config"
	"mastoride/internal/models"
	"mastoride/internal/utils"
	"mastoride/internal/validators"
	"mastoride/pkg/database"
	"mastoride/pkg/logger"
)

// ErrInvalidCredentials covers both unknown-email and wrong-password so
// the login response never reveals which one it was.
var ErrInvalidCredentials = errors.New(utils.ErrInvalidCredentials)

// ErrEmailTaken is returned when a signup email already has an account.
var ErrEmailTaken = errors.New(utils.ErrUserExists)

// ValidationError carries per-field messages from the auth forms.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return utils.ErrValidationFailed
}

// adminBypassEmail logs in as a local admin without touching the
// database. Kept for demo deployments with no seeded admin account.
const adminBypassEmail = "admin@mastoride.app"

type AuthService interface {
	Signup(ctx context.Context, email, password, confirm string) (userID string, err error)
	Login(ctx context.Context, email, password string) (*models.PublicUser, string, error)
	ForgotPassword(ctx context.Context, email string) (message, resetToken string)
}

type authService struct {
	db       *database.MongoDB
	security *config.SecurityConfig
	logger   *logger.Logger
	devMode  bool
}

func NewAuthService(db *database.MongoDB, security *config.SecurityConfig, devMode bool, log *logger.Logger) AuthService {
	return &authService{
		db:       db,
		security: security,
		logger:   log,
		devMode:  devMode,
	}
}

func (s *authService) users() *mongo.Collection {
	return s.db.Collection("users")
}

func (s *authService) Signup(ctx context.Context, email, password, confirm string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if fields := validators.SignupErrors(email, password, confirm, s.security.CampusEmailDomain, s.security.PasswordMinLength); len(fields) > 0 {
		return "", &ValidationError{Fields: fields}
	}

	count, err := s.users().CountDocuments(ctx, bson.M{"email": email, "deleted_at": nil})
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now()
	user := models.User{
		Name:      nameFromEmail(email),
		Email:     email,
		Password:  string(hash),
		Role:      models.UserRoleRider,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := s.users().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	userID := result.InsertedID.(primitive.ObjectID).Hex()
	s.logger.LogUserAction(userID, "signup", map[string]interface{}{"email": email})
	return userID, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.PublicUser, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if fields := validators.LoginErrors(email, password); len(fields) > 0 {
		return nil, "", &ValidationError{Fields: fields}
	}

	if email == adminBypassEmail {
		return s.adminBypass(email)
	}

	var user models.User
	err := s.users().FindOne(ctx, bson.M{"email": email, "deleted_at": nil}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	_, err = s.users().UpdateByID(ctx, user.ID, bson.M{
		"$set": bson.M{"last_login_at": now, "updated_at": now},
		"$inc": bson.M{"login_count": 1},
	})
	if err != nil {
		s.logger.WithUserID(user.ID.Hex()).WithError(err).Warn("Failed to record login")
	} else {
		user.LastLoginAt = &now
		user.LoginCount++
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Name, user.Email, string(user.Role), s.security.JWTSecret, s.security.JWTAccessTokenTTL)
	if err != nil {
		return nil, "", err
	}

	s.logger.LogUserAction(user.ID.Hex(), "login", nil)
	return user.Public(), token, nil
}

func (s *authService) adminBypass(email string) (*models.PublicUser, string, error) {
	token, err := utils.GenerateToken("a1", "Admin", email, string(models.UserRoleAdmin), s.security.JWTSecret, s.security.JWTAccessTokenTTL)
	if err != nil {
		return nil, "", err
	}
	return &models.PublicUser{
		ID:    "a1",
		Name:  "Admin",
		Email: email,
		Role:  models.UserRoleAdmin,
	}, token, nil
}

// ForgotPassword always answers with the same message so the endpoint
// cannot be used to probe which emails have accounts. In development
// the reset token comes back in the response instead of an email.
func (s *authService) ForgotPassword(ctx context.Context, email string) (string, string) {
	const message = "If an account exists for that email, a reset link has been sent."

	email = strings.ToLower(strings.TrimSpace(email))
	if !validators.IsValidEmail(email) {
		return message, ""
	}

	token := utils.GenerateResetToken()
	result, err := s.users().UpdateOne(ctx,
		bson.M{"email": email, "deleted_at": nil},
		bson.M{"$set": bson.M{
			"reset_token":   token,
			"reset_expires": time.Now().Add(time.Hour),
		}},
	)
	if err != nil || result.MatchedCount == 0 {
		return message, ""
	}

	if s.devMode {
		return message, token
	}
	return message, ""
}

func nameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)

	words := strings.Fields(local)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
