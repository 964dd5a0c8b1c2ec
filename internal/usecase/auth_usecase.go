package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"
	"telehealth-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrInvalidToken              = errors.New("invalid or expired token")
	ErrTokenRevoked              = errors.New("token has been revoked")
	ErrUserNotFound              = errors.New("user not found")
	ErrUserInactive              = errors.New("user account is deactivated")
	ErrInvalidRole               = errors.New("invalid role")
	ErrRegistrationNumberExists  = errors.New("registration number already exists")
	ErrInvalidDateFormat         = errors.New("invalid date format, use YYYY-MM-DD")
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error)
	RegisterStaff(ctx context.Context, req *dto.RegisterStaffRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
	jwtService         *jwt.JWTService
	redisClient        *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
		jwtService:         jwtService,
		redisClient:        redisClient,
	}
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Parse date of birth
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	user, err := u.createUser(tx, req.Email, req.Password, req.FullName, entity.RolePatient)
	if err != nil {
		return nil, err
	}

	patientProfile := &entity.PatientProfile{
		UserID:      user.ID,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Address:     req.Address,
	}

	if err := u.patientProfileRepo.Create(tx, patientProfile); err != nil {
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, &user.ID, entity.AuditActionUserRegister, entity.JSON{
		"role": string(entity.RolePatient),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.createUser(tx, req.Email, req.Password, req.FullName, entity.RoleDoctor)
	if err != nil {
		return nil, err
	}

	doctorProfile := &entity.DoctorProfile{
		UserID:             user.ID,
		RegistrationNumber: req.RegistrationNumber,
		Specialization:     req.Specialization,
		Biography:          req.Biography,
	}

	if err := u.doctorProfileRepo.Create(tx, doctorProfile); err != nil {
		if isDuplicateKeyError(err, "registration_number") {
			return nil, ErrRegistrationNumberExists
		}
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, &user.ID, entity.AuditActionUserRegister, entity.JSON{
		"role": string(entity.RoleDoctor),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// RegisterStaff creates an operational account (admin, lab, phlebotomist,
// pharmacy, delivery). Only admins may call this through the router.
func (u *authUsecase) RegisterStaff(ctx context.Context, req *dto.RegisterStaffRequest) (*dto.UserResponse, error) {
	role := entity.Role(req.Role)
	if !role.Valid() || role == entity.RolePatient || role == entity.RoleDoctor {
		return nil, ErrInvalidRole
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.createUser(tx, req.Email, req.Password, req.FullName, role)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, &user.ID, entity.AuditActionUserRegister, entity.JSON{
		"role": string(role),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) createUser(tx *gorm.DB, email, password, fullName string, role entity.Role) (*entity.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	active := true
	user := &entity.User{
		Email:    email,
		Password: string(hashedPassword),
		FullName: fullName,
		Role:     role,
		IsActive: &active,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// Read-only, no transaction needed
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	// Best effort, a failed audit write must not block the login
	_ = u.auditService.LogAction(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, nil)

	return tokens, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error {
	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	// Refresh tokens for the user are revoked wholesale. A logout means the
	// session is over, not just the current access token. SCAN walks the
	// keyspace incrementally so a logout never blocks the server.
	refreshPattern := fmt.Sprintf("refresh_token:%s:*", userID.String())
	var refreshKeys []string
	iter := u.redisClient.Scan(ctx, 0, refreshPattern, 100).Iterator()
	for iter.Next(ctx) {
		refreshKeys = append(refreshKeys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		u.log.Warnf("Failed to scan refresh token keys: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete refresh tokens: %+v", err)
			return err
		}
	}

	_ = u.auditService.LogAction(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionUserLogout, nil)

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is single use
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	// The role in the claims may be stale if the account was deactivated,
	// so re-read the user before minting new tokens.
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrUserInactive
	}

	return u.issueTokens(ctx, user.ID, user.Email, user.Role)
}

func (u *authUsecase) issueTokens(ctx context.Context, userID uuid.UUID, email string, role entity.Role) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", userID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
