package service

import (
	"context"
	"media-shop-server/config"
	"media-shop-server/internal/apperror"
	"media-shop-server/internal/model"
	"media-shop-server/internal/ports"
	"media-shop-server/internal/security"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// UserService : регистрация пользователей и управление балансом токенов
type UserService struct {
	userRepository ports.UserRepository
	jwtService     ports.JWTServiceInterface
	jwtRepository  ports.JWTRepositoryInterface
	startBalance   float64
}

func NewUserService(
	userRepository ports.UserRepository,
	jwtService ports.JWTServiceInterface,
	jwtRepository ports.JWTRepositoryInterface,
	startBalance float64,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		jwtService:     jwtService,
		jwtRepository:  jwtRepository,
		startBalance:   startBalance,
	}
}

// Register : создает пользователя и сразу выдает пару токенов
func (s *UserService) Register(ctx context.Context, email string, password string, userAgent string, ipAddress string) (*model.TokensPair, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Internal("[UserService] database connection не найден в context", nil)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepository.FindByEmail(ctx, db, email)
	if err != nil {
		return nil, apperror.Internal("[UserService] ошибка проверки email", err)
	}
	if existing != nil {
		return nil, apperror.BadRequest("пользователь с таким email уже существует")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal("[UserService] не удалось создать хэш пароля", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Tokens:       s.startBalance,
	}

	created, err := s.userRepository.CreateUser(ctx, db, user)
	if err != nil {
		return nil, apperror.Internal("[UserService] ошибка создания пользователя", err)
	}

	tokens, refreshToken, err := s.jwtService.GenerateAccessRefreshTokens(created.UUID)
	if err != nil {
		return nil, apperror.Internal("[UserService] ошибка генерации токенов", err)
	}

	refreshToken.UserAgent = userAgent
	refreshToken.IpAddress = ipAddress

	if err := s.jwtRepository.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, apperror.Internal("[UserService] не удалось сохранить refresh токен", err)
	}

	return tokens, nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return apperror.BadRequest("некорректный email")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return apperror.BadRequest("пароль должен содержать минимум 8 символов")
	}

	var upperCount, lowerCount, digitCount, specialCount int

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upperCount++
		case unicode.IsLower(c):
			lowerCount++
		case unicode.IsDigit(c):
			digitCount++
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			specialCount++
		}
	}

	if upperCount == 0 || lowerCount == 0 {
		return apperror.BadRequest("пароль должен содержать буквы в разных регистрах")
	}
	if digitCount < 1 {
		return apperror.BadRequest("пароль должен содержать хотя бы одну цифру")
	}
	if specialCount < 1 {
		return apperror.BadRequest("пароль должен содержать хотя бы один специальный символ")
	}

	return nil
}

// GetUser : профиль; доступен владельцу и администратору
func (s *UserService) GetUser(ctx context.Context, uuid string) (*model.User, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Internal("[UserService] database connection не найден в context", nil)
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, apperror.Forbidden("пользователь не авторизован")
	}
	if !claims.IsAdmin && claims.UserUUID != uuid {
		return nil, apperror.Forbidden("доступ запрещен")
	}

	user, err := s.userRepository.FindByUUID(ctx, db, uuid)
	if err != nil || user == nil {
		return nil, apperror.NotFound("пользователь не найден")
	}

	return user, nil
}

// GetBalance : текущий баланс токенов
func (s *UserService) GetBalance(ctx context.Context, uuid string) (float64, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return 0, apperror.Internal("[UserService] database connection не найден в context", nil)
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return 0, apperror.Forbidden("пользователь не авторизован")
	}
	if !claims.IsAdmin && claims.UserUUID != uuid {
		return 0, apperror.Forbidden("доступ запрещен")
	}

	balance, err := s.userRepository.GetBalance(ctx, db, uuid)
	if err != nil {
		return 0, apperror.NotFound("пользователь не найден")
	}

	return balance, nil
}

// UpdateBalance : пополнение баланса, только для администратора
func (s *UserService) UpdateBalance(ctx context.Context, uuid string, newBalance float64) (float64, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return 0, apperror.Internal("[UserService] database connection не найден в context", nil)
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil || !claims.IsAdmin {
		return 0, apperror.Forbidden("пополнять баланс может только администратор")
	}

	if newBalance < 0 {
		return 0, apperror.BadRequest("баланс не может быть отрицательным")
	}

	exists, err := s.userRepository.Exists(ctx, db, uuid)
	if err != nil {
		return 0, apperror.Internal("[UserService] ошибка проверки пользователя", err)
	}
	if !exists {
		return 0, apperror.NotFound("пользователь не найден")
	}

	if err := s.userRepository.UpdateBalance(ctx, db, uuid, newBalance); err != nil {
		return 0, apperror.Internal("[UserService] не удалось обновить баланс", err)
	}

	return newBalance, nil
}
