package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/clubstack/backend/internal/model"
	jwtpkg "github.com/clubstack/backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db         *gorm.DB
	jwtSecret  string
	jwtExpire  int
	bcryptCost int
}

func NewAuthService(db *gorm.DB, jwtSecret string, jwtExpire, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{db: db, jwtSecret: jwtSecret, jwtExpire: jwtExpire, bcryptCost: bcryptCost}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	RegNo    int
	Year     string
}

func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// Signup creates an unapproved, non-member account. Admins later accept
// the user into the club.
func (s *AuthService) Signup(in SignupInput) (*model.User, error) {
	if len(strings.TrimSpace(in.Name)) < 2 {
		return nil, fmt.Errorf("40001:name must be at least 2 characters")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("40001:invalid email address")
	}
	if !validPassword(in.Password) {
		return nil, fmt.Errorf("40001:password must be at least 8 characters and include an uppercase letter, a lowercase letter and a number")
	}
	if in.RegNo < 1000 {
		return nil, fmt.Errorf("40001:registration number must be at least 4 digits")
	}

	var count int64
	s.db.Model(&model.User{}).Where("email = ?", in.Email).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("40901:User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("50001:An error occurred during registration")
	}

	user := &model.User{
		Name:         in.Name,
		Username:     strings.SplitN(in.Email, "@", 2)[0],
		Email:        in.Email,
		PasswordHash: string(hash),
		RegNo:        in.RegNo,
		Year:         in.Year,
	}
	if err := s.db.Create(user).Error; err != nil {
		// A concurrent signup can slip past the count; the unique index
		// is the authority, so its violation is still a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("40901:User with this email already exists")
		}
		return nil, fmt.Errorf("50001:An error occurred during registration")
	}
	return user, nil
}

// Login verifies credentials and issues a token. Banned users cannot log in.
func (s *AuthService) Login(email, password string) (*model.User, string, time.Time, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", time.Time{}, fmt.Errorf("40101:Invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", time.Time{}, fmt.Errorf("40101:Invalid email or password")
	}
	if user.IsBanned {
		return nil, "", time.Time{}, fmt.Errorf("40101:Unauthorized")
	}

	token, expireAt, err := jwtpkg.GenerateToken(s.jwtSecret, user.ID, user.IsAdmin, user.IsMember, s.jwtExpire)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("50001:failed to issue token")
	}
	return &user, token, expireAt, nil
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
