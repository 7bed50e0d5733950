package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"pairdiary/db"
	"pairdiary/models"

	"golang.org/x/crypto/argon2"
	"gorm.io/gorm"
)

type AccountService struct{}

func NewAccountService() *AccountService {
	return &AccountService{}
}

// Register creates a user plus their solo pair in one transaction. The
// account_id is regenerated on collision; the caller never sees that retry.
func (s *AccountService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	var taken int64
	err := db.GetReadOnlyDB(ctx).Model(&models.User{}).Where("username = ?", username).Count(&taken).Error
	if err != nil {
		return nil, fmt.Errorf("%w: checking username: %v", ErrInternal, err)
	}
	if taken > 0 {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %v", ErrInternal, err)
	}

	for attempt := 0; attempt < codeRetryLimit; attempt++ {
		user := &models.User{
			Username:     username,
			AccountID:    newAccountID(),
			PasswordHash: hash,
		}
		err = db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			solo := &models.Pair{
				User1ID:    user.ID,
				IsSolo:     true,
				InviteCode: newInviteCode(),
			}
			return tx.Create(solo).Error
		})
		if err == nil {
			return user, nil
		}
		if !isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: creating user: %v", ErrInternal, err)
		}
		// The username was free a moment ago, so a unique violation here is
		// either a registration race on the same name or a code collision.
		var raced int64
		if cerr := db.GetWriteDB(ctx).Model(&models.User{}).Where("username = ?", username).Count(&raced).Error; cerr == nil && raced > 0 {
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
	}
	log.Printf("register: exhausted code generation retries for %q: %v", username, err)
	return nil, fmt.Errorf("%w: could not allocate account id", ErrInternal)
}

// Authenticate returns the user for valid credentials. Every mismatch yields
// the same ErrAuth so callers cannot probe which usernames exist.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAuth
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching user: %v", ErrInternal, err)
	}
	if !verifyPassword(password, user.PasswordHash) {
		return nil, ErrAuth
	}
	return &user, nil
}

func (s *AccountService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching user: %v", ErrInternal, err)
	}
	return &user, nil
}

// hashPassword derives an argon2id hash, encoded as hex "salt$hash".
func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func verifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(got, want) == 1
}
