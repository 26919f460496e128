package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/store"
)

const (
	codeTTL      = 10 * time.Minute
	resendWindow = 60 * time.Second
	maxAttempts  = 5
)

// ErrRateLimited signals that a code for this email was issued within the
// resend window.
var ErrRateLimited = errors.New("please wait before requesting another code")

// VerificationService owns the one-time reset-code lifecycle. The throttle
// and attempt counters are read from the store at call time, so both are
// best-effort under concurrent requests.
type VerificationService struct {
	store *store.Store
}

// NewVerificationService constructs a VerificationService.
func NewVerificationService(st *store.Store) *VerificationService {
	return &VerificationService{store: st}
}

// IssueCode creates a fresh 4-digit code for the email, replacing any prior
// codes. Returns ErrRateLimited when the latest code is younger than the
// resend window.
func (v *VerificationService) IssueCode(email string) (string, error) {
	latest, err := v.store.LatestResetCode(email)
	if err != nil {
		return "", err
	}
	if latest != nil && time.Since(latest.CreatedAt) < resendWindow {
		return "", ErrRateLimited
	}

	if err := v.store.DeleteResetCodes(email); err != nil {
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	record := &models.PasswordResetCode{
		Email:        email,
		Code:         code,
		ExpiresAt:    time.Now().Add(codeTTL),
		IsUsed:       false,
		AttemptCount: 0,
	}
	if err := v.store.CreateResetCode(record); err != nil {
		return "", err
	}

	return code, nil
}

// VerifyCode checks a submitted code against the active record for the email.
// Each call burns an attempt whatever the outcome; at the attempt cap the
// record is force-consumed and the code is rejected even when correct.
// A successful verification does NOT consume the code.
func (v *VerificationService) VerifyCode(email, submitted string) (bool, error) {
	record, err := v.store.ActiveResetCode(email)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, nil
	}

	if record.AttemptCount >= maxAttempts {
		now := time.Now()
		record.IsUsed = true
		record.UsedAt = &now
		if err := v.store.SaveResetCode(record); err != nil {
			return false, err
		}
		return false, nil
	}

	matched := record.Code == submitted
	record.AttemptCount++
	if err := v.store.SaveResetCode(record); err != nil {
		return false, err
	}

	return matched, nil
}

// ConsumeCode marks the matching active record as used. No-op when nothing
// matches.
func (v *VerificationService) ConsumeCode(email, code string) error {
	record, err := v.store.ActiveResetCode(email)
	if err != nil {
		return err
	}
	if record == nil || record.Code != code {
		return nil
	}

	now := time.Now()
	record.IsUsed = true
	record.UsedAt = &now
	return v.store.SaveResetCode(record)
}

// PurgeExpired deletes every record past its expiry.
func (v *VerificationService) PurgeExpired() (int64, error) {
	return v.store.DeleteExpiredResetCodes()
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
