package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"skyladder/internal/app/ports"
	"skyladder/internal/domain/meta"
)

const (
	CredentialStatusActive = "active"

	registerAttempts = 3
	profileKeyBytes  = 32
	keySaltBytes     = 16
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid profile credentials")
	ErrUnreadableSave     = errors.New("carried-over save is unreadable")
)

// RegisterRequest may carry a save record exported by an offline client.
// It is repaired the same way a stored record is; an empty payload starts
// the profile from defaults.
type RegisterRequest struct {
	CarriedSave []byte
}

type RegisterResponse struct {
	ProfileID   string      `json:"profile_id"`
	ProfileKey  string      `json:"profile_key"`
	IssuedAt    string      `json:"issued_at"`
	Save        meta.Record `json:"save"`
	CarriedOver bool        `json:"carried_over"`
}

type VerifyRequest struct {
	ProfileID  string
	ProfileKey string
}

// RegisterUseCase opens a save slot: a profile id, its secret key and the
// meta-progression record the profile starts with.
type RegisterUseCase struct {
	Credentials ports.ProfileCredentialRepository
	Saves       ports.SaveRepository
	TxManager   ports.TxManager
	Now         func() time.Time
}

type VerifyUseCase struct {
	Credentials ports.ProfileCredentialRepository
}

func (u RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if u.Credentials == nil || u.Saves == nil || u.TxManager == nil {
		return RegisterResponse{}, ErrInvalidRequest
	}
	record, carried, err := startingRecord(req.CarriedSave)
	if err != nil {
		return RegisterResponse{}, err
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	for range registerAttempts {
		slot, err := newSlotKey()
		if err != nil {
			return RegisterResponse{}, err
		}
		err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
			if err := u.Credentials.Create(txCtx, slot.credential(now)); err != nil {
				return err
			}
			return u.Saves.Save(txCtx, slot.profileID, record)
		})
		if errors.Is(err, ports.ErrConflict) {
			continue
		}
		if err != nil {
			return RegisterResponse{}, err
		}
		return RegisterResponse{
			ProfileID:   slot.profileID,
			ProfileKey:  slot.key,
			IssuedAt:    now.Format(time.RFC3339),
			Save:        record,
			CarriedOver: carried,
		}, nil
	}
	return RegisterResponse{}, ports.ErrConflict
}

func startingRecord(raw []byte) (meta.Record, bool, error) {
	if len(raw) == 0 {
		return meta.NewRecord(), false, nil
	}
	record, ok := meta.Decode(raw)
	if !ok {
		return meta.Record{}, false, ErrUnreadableSave
	}
	return record, true, nil
}

func (u VerifyUseCase) Execute(ctx context.Context, req VerifyRequest) error {
	req.ProfileID = strings.TrimSpace(req.ProfileID)
	req.ProfileKey = strings.TrimSpace(req.ProfileKey)
	if req.ProfileID == "" || req.ProfileKey == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}

	cred, err := u.Credentials.GetByProfileID(ctx, req.ProfileID)
	if errors.Is(err, ports.ErrNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if cred.Status != CredentialStatusActive || !keyMatches(cred, req.ProfileKey) {
		return ErrInvalidCredentials
	}
	return nil
}

// slotKey is a freshly minted profile id and the only copy of its secret.
type slotKey struct {
	profileID string
	key       string
	salt      []byte
}

func newSlotKey() (slotKey, error) {
	secret := make([]byte, profileKeyBytes)
	salt := make([]byte, keySaltBytes)
	if _, err := rand.Read(secret); err != nil {
		return slotKey{}, fmt.Errorf("profile key: %w", err)
	}
	if _, err := rand.Read(salt); err != nil {
		return slotKey{}, fmt.Errorf("key salt: %w", err)
	}
	return slotKey{
		profileID: "prf_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		key:       base64.RawURLEncoding.EncodeToString(secret),
		salt:      salt,
	}, nil
}

func (s slotKey) credential(now time.Time) ports.ProfileCredentialRecord {
	return ports.ProfileCredentialRecord{
		ProfileID: s.profileID,
		KeySalt:   s.salt,
		KeyHash:   hashKey(s.salt, s.key),
		Status:    CredentialStatusActive,
		CreatedAt: now,
	}
}

func keyMatches(cred ports.ProfileCredentialRecord, key string) bool {
	return subtle.ConstantTimeCompare(hashKey(cred.KeySalt, key), cred.KeyHash) == 1
}

func hashKey(salt []byte, key string) []byte {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(key))
	return h.Sum(nil)
}
