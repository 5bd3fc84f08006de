package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"lyro/internal/model"
	"lyro/internal/repository"
)

var (
	ErrVoucherNotFound  = errors.New("voucher not found")
	ErrVoucherNotActive = errors.New("voucher is not active")
	ErrCodeGeneration   = errors.New("failed to generate voucher batch")
)

const (
	codeBytes        = 4 // 8 uppercase hex chars
	maxBatchAttempts = 5
	defaultQuantity  = 1
	defaultDuration  = 1 // months
)

// VoucherService handles access voucher generation and redemption
type VoucherService struct {
	voucherRepo repository.VoucherRepo
	logger      *zap.Logger
}

// NewVoucherService creates a new voucher service
func NewVoucherService(voucherRepo repository.VoucherRepo, logger *zap.Logger) *VoucherService {
	return &VoucherService{
		voucherRepo: voucherRepo,
		logger:      logger,
	}
}

// Generate creates a batch of vouchers with freshly generated codes.
// Quantity falls back to 1 and duration to 1 month when out of range. The
// batch does not check stored codes up front; the unique index on code is
// the safety net, and a duplicate key error regenerates the whole batch.
func (s *VoucherService) Generate(ctx context.Context, quantity, durationMonths int, generatedBy string) ([]*model.Voucher, error) {
	if quantity < 1 {
		quantity = defaultQuantity
	}
	if !model.ValidDuration(durationMonths) {
		durationMonths = defaultDuration
	}

	for attempts := 0; attempts < maxBatchAttempts; attempts++ {
		batch := make([]*model.Voucher, quantity)
		for i := range batch {
			code, err := generateCode()
			if err != nil {
				return nil, err
			}
			batch[i] = &model.Voucher{
				Code:           code,
				DurationMonths: durationMonths,
				Status:         model.VoucherActive,
				GeneratedBy:    generatedBy,
			}
		}

		err := s.voucherRepo.CreateBatch(ctx, batch)
		if err == nil {
			return batch, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to create vouchers: %w", err)
		}
		s.logger.Warn("voucher code collision, regenerating batch", zap.Int("attempt", attempts+1))
	}

	return nil, ErrCodeGeneration
}

// Redeem marks an active voucher as used by the given user
func (s *VoucherService) Redeem(ctx context.Context, code, userID string) (*model.Voucher, error) {
	voucher, err := s.voucherRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, ErrVoucherNotFound
	}
	if voucher.Status != model.VoucherActive {
		return nil, ErrVoucherNotActive
	}

	now := time.Now()
	if err := s.voucherRepo.MarkUsed(ctx, code, userID, now); err != nil {
		return nil, fmt.Errorf("failed to redeem voucher: %w", err)
	}

	voucher.Status = model.VoucherUsed
	voucher.UsedBy = userID
	voucher.UsedAt = &now
	return voucher, nil
}

// List returns all vouchers for the admin console
func (s *VoucherService) List(ctx context.Context) ([]*model.Voucher, error) {
	return s.voucherRepo.GetAll(ctx)
}

// generateCode derives an 8-char uppercase hex code from 4 random bytes
func generateCode() (string, error) {
	b := make([]byte, codeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
