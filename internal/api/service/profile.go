package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/domain"
)

// ProfileService owns registration and the owner-editable profile
// fields. Status is not among them; that belongs to the status
// authority.
type ProfileService struct {
	store  Store
	logger *slog.Logger
}

// NewProfileService builds a ProfileService.
func NewProfileService(store Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

// RegisterRequest carries a raw registration.
type RegisterRequest struct {
	FullName string
	Email    string
	Phone    string
	Role     string
	Category string
}

// Register creates a profile at the lifecycle entry point for its role,
// with the role's default rating and placeholder bank details.
func (p *ProfileService) Register(ctx context.Context, req RegisterRequest) (*model.Profile, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, domain.NewValidationError("full_name", "must not be empty")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, domain.NewValidationError("email", "must be a valid email address")
	}

	role := domain.Role(req.Role)
	if !domain.IsValidRole(role) {
		return nil, domain.NewValidationError("role", "must be admin, employer or worker")
	}

	rating := domain.DefaultWorkerRating
	if role == domain.RoleEmployer {
		rating = domain.DefaultEmployerRating
	}

	now := time.Now().UTC()
	profile := &model.Profile{
		UserID:            uuid.New().String(),
		FullName:          strings.TrimSpace(req.FullName),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Role:              string(role),
		WorkerStatus:      string(domain.InitialStatus(role)),
		Rating:            rating,
		BankAccountHolder: domain.BankDetailPlaceholder,
		BankAccountNumber: domain.BankDetailPlaceholder,
		BankIFSC:          domain.BankDetailPlaceholder,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if req.Phone != "" {
		profile.Phone = sql.NullString{String: req.Phone, Valid: true}
	}
	if req.Category != "" {
		profile.Category = sql.NullString{String: req.Category, Valid: true}
	}

	if err := p.store.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	p.logger.Info("Profile registered",
		slog.String("user_id", profile.UserID),
		slog.String("role", profile.Role),
		slog.String("status", profile.WorkerStatus),
	)

	return profile, nil
}

// Get fetches one profile.
func (p *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user_id", "must not be empty")
	}
	return p.store.GetProfile(ctx, userID)
}

// UpdateBankDetails replaces the bank fields. Placeholder values are
// rejected so a worker cannot "complete" their details with the
// sentinel.
func (p *ProfileService) UpdateBankDetails(ctx context.Context, userID, holder, account, ifsc string) error {
	for field, value := range map[string]string{
		"bank_account_holder": holder,
		"bank_account_number": account,
		"bank_ifsc":           ifsc,
	} {
		if strings.TrimSpace(value) == "" || value == domain.BankDetailPlaceholder {
			return domain.NewValidationError(field, "must be provided")
		}
	}

	return p.store.UpdateBankDetails(ctx, userID, holder, account, ifsc)
}

// ListWorkers returns the batched worker roster with verification
// counters.
func (p *ProfileService) ListWorkers(ctx context.Context) ([]model.WorkerVerificationRow, error) {
	return p.store.ListWorkerVerification(ctx)
}
