package report

import (
	"context"
	"errors"
	"time"

	appErrors "Finora/internal/errors"
	"Finora/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type SettingService struct {
	Repository SettingRepository
}

func NewSettingService(repo SettingRepository) *SettingService {
	return &SettingService{Repository: repo}
}

// CreateDefault provisiona a configuração mensal habilitada do usuário no
// cadastro. Já existir uma não é erro.
func (s *SettingService) CreateDefault(ctx context.Context, userID ulid.ULID) error {
	if _, err := s.Repository.GetByUserID(ctx, userID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return appErrors.NewDatabaseError(err)
	}

	now := time.Now()
	setting := &ReportSetting{
		Id:             pkg.GenerateULIDObject(),
		UserId:         userID,
		Frequency:      Monthly,
		IsEnabled:      true,
		NextReportDate: NextReportDate(Monthly, now),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repository.Create(ctx, setting); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *SettingService) GetByUserID(ctx context.Context, userID ulid.ULID) (*ReportSetting, error) {
	setting, err := s.Repository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrReportSettingNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return setting, nil
}

// UpdateSetting altera frequência e/ou habilitação. Mudar a frequência
// recalcula NextReportDate a partir de agora na nova cadência.
func (s *SettingService) UpdateSetting(ctx context.Context, userID ulid.ULID, frequency *FrequencyType, isEnabled *bool) (*ReportSetting, error) {
	setting, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if frequency != nil && *frequency != setting.Frequency {
		if !frequency.IsValid() {
			return nil, appErrors.NewValidationError("frequency", "deve ser DAILY, WEEKLY, MONTHLY ou YEARLY")
		}
		setting.Frequency = *frequency
		setting.NextReportDate = NextReportDate(*frequency, time.Now())
	}

	if isEnabled != nil {
		setting.IsEnabled = *isEnabled
	}

	setting.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, setting); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return setting, nil
}
