package infrastructure

import (
	"context"
	"time"

	"Finora/internal/domain/report"
	"Finora/internal/domain/user"
	"Finora/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ReportSettingRepository struct {
	DB *gorm.DB
}

var _ report.SettingRepository = (*ReportSettingRepository)(nil)

func NewReportSettingRepository(db *gorm.DB) *ReportSettingRepository {
	return &ReportSettingRepository{DB: db}
}

type reportSettingDB struct {
	Id             string     `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId         string     `gorm:"type:varchar(26);uniqueIndex;not null;column:user_id"`
	Frequency      string     `gorm:"type:varchar(10);not null;column:frequency"`
	IsEnabled      bool       `gorm:"not null;column:is_enabled"`
	LastSentDate   *time.Time `gorm:"column:last_sent_date"`
	NextReportDate time.Time  `gorm:"not null;column:next_report_date"`
	CreatedAt      time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt      time.Time  `gorm:"not null;column:updated_at"`
}

// dueRowDB carrega a configuração vencida e o usuário do join em uma linha.
type dueRowDB struct {
	reportSettingDB
	UserName  string `gorm:"->;column:user_name"`
	UserEmail string `gorm:"->;column:user_email"`
	UserPhone string `gorm:"->;column:user_phone"`
}

func toDomainReportSetting(sdb *reportSettingDB) (*report.ReportSetting, error) {
	id, err := pkg.ParseULID(sdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(sdb.UserId)
	if err != nil {
		return nil, err
	}

	return &report.ReportSetting{
		Id:             id,
		UserId:         uid,
		Frequency:      report.FrequencyType(sdb.Frequency),
		IsEnabled:      sdb.IsEnabled,
		LastSentDate:   sdb.LastSentDate,
		NextReportDate: sdb.NextReportDate,
		CreatedAt:      sdb.CreatedAt,
		UpdatedAt:      sdb.UpdatedAt,
	}, nil
}

func toDBReportSetting(s *report.ReportSetting) *reportSettingDB {
	return &reportSettingDB{
		Id:             s.Id.String(),
		UserId:         s.UserId.String(),
		Frequency:      string(s.Frequency),
		IsEnabled:      s.IsEnabled,
		LastSentDate:   s.LastSentDate,
		NextReportDate: s.NextReportDate,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (r *ReportSettingRepository) Create(ctx context.Context, setting *report.ReportSetting) error {
	sdb := toDBReportSetting(setting)
	return r.DB.WithContext(ctx).Table("report_settings").Create(sdb).Error
}

func (r *ReportSettingRepository) Update(ctx context.Context, setting *report.ReportSetting) error {
	sdb := toDBReportSetting(setting)
	return r.DB.WithContext(ctx).Table("report_settings").
		Where("id = ?", sdb.Id).
		Select("frequency", "is_enabled", "last_sent_date", "next_report_date", "updated_at").
		Updates(sdb).Error
}

func (r *ReportSettingRepository) GetByUserID(ctx context.Context, userID ulid.ULID) (*report.ReportSetting, error) {
	var sdb reportSettingDB
	err := r.DB.WithContext(ctx).Table("report_settings").
		Where("user_id = ?", userID.String()).
		First(&sdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainReportSetting(&sdb)
}

func (r *ReportSettingRepository) FindDue(ctx context.Context, now time.Time) ([]report.DueSetting, error) {
	var rows []dueRowDB
	err := r.DB.WithContext(ctx).Table("report_settings s").
		Select("s.*, u.name as user_name, u.email as user_email, u.phone as user_phone").
		Joins("LEFT JOIN users u ON s.user_id = u.id").
		Where("s.is_enabled = ? AND s.next_report_date <= ?", true, now).
		Order("s.next_report_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]report.DueSetting, 0, len(rows))
	for i := range rows {
		setting, err := toDomainReportSetting(&rows[i].reportSettingDB)
		if err != nil {
			continue
		}

		due := report.DueSetting{Setting: *setting}

		// Usuário ausente no join fica com Id zerado; o job decide pular.
		if rows[i].UserEmail != "" || rows[i].UserName != "" {
			due.User = user.User{
				Id:    setting.UserId,
				Name:  rows[i].UserName,
				Email: rows[i].UserEmail,
				Phone: rows[i].UserPhone,
			}
		}

		out = append(out, due)
	}

	return out, nil
}

func (r *ReportSettingRepository) RecordAndReschedule(ctx context.Context, record *report.ReportRecord, userID ulid.ULID, now time.Time, lastSent *time.Time, next time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rdb := toDBReportRecord(record)
		if err := tx.Table("report_records").Create(rdb).Error; err != nil {
			return err
		}

		result := tx.Table("report_settings").
			Where("user_id = ? AND next_report_date <= ?", userID.String(), now).
			Updates(map[string]interface{}{
				"last_sent_date":   lastSent,
				"next_report_date": next,
				"updated_at":       now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return report.ErrSettingNotDue
		}

		return nil
	})
}

type ReportRecordRepository struct {
	DB *gorm.DB
}

var _ report.RecordRepository = (*ReportRecordRepository)(nil)

func NewReportRecordRepository(db *gorm.DB) *ReportRecordRepository {
	return &ReportRecordRepository{DB: db}
}

type reportRecordDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId    string    `gorm:"type:varchar(26);index;not null;column:user_id"`
	Period    string    `gorm:"type:varchar(60);not null;column:period"`
	SentDate  time.Time `gorm:"not null;column:sent_date"`
	Status    string    `gorm:"type:varchar(15);not null;column:status"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func toDomainReportRecord(rdb *reportRecordDB) (*report.ReportRecord, error) {
	id, err := pkg.ParseULID(rdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(rdb.UserId)
	if err != nil {
		return nil, err
	}

	return &report.ReportRecord{
		Id:        id,
		UserId:    uid,
		Period:    rdb.Period,
		SentDate:  rdb.SentDate,
		Status:    report.ReportStatus(rdb.Status),
		CreatedAt: rdb.CreatedAt,
		UpdatedAt: rdb.UpdatedAt,
	}, nil
}

func toDBReportRecord(rec *report.ReportRecord) *reportRecordDB {
	return &reportRecordDB{
		Id:        rec.Id.String(),
		UserId:    rec.UserId.String(),
		Period:    rec.Period,
		SentDate:  rec.SentDate,
		Status:    string(rec.Status),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func (r *ReportRecordRepository) Create(ctx context.Context, record *report.ReportRecord) error {
	rdb := toDBReportRecord(record)
	return r.DB.WithContext(ctx).Table("report_records").Create(rdb).Error
}

func (r *ReportRecordRepository) GetAllByUser(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*report.ReportRecord, int64, error) {
	query := r.DB.WithContext(ctx).Table("report_records").Where("user_id = ?", userID.String())
	return pkg.Paginate(query, pagination, "sent_date DESC, created_at DESC", toDomainReportRecord)
}
