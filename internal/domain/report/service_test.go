package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Finora/internal/domain/report"
	"Finora/internal/domain/transaction"
	"Finora/internal/domain/user"
	appErrors "Finora/internal/errors"
	"Finora/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakeUserRepository struct {
	createFn     func(ctx context.Context, u *user.User) error
	updateFn     func(ctx context.Context, u *user.User) error
	deleteFn     func(ctx context.Context, id ulid.ULID) error
	getByIDFn    func(ctx context.Context, id ulid.ULID) (*user.User, error)
	getByEmailFn func(ctx context.Context, email string) (*user.User, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return &user.User{Id: id, Name: "Maria", Email: "maria@example.com"}, nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, appErrors.ErrUserNotFound
}

type fakeTransactionSource struct {
	findFn func(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*transaction.Transaction, error)
}

func (f *fakeTransactionSource) FindByUserAndDateRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*transaction.Transaction, error) {
	if f.findFn != nil {
		return f.findFn(ctx, userID, from, to)
	}
	return nil, nil
}

type fakeRecordRepository struct {
	createFn       func(ctx context.Context, record *report.ReportRecord) error
	getAllByUserFn func(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*report.ReportRecord, int64, error)
}

func (f *fakeRecordRepository) Create(ctx context.Context, record *report.ReportRecord) error {
	if f.createFn != nil {
		return f.createFn(ctx, record)
	}
	return nil
}

func (f *fakeRecordRepository) GetAllByUser(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*report.ReportRecord, int64, error) {
	if f.getAllByUserFn != nil {
		return f.getAllByUserFn(ctx, userID, pagination)
	}
	return []*report.ReportRecord{}, 0, nil
}

type fakeInsightGenerator struct {
	generateFn func(ctx context.Context, period string, summary report.Summary) ([]string, error)
}

func (f *fakeInsightGenerator) GenerateInsights(ctx context.Context, period string, summary report.Summary) ([]string, error) {
	if f.generateFn != nil {
		return f.generateFn(ctx, period, summary)
	}
	return []string{}, nil
}

func newReportService(source report.TransactionSource, records report.RecordRepository, insights report.InsightGenerator) *report.Service {
	return report.NewService(
		source,
		records,
		&user.Service{Repository: &fakeUserRepository{}},
		insights,
		report.DefaultTopCategories,
	)
}

func makeTransaction(userID ulid.ULID, txType transaction.Types, category string, amount float64) *transaction.Transaction {
	return &transaction.Transaction{
		Id:       ulid.Make(),
		UserId:   userID,
		Type:     txType,
		Category: category,
		Amount:   amount,
		Date:     time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateReportErrors(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name        string
		userRepo    *fakeUserRepository
		source      *fakeTransactionSource
		from        time.Time
		to          time.Time
		wantErrCode string
	}{
		{
			name: "user not found",
			userRepo: &fakeUserRepository{
				getByIDFn: func(ctx context.Context, id ulid.ULID) (*user.User, error) {
					return nil, appErrors.ErrUserNotFound
				},
			},
			source:      &fakeTransactionSource{},
			from:        from,
			to:          to,
			wantErrCode: "USER_NOT_FOUND",
		},
		{
			name:        "end before start",
			userRepo:    &fakeUserRepository{},
			source:      &fakeTransactionSource{},
			from:        to,
			to:          from,
			wantErrCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := report.NewService(
				tt.source,
				&fakeRecordRepository{},
				&user.Service{Repository: tt.userRepo},
				&fakeInsightGenerator{},
				report.DefaultTopCategories,
			)

			_, err := svc.GenerateReport(context.Background(), userID, tt.from, tt.to)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			appErr, ok := appErrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != tt.wantErrCode {
				t.Fatalf("expected error code %s, got %s", tt.wantErrCode, appErr.Code)
			}
		})
	}
}

func TestGenerateReportNoActivity(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	svc := newReportService(&fakeTransactionSource{}, &fakeRecordRepository{}, &fakeInsightGenerator{})

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)

	rpt, err := svc.GenerateReport(context.Background(), userID, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rpt != nil {
		t.Fatalf("expected nil report without transactions, got %+v", rpt)
	}
}

func TestGenerateReportSummary(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	source := &fakeTransactionSource{
		findFn: func(ctx context.Context, id ulid.ULID, from, to time.Time) ([]*transaction.Transaction, error) {
			return []*transaction.Transaction{
				makeTransaction(userID, transaction.Income, "Salary", 10000),
				makeTransaction(userID, transaction.Expense, "Rent", 3000),
				makeTransaction(userID, transaction.Expense, "Groceries", 1500),
				makeTransaction(userID, transaction.Expense, "Groceries", 500),
				makeTransaction(userID, transaction.Expense, "Transport", 500),
			}, nil
		},
	}

	insights := &fakeInsightGenerator{
		generateFn: func(ctx context.Context, period string, summary report.Summary) ([]string, error) {
			return []string{"Gastos com moradia dominam o mês"}, nil
		},
	}

	svc := newReportService(source, &fakeRecordRepository{}, insights)

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)

	rpt, err := svc.GenerateReport(context.Background(), userID, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rpt == nil {
		t.Fatal("expected report, got nil")
	}

	if rpt.Period != "June 1–30, 2025" {
		t.Errorf("expected period %q, got %q", "June 1–30, 2025", rpt.Period)
	}
	if rpt.Summary.Income != 10000 {
		t.Errorf("expected income 10000, got %v", rpt.Summary.Income)
	}
	if rpt.Summary.Expenses != 5500 {
		t.Errorf("expected expenses 5500, got %v", rpt.Summary.Expenses)
	}
	if rpt.Summary.Balance != 4500 {
		t.Errorf("expected balance 4500, got %v", rpt.Summary.Balance)
	}
	if rpt.Summary.SavingsRate != 45 {
		t.Errorf("expected savings rate 45, got %v", rpt.Summary.SavingsRate)
	}

	wantCategories := []report.CategoryAmount{
		{Name: "Rent", Amount: 3000},
		{Name: "Groceries", Amount: 2000},
		{Name: "Transport", Amount: 500},
	}
	if len(rpt.Summary.TopCategories) != len(wantCategories) {
		t.Fatalf("expected %d categories, got %d", len(wantCategories), len(rpt.Summary.TopCategories))
	}
	for i, want := range wantCategories {
		got := rpt.Summary.TopCategories[i]
		if got.Name != want.Name || got.Amount != want.Amount {
			t.Errorf("category %d: expected %s=%v, got %s=%v", i, want.Name, want.Amount, got.Name, got.Amount)
		}
	}

	rentPercent := rpt.Summary.TopCategories[0].Percent
	if rentPercent < 54.5 || rentPercent > 54.6 {
		t.Errorf("expected rent percent ~54.5, got %v", rentPercent)
	}

	if len(rpt.Insights) != 1 || rpt.Insights[0] != "Gastos com moradia dominam o mês" {
		t.Errorf("unexpected insights: %v", rpt.Insights)
	}
}

func TestGenerateReportSavingsRateWithoutIncome(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	source := &fakeTransactionSource{
		findFn: func(ctx context.Context, id ulid.ULID, from, to time.Time) ([]*transaction.Transaction, error) {
			return []*transaction.Transaction{
				makeTransaction(userID, transaction.Expense, "Rent", 2000),
			}, nil
		},
	}

	svc := newReportService(source, &fakeRecordRepository{}, &fakeInsightGenerator{})

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)

	rpt, err := svc.GenerateReport(context.Background(), userID, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rpt.Summary.SavingsRate != 0 {
		t.Errorf("expected savings rate 0 without income, got %v", rpt.Summary.SavingsRate)
	}
	if rpt.Summary.Balance != -2000 {
		t.Errorf("expected balance -2000, got %v", rpt.Summary.Balance)
	}
}

func TestGenerateReportLimitsTopCategories(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	source := &fakeTransactionSource{
		findFn: func(ctx context.Context, id ulid.ULID, from, to time.Time) ([]*transaction.Transaction, error) {
			return []*transaction.Transaction{
				makeTransaction(userID, transaction.Expense, "A", 700),
				makeTransaction(userID, transaction.Expense, "B", 600),
				makeTransaction(userID, transaction.Expense, "C", 500),
				makeTransaction(userID, transaction.Expense, "D", 400),
				makeTransaction(userID, transaction.Expense, "E", 300),
				makeTransaction(userID, transaction.Expense, "F", 200),
				makeTransaction(userID, transaction.Expense, "G", 100),
			}, nil
		},
	}

	svc := newReportService(source, &fakeRecordRepository{}, &fakeInsightGenerator{})

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)

	rpt, err := svc.GenerateReport(context.Background(), userID, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rpt.Summary.TopCategories) != report.DefaultTopCategories {
		t.Fatalf("expected %d categories, got %d", report.DefaultTopCategories, len(rpt.Summary.TopCategories))
	}
	if rpt.Summary.TopCategories[0].Name != "A" || rpt.Summary.TopCategories[4].Name != "E" {
		t.Errorf("unexpected ranking: %v", rpt.Summary.TopCategories)
	}
}

func TestGenerateReportInsightFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	source := &fakeTransactionSource{
		findFn: func(ctx context.Context, id ulid.ULID, from, to time.Time) ([]*transaction.Transaction, error) {
			return []*transaction.Transaction{
				makeTransaction(userID, transaction.Income, "Salary", 5000),
			}, nil
		},
	}

	insights := &fakeInsightGenerator{
		generateFn: func(ctx context.Context, period string, summary report.Summary) ([]string, error) {
			return nil, errors.New("modelo indisponível")
		},
	}

	svc := newReportService(source, &fakeRecordRepository{}, insights)

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)

	rpt, err := svc.GenerateReport(context.Background(), userID, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rpt == nil {
		t.Fatal("expected report, got nil")
	}
	if rpt.Insights == nil || len(rpt.Insights) != 0 {
		t.Errorf("expected empty insights, got %v", rpt.Insights)
	}
}

func TestGetHistory(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	records := &fakeRecordRepository{
		getAllByUserFn: func(ctx context.Context, id ulid.ULID, pagination *pkg.PaginationParams) ([]*report.ReportRecord, int64, error) {
			return []*report.ReportRecord{
				{Id: ulid.Make(), UserId: id, Period: "June 1–30, 2025", Status: report.StatusSent},
			}, 1, nil
		},
	}

	svc := newReportService(&fakeTransactionSource{}, records, &fakeInsightGenerator{})

	got, total, err := svc.GetHistory(context.Background(), userID, &pkg.PaginationParams{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(got) != 1 {
		t.Fatalf("expected 1 record, got %d (total %d)", len(got), total)
	}
	if got[0].Status != report.StatusSent {
		t.Errorf("expected status SENT, got %s", got[0].Status)
	}
}

func TestGetHistoryUserNotFound(t *testing.T) {
	t.Parallel()

	svc := report.NewService(
		&fakeTransactionSource{},
		&fakeRecordRepository{},
		&user.Service{Repository: &fakeUserRepository{
			getByIDFn: func(ctx context.Context, id ulid.ULID) (*user.User, error) {
				return nil, appErrors.ErrUserNotFound
			},
		}},
		&fakeInsightGenerator{},
		report.DefaultTopCategories,
	)

	_, _, err := svc.GetHistory(context.Background(), ulid.Make(), nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "USER_NOT_FOUND" {
		t.Fatalf("expected USER_NOT_FOUND, got %v", err)
	}
}
