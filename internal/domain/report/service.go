package report

import (
	"context"
	"sort"
	"time"

	"Finora/internal/domain/transaction"
	"Finora/internal/domain/user"
	appErrors "Finora/internal/errors"
	"Finora/internal/logger"
	"Finora/internal/pkg"

	"github.com/oklog/ulid/v2"
)

const DefaultTopCategories = 5

type Service struct {
	Transactions  TransactionSource
	Records       RecordRepository
	UserService   *user.Service
	Insights      InsightGenerator
	TopCategories int
}

func NewService(transactions TransactionSource, records RecordRepository, userSvc *user.Service, insights InsightGenerator, topCategories int) *Service {
	if topCategories <= 0 {
		topCategories = DefaultTopCategories
	}
	return &Service{
		Transactions:  transactions,
		Records:       records,
		UserService:   userSvc,
		Insights:      insights,
		TopCategories: topCategories,
	}
}

// GetHistory lista o histórico de envios do usuário, mais recentes primeiro.
func (s *Service) GetHistory(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ReportRecord, int64, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	records, total, err := s.Records.GetAllByUser(ctx, userID, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return records, total, nil
}

// GenerateReport agrega as transações do usuário no intervalo. Sem nenhuma
// transação devolve (nil, nil): mês sem atividade não é erro.
func (s *Service) GenerateReport(ctx context.Context, userID ulid.ULID, from, to time.Time) (*Report, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	if to.Before(from) {
		return nil, appErrors.NewValidationError("date", "data final deve ser posterior a data inicial")
	}

	transactions, err := s.Transactions.FindByUserAndDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	if len(transactions) == 0 {
		return nil, nil
	}

	summary := summarize(transactions, s.TopCategories)
	period := PeriodLabel(from, to)

	report := &Report{
		Period:   period,
		Summary:  summary,
		Insights: []string{},
	}

	if s.Insights != nil {
		insights, err := s.Insights.GenerateInsights(ctx, period, summary)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("user_id", userID.String()).
				Msg("falha ao gerar insights, relatório segue sem eles")
		} else {
			report.Insights = insights
		}
	}

	return report, nil
}

func summarize(transactions []*transaction.Transaction, topCategories int) Summary {
	var income, expenses float64
	expenseByCategory := make(map[string]float64)

	for _, t := range transactions {
		switch t.Type {
		case transaction.Income:
			income += t.Amount
		case transaction.Expense:
			expenses += t.Amount
			expenseByCategory[t.Category] += t.Amount
		}
	}

	balance := income - expenses

	savingsRate := 0.0
	if income > 0 {
		savingsRate = balance / income * 100
	}

	categories := make([]CategoryAmount, 0, len(expenseByCategory))
	for name, amount := range expenseByCategory {
		percent := 0.0
		if expenses > 0 {
			percent = amount / expenses * 100
		}
		categories = append(categories, CategoryAmount{Name: name, Amount: amount, Percent: percent})
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Amount != categories[j].Amount {
			return categories[i].Amount > categories[j].Amount
		}
		return categories[i].Name < categories[j].Name
	})

	if len(categories) > topCategories {
		categories = categories[:topCategories]
	}

	return Summary{
		Income:        income,
		Expenses:      expenses,
		Balance:       balance,
		SavingsRate:   savingsRate,
		TopCategories: categories,
	}
}

func (s *Service) ensureUserExists(ctx context.Context, userID ulid.ULID) error {
	if s.UserService == nil {
		return appErrors.ErrInternalServer
	}

	_, err := s.UserService.GetByID(ctx, userID)
	if err != nil {
		return appErrors.ErrUserNotFound.WithError(err)
	}

	return nil
}
