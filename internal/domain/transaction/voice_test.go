package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Finora/internal/domain/transaction"
	"Finora/internal/domain/user"
	appErrors "Finora/internal/errors"

	"github.com/oklog/ulid/v2"
)

type fakeVoiceParser struct {
	parseFn func(ctx context.Context, transcript string) (*transaction.VoiceTransaction, error)
}

func (f *fakeVoiceParser) ParseVoiceTranscript(ctx context.Context, transcript string) (*transaction.VoiceTransaction, error) {
	if f.parseFn != nil {
		return f.parseFn(ctx, transcript)
	}
	return &transaction.VoiceTransaction{}, nil
}

func newVoiceService(parser transaction.VoiceParser) *transaction.Service {
	return transaction.NewService(
		&fakeTransactionRepository{},
		&user.Service{Repository: &fakeUserRepository{}},
		parser,
	)
}

func TestParseVoiceInput(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()

	parser := &fakeVoiceParser{
		parseFn: func(ctx context.Context, transcript string) (*transaction.VoiceTransaction, error) {
			return &transaction.VoiceTransaction{
				Title:         "Walmart",
				Amount:        500,
				Type:          transaction.Expense,
				Category:      "Groceries",
				PaymentMethod: transaction.MethodCard,
				Date:          time.Date(time.Now().Year(), time.June, 10, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}

	svc := newVoiceService(parser)

	parsed, err := svc.ParseVoiceInput(context.Background(), userID, "Spent 500 rupees on groceries at Walmart, paid by card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.Title != "Walmart" || parsed.Amount != 500 {
		t.Errorf("unexpected draft: %+v", parsed)
	}
	if parsed.Type != transaction.Expense {
		t.Errorf("expected EXPENSE, got %s", parsed.Type)
	}
	if parsed.Category != "groceries" {
		t.Errorf("expected lowercased category, got %q", parsed.Category)
	}
	if parsed.PaymentMethod != transaction.MethodCard {
		t.Errorf("expected CARD, got %s", parsed.PaymentMethod)
	}
}

func TestParseVoiceInputErrors(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()

	t.Run("blank transcript", func(t *testing.T) {
		t.Parallel()

		svc := newVoiceService(&fakeVoiceParser{})

		_, err := svc.ParseVoiceInput(context.Background(), userID, "   ")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("parser not configured", func(t *testing.T) {
		t.Parallel()

		svc := newVoiceService(nil)

		_, err := svc.ParseVoiceInput(context.Background(), userID, "paguei o aluguel")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VOICE_PARSER_DISABLED" {
			t.Fatalf("expected VOICE_PARSER_DISABLED, got %v", err)
		}
	})

	t.Run("user not found", func(t *testing.T) {
		t.Parallel()

		svc := transaction.NewService(
			&fakeTransactionRepository{},
			&user.Service{Repository: &fakeUserRepository{
				getByIDFn: func(ctx context.Context, id ulid.ULID) (*user.User, error) {
					return nil, appErrors.ErrUserNotFound
				},
			}},
			&fakeVoiceParser{},
		)

		_, err := svc.ParseVoiceInput(context.Background(), userID, "paguei o aluguel")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "USER_NOT_FOUND" {
			t.Fatalf("expected USER_NOT_FOUND, got %v", err)
		}
	})

	t.Run("parser failure propagates", func(t *testing.T) {
		t.Parallel()

		svc := newVoiceService(&fakeVoiceParser{
			parseFn: func(ctx context.Context, transcript string) (*transaction.VoiceTransaction, error) {
				return nil, appErrors.NewExternalServiceError("gemini", errors.New("modelo indisponível"))
			},
		})

		_, err := svc.ParseVoiceInput(context.Background(), userID, "paguei o aluguel")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "EXTERNAL_SERVICE_ERROR" {
			t.Fatalf("expected EXTERNAL_SERVICE_ERROR, got %v", err)
		}
	})
}

func TestParseVoiceInputNormalization(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()

	tests := []struct {
		name   string
		raw    transaction.VoiceTransaction
		assert func(t *testing.T, parsed *transaction.VoiceTransaction)
	}{
		{
			name: "unknown type is dropped",
			raw:  transaction.VoiceTransaction{Type: "TRANSFER", Amount: 100},
			assert: func(t *testing.T, parsed *transaction.VoiceTransaction) {
				if parsed.Type != "" {
					t.Errorf("expected empty type, got %s", parsed.Type)
				}
			},
		},
		{
			name: "unknown payment method maps to other",
			raw:  transaction.VoiceTransaction{PaymentMethod: "BANK_TRANSFER"},
			assert: func(t *testing.T, parsed *transaction.VoiceTransaction) {
				if parsed.PaymentMethod != transaction.MethodOther {
					t.Errorf("expected OTHER, got %s", parsed.PaymentMethod)
				}
			},
		},
		{
			name: "lowercase enum values are accepted",
			raw:  transaction.VoiceTransaction{Type: "expense", PaymentMethod: "upi"},
			assert: func(t *testing.T, parsed *transaction.VoiceTransaction) {
				if parsed.Type != transaction.Expense || parsed.PaymentMethod != transaction.MethodUPI {
					t.Errorf("expected EXPENSE/UPI, got %s/%s", parsed.Type, parsed.PaymentMethod)
				}
			},
		},
		{
			name: "negative amount is zeroed",
			raw:  transaction.VoiceTransaction{Amount: -50},
			assert: func(t *testing.T, parsed *transaction.VoiceTransaction) {
				if parsed.Amount != 0 {
					t.Errorf("expected 0, got %v", parsed.Amount)
				}
			},
		},
		{
			name: "implausibly old date falls back to now",
			raw:  transaction.VoiceTransaction{Date: time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)},
			assert: func(t *testing.T, parsed *transaction.VoiceTransaction) {
				if parsed.Date.Year() != time.Now().Year() {
					t.Errorf("expected current year, got %v", parsed.Date)
				}
			},
		},
		{
			name: "missing date falls back to now",
			raw:  transaction.VoiceTransaction{},
			assert: func(t *testing.T, parsed *transaction.VoiceTransaction) {
				if parsed.Date.IsZero() {
					t.Error("expected date to default to now")
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw := tt.raw
			svc := newVoiceService(&fakeVoiceParser{
				parseFn: func(ctx context.Context, transcript string) (*transaction.VoiceTransaction, error) {
					copied := raw
					return &copied, nil
				},
			})

			parsed, err := svc.ParseVoiceInput(context.Background(), userID, "qualquer coisa")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.assert(t, parsed)
		})
	}
}

func TestResolveVoiceDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{name: "empty", value: "", want: now},
		{name: "today", value: "today", want: now},
		{name: "yesterday", value: "Yesterday", want: now.AddDate(0, 0, -1)},
		{name: "tomorrow", value: "tomorrow", want: now.AddDate(0, 0, 1)},
		{name: "iso date", value: "2025-06-10", want: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", value: "2025-06-10T08:30:00Z", want: time.Date(2025, time.June, 10, 8, 30, 0, 0, time.UTC)},
		{name: "garbage", value: "sometime last week", want: now},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := transaction.ResolveVoiceDate(tt.value, now)
			if !got.Equal(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
