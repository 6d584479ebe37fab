package notify

import (
	"context"
	"fmt"
	"time"

	"greenbasket/internal/domain/model"

	"github.com/rs/zerolog"
)

// SMS送信の約束（実装は外部プロバイダ）
type SMSSender interface {
	Send(ctx context.Context, to string, message string) error
}

// メール送信の約束
type EmailSender interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// 外部プロバイダ未設定時のダミー。送った体でログに出すだけ。
type LogSMSSender struct {
	Log zerolog.Logger
}

func (s *LogSMSSender) Send(ctx context.Context, to string, message string) error {
	s.Log.Debug().Str("to", to).Str("message", message).Msg("sms (noop)")
	return nil
}

type LogEmailSender struct {
	Log zerolog.Logger
}

func (s *LogEmailSender) Send(ctx context.Context, to string, subject string, body string) error {
	s.Log.Debug().Str("to", to).Str("subject", subject).Msg("email (noop)")
	return nil
}

// DispatcherはSMS/メールをベストエフォートで送る。
// 失敗はログに残すだけで、呼び出し元のリクエストには決して影響させない。
type Dispatcher struct {
	sms     SMSSender
	email   EmailSender
	log     zerolog.Logger
	timeout time.Duration
}

func NewDispatcher(sms SMSSender, email EmailSender, log zerolog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{sms: sms, email: email, log: log, timeout: timeout}
}

// OrderStatusChangedはステータス変更をユーザーへ通知する。
// コミット後に呼ぶこと（トランザクション内から呼ばない）。
func (d *Dispatcher) OrderStatusChanged(user model.User, orderID int64, status model.OrderStatus) {
	message := StatusMessage(orderID, status)

	go func() {
		//遅い外部APIで固まらないよう上限つき
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if user.Phone != "" {
			if err := d.sms.Send(ctx, user.Phone, message); err != nil {
				d.log.Warn().Err(err).Int64("order_id", orderID).Msg("sms dispatch failed")
			}
		}

		if user.Email != "" {
			subject := fmt.Sprintf("Order #%d update", orderID)
			if err := d.email.Send(ctx, user.Email, subject, message); err != nil {
				d.log.Warn().Err(err).Int64("order_id", orderID).Msg("email dispatch failed")
			}
		}
	}()
}

// StatusMessageは通知レコードとSMS/メールで共通の本文。
func StatusMessage(orderID int64, status model.OrderStatus) string {
	switch status {
	case model.OrderStatusPaid:
		return fmt.Sprintf("Your order #%d has been paid.", orderID)
	case model.OrderStatusPreparing:
		return fmt.Sprintf("Your order #%d is being prepared.", orderID)
	case model.OrderStatusOutForDelivery:
		return fmt.Sprintf("Your order #%d is out for delivery.", orderID)
	case model.OrderStatusDelivered:
		return fmt.Sprintf("Your order #%d has been delivered.", orderID)
	case model.OrderStatusCancelled:
		return fmt.Sprintf("Your order #%d has been cancelled.", orderID)
	default:
		return fmt.Sprintf("Your order #%d is now %s.", orderID, status)
	}
}
