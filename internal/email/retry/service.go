package retry

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/webfolio/webfolio/internal/email"
)

var ErrOverRetryTimes = errors.New("超过最大重试次数")

type Service struct {
	svc       email.Service
	retryFunc func() retry.Strategy
}

func NewRetryEmailService(svc email.Service, fac func() retry.Strategy) *Service {
	return &Service{
		svc:       svc,
		retryFunc: fac,
	}
}

func (s *Service) SendMail(ctx context.Context, mail email.Mail) error {
	var retryTimer *time.Timer
	retryFunc := s.retryFunc()
	defer func() {
		if retryTimer != nil {
			retryTimer.Stop()
		}
	}()
	for {
		err := s.svc.SendMail(ctx, mail)
		if err == nil {
			return nil
		}
		// 超时和调用方主动取消不重试
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return err
		}
		timeInterval, try := retryFunc.Next()
		if !try {
			return ErrOverRetryTimes
		}
		if retryTimer == nil {
			retryTimer = time.NewTimer(timeInterval)
		} else {
			retryTimer.Reset(timeInterval)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-retryTimer.C:
		}
	}
}
