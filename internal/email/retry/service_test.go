package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/stretchr/testify/assert"
	"github.com/webfolio/webfolio/internal/email"
	emailmocks "github.com/webfolio/webfolio/internal/email/mocks"
	"go.uber.org/mock/gomock"
)

func fastStrategy() retry.Strategy {
	strategy, _ := retry.NewFixedIntervalRetryStrategy(time.Millisecond, 3)
	return strategy
}

func TestRetryEmailServiceSendMail(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(*gomock.Controller) email.Service
		wantErr error
	}{
		{
			name: "首次发送成功",
			mock: func(ctrl *gomock.Controller) email.Service {
				svc := emailmocks.NewMockService(ctrl)
				svc.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(nil)
				return svc
			},
		},
		{
			name: "失败一次后重试成功",
			mock: func(ctrl *gomock.Controller) email.Service {
				svc := emailmocks.NewMockService(ctrl)
				svc.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(errors.New("发送失败"))
				svc.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(nil)
				return svc
			},
		},
		{
			name: "超过最大重试次数",
			mock: func(ctrl *gomock.Controller) email.Service {
				svc := emailmocks.NewMockService(ctrl)
				svc.EXPECT().SendMail(gomock.Any(), gomock.Any()).
					Return(errors.New("发送失败")).Times(4)
				return svc
			},
			wantErr: ErrOverRetryTimes,
		},
		{
			name: "超时不重试",
			mock: func(ctrl *gomock.Controller) email.Service {
				svc := emailmocks.NewMockService(ctrl)
				svc.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)
				return svc
			},
			wantErr: context.DeadlineExceeded,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := NewRetryEmailService(tc.mock(ctrl), fastStrategy)
			err := svc.SendMail(context.Background(), email.Mail{
				To:      "to@example.com",
				Subject: "test",
				Body:    []byte("test"),
			})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
