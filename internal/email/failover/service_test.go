package failover

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/webfolio/webfolio/internal/email"
	emailmocks "github.com/webfolio/webfolio/internal/email/mocks"
	"go.uber.org/mock/gomock"
)

func TestFailoverEmailServiceSendMail(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(*gomock.Controller) []email.Service
		wantErr error
	}{
		{
			name: "第一个服务就成功",
			mock: func(ctrl *gomock.Controller) []email.Service {
				svc := emailmocks.NewMockService(ctrl)
				svc.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(nil)
				return []email.Service{svc}
			},
		},
		{
			name: "先失败,切换到下一个成功",
			mock: func(ctrl *gomock.Controller) []email.Service {
				good := emailmocks.NewMockService(ctrl)
				good.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(nil)
				bad := emailmocks.NewMockService(ctrl)
				bad.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(errors.New("发送失败"))
				// 轮询从下标 1 开始，先试 bad 再落到 good
				return []email.Service{good, bad}
			},
		},
		{
			name: "所有服务都失败",
			mock: func(ctrl *gomock.Controller) []email.Service {
				svc1 := emailmocks.NewMockService(ctrl)
				svc1.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(errors.New("发送失败"))
				svc2 := emailmocks.NewMockService(ctrl)
				svc2.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(errors.New("发送失败"))
				return []email.Service{svc1, svc2}
			},
			wantErr: ErrAllServicesFailed,
		},
		{
			name: "超时直接向上抛,不再切换",
			mock: func(ctrl *gomock.Controller) []email.Service {
				// 轮询从下标 1 开始，下标 0 的服务不应该被碰到
				untouched := emailmocks.NewMockService(ctrl)
				timeout := emailmocks.NewMockService(ctrl)
				timeout.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)
				return []email.Service{untouched, timeout}
			},
			wantErr: context.DeadlineExceeded,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := NewFailoverEmailService(tc.mock(ctrl))
			err := svc.SendMail(context.Background(), email.Mail{
				To:      "to@example.com",
				Subject: "test",
				Body:    []byte("test"),
			})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
