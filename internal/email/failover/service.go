package failover

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/gotomicro/ego/core/elog"
	"github.com/webfolio/webfolio/internal/email"
)

var ErrAllServicesFailed = errors.New("所有邮件服务都失败")

// FailoverEmailService 轮询多个邮件服务，一个挂了换下一个
type FailoverEmailService struct {
	svcs []email.Service
	idx  uint64
	l    *elog.Component
}

func NewFailoverEmailService(svcs []email.Service) *FailoverEmailService {
	return &FailoverEmailService{
		svcs: svcs,
		idx:  0,
		l:    elog.DefaultLogger,
	}
}

func (f *FailoverEmailService) SendMail(ctx context.Context, mail email.Mail) error {
	idx := atomic.AddUint64(&f.idx, 1)
	length := len(f.svcs)
	for i := idx; i < idx+uint64(length); i++ {
		offset := i % uint64(length)
		err := f.svcs[offset].SendMail(ctx, mail)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return err
		default:
			f.l.Warn("发送邮件失败", elog.FieldErr(err))
		}
	}
	return ErrAllServicesFailed
}
