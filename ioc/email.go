package ioc

import (
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/go-gomail/gomail"
	"github.com/gotomicro/ego/core/econf"
	"github.com/webfolio/webfolio/internal/email"
	"github.com/webfolio/webfolio/internal/email/failover"
	egomail "github.com/webfolio/webfolio/internal/email/gomail"
	emailretry "github.com/webfolio/webfolio/internal/email/retry"
)

// InitEmailService 组装邮件服务：每个 SMTP 账号一个发送器，
// 外面套轮询故障转移，再套指数退避重试
func InitEmailService() email.Service {
	type SMTPConfig struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	}
	var cfgs []SMTPConfig
	err := econf.UnmarshalKey("email.smtp", &cfgs)
	if err != nil {
		panic(err)
	}
	svcs := make([]email.Service, 0, len(cfgs))
	for _, cfg := range cfgs {
		dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		svcs = append(svcs, egomail.NewService(dialer))
	}
	var svc email.Service = failover.NewFailoverEmailService(svcs)
	svc = emailretry.NewRetryEmailService(svc, func() retry.Strategy {
		strategy, _ := retry.NewExponentialBackoffRetryStrategy(
			100*time.Millisecond, time.Second, 3)
		return strategy
	})
	return svc
}
