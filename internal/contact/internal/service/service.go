// Copyright 2024 webfolio
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/webfolio/webfolio/internal/contact/internal/domain"
	"github.com/webfolio/webfolio/internal/contact/internal/repository"
	"github.com/webfolio/webfolio/internal/email"
)

var (
	ErrNameRequired    = errors.New("Name is required")
	ErrEmailInvalid    = errors.New("A valid email is required")
	ErrMessageRequired = errors.New("Message is required")

	emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type Service interface {
	// Submit 落库之后尽力而为地发邮件通知，通知失败不影响请求结果
	Submit(ctx context.Context, msg domain.Message) (int64, error)
	List(ctx context.Context, offset, limit int) ([]domain.Message, error)
}

type service struct {
	repo repository.MessageRepository
	// emailSvc 为 nil 表示没配通知
	emailSvc email.Service
	// notifyTo 站长收通知的邮箱
	notifyTo string
	logger   *elog.Component
}

func NewService(repo repository.MessageRepository, emailSvc email.Service, notifyTo string) Service {
	return &service{
		repo:     repo,
		emailSvc: emailSvc,
		notifyTo: notifyTo,
		logger:   elog.DefaultLogger,
	}
}

func (s *service) Submit(ctx context.Context, msg domain.Message) (int64, error) {
	if err := s.validate(msg); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, msg)
	if err != nil {
		return 0, err
	}
	s.notify(msg)
	return id, nil
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.Message, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *service) validate(msg domain.Message) error {
	if msg.Name == "" {
		return ErrNameRequired
	}
	if !emailRegexp.MatchString(msg.Email) {
		return ErrEmailInvalid
	}
	if msg.Content == "" {
		return ErrMessageRequired
	}
	return nil
}

func (s *service) notify(msg domain.Message) {
	if s.emailSvc == nil || s.notifyTo == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		subject := msg.Subject
		if subject == "" {
			subject = "新的联系表单留言"
		}
		body := fmt.Sprintf("<p>来自: %s &lt;%s&gt;</p><p>%s</p>",
			html.EscapeString(msg.Name),
			html.EscapeString(msg.Email),
			html.EscapeString(msg.Content))
		err := s.emailSvc.SendMail(ctx, email.Mail{
			To:      s.notifyTo,
			Subject: subject,
			Body:    []byte(body),
		})
		if err != nil {
			s.logger.Warn("发送联系表单通知失败",
				elog.FieldErr(err),
				elog.String("email", msg.Email))
		}
	}()
}
