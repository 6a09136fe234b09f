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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/webfolio/webfolio/internal/contact/internal/domain"
	"github.com/webfolio/webfolio/internal/contact/internal/repository/dao"
)

type MessageRepository interface {
	Create(ctx context.Context, msg domain.Message) (int64, error)
	List(ctx context.Context, offset, limit int) ([]domain.Message, error)
}

type messageRepository struct {
	dao dao.MessageDAO
}

func NewMessageRepository(d dao.MessageDAO) MessageRepository {
	return &messageRepository{
		dao: d,
	}
}

func (r *messageRepository) Create(ctx context.Context, msg domain.Message) (int64, error) {
	return r.dao.Create(ctx, r.toEntity(msg))
}

func (r *messageRepository) List(ctx context.Context, offset, limit int) ([]domain.Message, error) {
	msgs, err := r.dao.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(msgs, func(idx int, src dao.Message) domain.Message {
		return r.toDomain(src)
	}), nil
}

func (r *messageRepository) toEntity(msg domain.Message) dao.Message {
	return dao.Message{
		ID:      msg.ID,
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Content: msg.Content,
	}
}

func (r *messageRepository) toDomain(msg dao.Message) domain.Message {
	return domain.Message{
		ID:      msg.ID,
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Content: msg.Content,
		Ctime:   msg.Ctime,
		Utime:   msg.Utime,
	}
}
