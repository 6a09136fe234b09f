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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webfolio/webfolio/internal/contact/internal/domain"
)

type memoryRepo struct {
	msgs []domain.Message
}

func (m *memoryRepo) Create(_ context.Context, msg domain.Message) (int64, error) {
	msg.ID = int64(len(m.msgs) + 1)
	m.msgs = append(m.msgs, msg)
	return msg.ID, nil
}

func (m *memoryRepo) List(_ context.Context, _, _ int) ([]domain.Message, error) {
	return m.msgs, nil
}

func TestSubmit(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		msg     domain.Message
		wantErr error
	}{
		{
			name: "合法提交",
			msg: domain.Message{
				Name:    "张三",
				Email:   "zhangsan@example.com",
				Content: "你好",
			},
		},
		{
			name: "缺名字",
			msg: domain.Message{
				Email:   "zhangsan@example.com",
				Content: "你好",
			},
			wantErr: ErrNameRequired,
		},
		{
			name: "邮箱格式非法",
			msg: domain.Message{
				Name:    "张三",
				Email:   "not-an-email",
				Content: "你好",
			},
			wantErr: ErrEmailInvalid,
		},
		{
			name: "邮箱为空",
			msg: domain.Message{
				Name:    "张三",
				Content: "你好",
			},
			wantErr: ErrEmailInvalid,
		},
		{
			name: "缺正文",
			msg: domain.Message{
				Name:  "张三",
				Email: "zhangsan@example.com",
			},
			wantErr: ErrMessageRequired,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := &memoryRepo{}
			svc := NewService(repo, nil, "")
			id, err := svc.Submit(context.Background(), tc.msg)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, repo.msgs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), id)
			require.Len(t, repo.msgs, 1)
			assert.Equal(t, tc.msg.Email, repo.msgs[0].Email)
		})
	}
}
