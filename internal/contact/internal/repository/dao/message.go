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

package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
)

type Message struct {
	ID      int64  `gorm:"primaryKey,autoIncrement"`
	Name    string `gorm:"column:name;type:varchar(255);not null"`
	Email   string `gorm:"column:email;type:varchar(255);not null;index:idx_email"`
	Subject string `gorm:"column:subject;type:varchar(512)"`
	Content string `gorm:"column:content;type:text;not null"`
	Ctime   int64
	Utime   int64
}

func (Message) TableName() string {
	return "contact_messages"
}

func InitTables(db *egorm.Component) error {
	return db.WithContext(context.Background()).AutoMigrate(&Message{})
}

type MessageDAO interface {
	Create(ctx context.Context, msg Message) (int64, error)
	List(ctx context.Context, offset, limit int) ([]Message, error)
}

type messageDAO struct {
	db *egorm.Component
}

func NewMessageDAO(db *egorm.Component) MessageDAO {
	return &messageDAO{
		db: db,
	}
}

func (d *messageDAO) Create(ctx context.Context, msg Message) (int64, error) {
	now := time.Now().UnixMilli()
	msg.Ctime = now
	msg.Utime = now
	err := d.db.WithContext(ctx).Create(&msg).Error
	return msg.ID, err
}

func (d *messageDAO) List(ctx context.Context, offset, limit int) ([]Message, error) {
	var res []Message
	err := d.db.WithContext(ctx).
		Order("id desc").
		Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}
