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

package contact

import (
	"sync"

	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/webfolio/webfolio/internal/contact/internal/domain"
	"github.com/webfolio/webfolio/internal/contact/internal/repository"
	"github.com/webfolio/webfolio/internal/contact/internal/repository/dao"
	"github.com/webfolio/webfolio/internal/contact/internal/service"
	"github.com/webfolio/webfolio/internal/contact/internal/web"
	"github.com/webfolio/webfolio/internal/email"
)

type (
	Handler = web.Handler
	Message = domain.Message
	Service = service.Service
)

type Module struct {
	Hdl *Handler
	Svc Service
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.MessageDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewMessageDAO(db)
}

func initService(repo repository.MessageRepository, emailSvc email.Service) Service {
	return service.NewService(repo, emailSvc, econf.GetString("contact.notifyTo"))
}
