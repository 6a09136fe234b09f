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

//go:build wireinject

package payment

import (
	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/webfolio/webfolio/internal/payment/internal/event"
	"github.com/webfolio/webfolio/internal/payment/internal/repository"
	"github.com/webfolio/webfolio/internal/payment/internal/service"
	"github.com/webfolio/webfolio/internal/payment/internal/service/checkout"
	"github.com/webfolio/webfolio/internal/payment/ioc"
	"github.com/webfolio/webfolio/internal/pkg/sequencenumber"
)

func InitModule(db *egorm.Component, q mq.MQ, idGen *snowflake.Node) (*Module, error) {
	wire.Build(
		ioc.InitRazorpayConfig,
		ioc.InitGateway,
		wire.Bind(new(checkout.Gateway), new(*checkout.RazorpayGateway)),
		checkout.NewHostedCheckout,
		wire.Bind(new(checkout.Checkout), new(*checkout.HostedCheckout)),
		wire.Bind(new(checkout.Resolver), new(*checkout.HostedCheckout)),
		InitTablesOnce,
		repository.NewPaymentRepository,
		event.NewPaymentEventProducer,
		sequencenumber.NewGenerator,
		service.NewService,
		initHandler,
		initSyncJob,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}
