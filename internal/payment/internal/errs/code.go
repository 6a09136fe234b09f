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

package errs

var (
	SystemError   = ErrorCode{Code: 502001, Msg: "系统错误"}
	InvalidInput  = ErrorCode{Code: 402001, Msg: "参数非法"}
	OrderNotFound = ErrorCode{Code: 404002, Msg: "订单不存在"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
