package ioc

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gotomicro/ego/core/econf"
)

// InitSnowflakeNode 订单 ID 生成器，节点号从配置来，默认 1
func InitSnowflakeNode() *snowflake.Node {
	nodeID := econf.GetInt64("snowflake.nodeId")
	if nodeID <= 0 {
		nodeID = 1
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		panic(err)
	}
	return node
}
