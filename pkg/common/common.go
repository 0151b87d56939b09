package common

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

var snowflakeNode *snowflake.Node

func init() {
	nodeID := int64(1)
	if v := os.Getenv("BIOQUIP_NODE_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 && n <= 1023 {
			nodeID = n
		}
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		panic(err)
	}
	snowflakeNode = node
}

// UUIDint64 returns a new snowflake identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
