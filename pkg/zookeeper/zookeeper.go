package zookeeper

import (
	"fmt"
	"strings"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/pkg/configs"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/go-zookeeper/zk"
)

const sessionTimeout = 5 * time.Second

var (
	conn *zk.Conn
)

func InitZKConnection(configs *configs.AppConfigs) {
	if configs.Configs.ZookeeperServer == "" {
		logger.Panic("ZOOKEEPER_SERVER is not set", nil)
	}
	servers := strings.Split(configs.Configs.ZookeeperServer, ",")
	var err error
	conn, _, err = zk.Connect(servers, sessionTimeout)
	if err != nil {
		logger.Panic("Unable to connect to zk server ", err)
	}
}

func Get(nodePath string) ([]byte, error) {
	if conn == nil {
		return nil, fmt.Errorf("zookeeper connection not initialized")
	}
	data, _, err := conn.Get(nodePath)
	if err != nil {
		logger.Error(fmt.Sprintf("Error getting data from zk path %s ", nodePath), err)
		return nil, err
	}
	return data, nil
}

func Close() {
	if conn != nil {
		conn.Close()
	}
}
