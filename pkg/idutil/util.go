package idutil

import (
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
	nodeID   int64
)

// SetNode sets the snowflake node id of this process. It must be called before the first
// NewSnowflake call to take effect.
func SetNode(id int64) {
	nodeID = id
}

// NewSnowflake returns a time ordered unique id, used as the key of published events.
func NewSnowflake() snowflake.ID {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(nodeID)
		if err != nil {
			node, _ = snowflake.NewNode(0)
		}
	})

	return node.Generate()
}

// TimeOf returns the generation time of a snowflake id in string form.
func TimeOf(id string) (time.Time, error) {
	sID, err := snowflake.ParseString(id)
	if err != nil {
		return time.Time{}, err
	}

	return time.UnixMilli(sID.Time()), nil
}
