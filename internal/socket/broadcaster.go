// internal/socket/broadcaster.go
package socket

// Broadcaster provides high-level methods for broadcasting entity change
// events to connected dashboards. All methods are nil-safe so services can
// run without a hub (tests, CLI usage).
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

func (b *Broadcaster) entityChanged(msgType MessageType, action, id string) {
	if b == nil || b.hub == nil {
		return
	}
	b.hub.Broadcast(msgType, map[string]interface{}{
		"action": action,
		"id":     id,
	})
}

func (b *Broadcaster) MemberChanged(action, id string) {
	b.entityChanged(MessageMemberChanged, action, id)
}

func (b *Broadcaster) TaskChanged(action, id string) {
	b.entityChanged(MessageTaskChanged, action, id)
}

func (b *Broadcaster) ProjectTaskChanged(action, id string) {
	b.entityChanged(MessageProjectTaskChanged, action, id)
}

func (b *Broadcaster) WorkgroupChanged(action, id string) {
	b.entityChanged(MessageWorkgroupChanged, action, id)
}

func (b *Broadcaster) WorkspaceChanged(action, id string) {
	b.entityChanged(MessageWorkspaceChanged, action, id)
}
