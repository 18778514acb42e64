// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shared

import "context"

type PubSubChannel string

const (
	// VulnerabilityStatisticsUpdated is published after a statistic write committed.
	// payload: {"projectIds": []int64}
	VulnerabilityStatisticsUpdated PubSubChannel = "vulnerabilityStatisticsUpdated"
	// KeyValueStoreChanged replicates writes of the in memory key value store.
	// payload: {"op": "set"|"del", "key": string, "value": string, "ttlSeconds": number}
	KeyValueStoreChanged PubSubChannel = "keyValueStoreChanged"
)

type PubSubMessage interface {
	GetChannel() PubSubChannel
	GetPayload() map[string]any
}

type PubSubBroker interface {
	Publish(ctx context.Context, message PubSubMessage) error
	Subscribe(topic PubSubChannel) (<-chan map[string]any, error)
}

type SimpleMessage struct {
	Channel PubSubChannel
	Payload map[string]any
}

func (m SimpleMessage) GetChannel() PubSubChannel {
	return m.Channel
}

func (m SimpleMessage) GetPayload() map[string]any {
	return m.Payload
}

func NewSimplePubSubMessage(channel PubSubChannel, payload map[string]any) *SimpleMessage {
	return &SimpleMessage{
		Channel: channel,
		Payload: payload,
	}
}

// ProjectIDsFromPayload reads the projectIds of a VulnerabilityStatisticsUpdated payload.
// Payloads which went through json contain float64 values.
func ProjectIDsFromPayload(payload map[string]any) []int64 {
	switch v := payload["projectIds"].(type) {
	case []int64:
		return v
	case []any:
		ids := make([]int64, 0, len(v))
		for _, el := range v {
			switch n := el.(type) {
			case float64:
				ids = append(ids, int64(n))
			case int64:
				ids = append(ids, n)
			case int:
				ids = append(ids, int64(n))
			}
		}
		return ids
	}
	return nil
}
