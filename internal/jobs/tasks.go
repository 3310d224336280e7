// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package jobs

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"

	"github.com/tomtom215/marquee/internal/validation"
)

// TaskRefreshEntry re-fetches one metadata cache entry.
const TaskRefreshEntry = "metacache:refresh"

// RefreshPayload identifies the cache entry to refresh.
type RefreshPayload struct {
	Endpoint string            `json:"endpoint" validate:"required,max=512"`
	Params   map[string]string `json:"params,omitempty"`
}

// NewRefreshTask builds a refresh task for endpoint and params.
func NewRefreshTask(endpoint string, params map[string]string, opts ...asynq.Option) (*asynq.Task, error) {
	p := RefreshPayload{Endpoint: endpoint, Params: params}
	if verr := validation.ValidateStruct(&p); verr != nil {
		return nil, verr
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode refresh payload: %w", err)
	}
	return asynq.NewTask(TaskRefreshEntry, data, opts...), nil
}

// ParseRefreshPayload decodes and validates a refresh task payload.
func ParseRefreshPayload(data []byte) (*RefreshPayload, error) {
	var p RefreshPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode refresh payload: %w", err)
	}
	if verr := validation.ValidateStruct(&p); verr != nil {
		return nil, verr
	}
	return &p, nil
}
