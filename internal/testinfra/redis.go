// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

//go:build integration

package testinfra

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DefaultRedisImage backs the job queue integration tests.
const DefaultRedisImage = "redis:7-alpine"

const redisPort = "6379"

// RedisContainer is a running Redis server.
type RedisContainer struct {
	testcontainers.Container
	Addr string
}

// NewRedisContainer starts Redis and returns its host:port.
func NewRedisContainer(ctx context.Context) (*RedisContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        DefaultRedisImage,
		ExposedPorts: []string{redisPort + "/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Ready to accept connections"),
			listening(redisPort, 60*time.Second),
		),
	}
	container, addr, err := startContainer(ctx, req, redisPort)
	if err != nil {
		return nil, err
	}
	return &RedisContainer{Container: container, Addr: addr}, nil
}
