// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend builds recommendation and "more like this" lists for
// catalog content.
//
// # Pipeline
//
// Recommend runs an ordered list of strategies that share one accumulator of
// catalog ids and stop as soon as enough ids are collected:
//
//   - genre discovery: the user's top genres through the provider's discover endpoint
//   - favorites: provider recommendations for the first favorites
//   - history: provider "similar" lists for the most recently watched titles
//   - popularity: the provider's popular list
//
// Provider ids are translated to catalog ids through an idmap.Mapper and
// ids with no catalog counterpart are dropped. A failing strategy is logged
// and skipped. The result is then padded from the local catalog (view count,
// then year) so the endpoints degrade to local data instead of failing when
// the provider is down.
//
// SimilarTo follows the same pattern for a seed title and tops up with a
// local content score over type, year, genres and tags.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.ConfigFrom(&cfg.Recommend), svc, resolver)
//	items, err := engine.Recommend(ctx, recommend.Request{UserID: "u1", Catalog: snap.Items, N: 20})
package recommend
