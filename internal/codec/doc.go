// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package codec contains the serializers used by the durable store. Any
// codec that round-trips a value satisfies the store's contract.
package codec
