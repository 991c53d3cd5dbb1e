// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import "errors"

var (
	ErrMailQueueFull   = errors.New("mail queue is full")
	ErrMailQueueClosed = errors.New("mail queue is not accepting messages")
)
