// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import "github.com/segmentio/ksuid"

// GenerateKey mints a unique, sortable job key for callers that don't have
// a natural identifier of their own to submit with, mirroring the role
// device.UUIDKeyFunc plays for device identifiers.
func GenerateKey() string {
	return ksuid.New().String()
}
