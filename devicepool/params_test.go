// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceParamsEqual(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     DeviceParams
		expected bool
	}{
		{"same name, same hints", NewDeviceParams("cuda:0", 0, nil), NewDeviceParams("cuda:0", 0, nil), true},
		{"same name, different index and hints", NewDeviceParams("cuda:0", 0, nil), NewDeviceParams("cuda:0", 1, map[string]string{"a": "b"}), true},
		{"different name", NewDeviceParams("cuda:0", 0, nil), NewDeviceParams("cuda:1", 0, nil), false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.a.Equal(testCase.b))
		})
	}
}

func TestDeviceParamsString(t *testing.T) {
	d := NewDeviceParams("cuda:0", 0, nil)
	assert.Equal(t, "cuda:0", d.String())
}
