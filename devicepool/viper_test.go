// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsNilViper(t *testing.T) {
	o, err := LoadOptions(nil)
	require.NoError(t, err)
	require.NotNil(t, o)
	require.Equal(t, DefaultJoinTimeout, o.joinTimeout())
}

func TestLoadOptionsUnmarshalsFields(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
devicePool:
  maxJobsPerWorker: 20
  maxPendingPerWorker: 200
  finishedLimit: 5
  joinTimeout: 3s
`)))

	sub := v.Sub(PoolKey)
	require.NotNil(t, sub)

	o, err := LoadOptions(sub)
	require.NoError(t, err)
	require.Equal(t, 20, o.MaxJobsPerWorker)
	require.Equal(t, 200, o.MaxPendingPerWorker)
	require.Equal(t, 5, o.FinishedLimit)
	require.Equal(t, 3*time.Second, o.JoinTimeout)
}

func TestLoadOptionsJoinTimeoutAsBareNumber(t *testing.T) {
	// cast.ToDurationE treats a bare number, whether numeric or a unitless
	// string, as a literal count of nanoseconds rather than seconds -- the
	// same behavior device.NewOptions relies on for its own duration fields.
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
joinTimeout: 5
`)))

	o, err := LoadOptions(v)
	require.NoError(t, err)
	require.Equal(t, 5*time.Nanosecond, o.JoinTimeout)
}
