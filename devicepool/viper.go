// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// PoolKey is the Viper subkey under which Options are typically stored.
const PoolKey = "devicePool"

// LoadOptions unmarshals an Options from a Viper environment, following the
// same pattern as device.NewOptions: Unmarshal does the bulk of the work,
// with cast used for the one field (JoinTimeout) that commonly arrives as a
// string or numeric seconds value rather than a native time.Duration.
func LoadOptions(v *viper.Viper) (*Options, error) {
	o := new(Options)
	if v == nil {
		return o, nil
	}

	if err := v.Unmarshal(o); err != nil {
		return nil, err
	}

	if raw := v.Get("joinTimeout"); raw != nil {
		d, err := cast.ToDurationE(raw)
		if err != nil {
			return nil, err
		}

		o.JoinTimeout = d
	}

	return o, nil
}
