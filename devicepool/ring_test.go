// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishedRingBounded(t *testing.T) {
	r := newFinishedRing(3)

	for i, key := range []string{"j1", "j2", "j3", "j4", "j5"} {
		r.push(finishedEntry{key: key, progress: i})
	}

	require.Equal(t, 3, r.len())

	_, ok := r.find("j1")
	assert.False(t, ok)

	_, ok = r.find("j2")
	assert.False(t, ok)

	fe, ok := r.find("j3")
	require.True(t, ok)
	assert.Equal(t, 2, fe.progress)

	all := r.all()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"j3", "j4", "j5"}, []string{all[0].key, all[1].key, all[2].key})
}

func TestFinishedRingFindMostRecentFirst(t *testing.T) {
	r := newFinishedRing(5)
	r.push(finishedEntry{key: "dup", progress: 1})
	r.push(finishedEntry{key: "dup", progress: 2})

	fe, ok := r.find("dup")
	require.True(t, ok)
	assert.Equal(t, 2, fe.progress)
}

func TestFinishedRingMinimumLimit(t *testing.T) {
	r := newFinishedRing(0)
	assert.Equal(t, 1, r.limit)
}
