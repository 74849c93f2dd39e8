// SPDX-License-Identifier: MIT
package dirtyset_test

import (
	"testing"

	"github.com/katalvlaran/relboost/internal/dirtyset"
	"github.com/stretchr/testify/require"
)

func TestSet_AddContainsOrder(t *testing.T) {
	s := dirtyset.New(5)
	require.False(t, s.Contains(2))

	s.Add(2)
	s.Add(0)
	s.Add(2) // idempotent

	require.True(t, s.Contains(2))
	require.True(t, s.Contains(0))
	require.False(t, s.Contains(1))
	require.Equal(t, []int{2, 0}, s.Items())
	require.Equal(t, 2, s.Len())
}

func TestSet_ClearIsO1AndResets(t *testing.T) {
	s := dirtyset.New(3)
	s.Add(0)
	s.Add(1)
	s.Clear()

	require.Equal(t, 0, s.Len())
	require.False(t, s.Contains(0))
	require.False(t, s.Contains(1))

	s.Add(0)
	require.True(t, s.Contains(0))
	require.Equal(t, []int{0}, s.Items())
}

func TestSet_Resize(t *testing.T) {
	s := dirtyset.New(2)
	s.Add(1)
	s.Resize(4)
	require.True(t, s.Contains(1))
	s.Add(3)
	require.True(t, s.Contains(3))
}
