package training

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveUnlocks_EmptySequence(t *testing.T) {
	require.Empty(t, ResolveUnlocks(nil))
	require.Empty(t, ResolveUnlocks([]UnlockInput{}))
}

func TestResolveUnlocks_FirstModuleAlwaysUnlocked(t *testing.T) {
	got := ResolveUnlocks([]UnlockInput{{}})
	require.Equal(t, []bool{true}, got)
}

func TestResolveUnlocks_GatesOnPreviousCompletedAndPassed(t *testing.T) {
	cases := []struct {
		name string
		prev UnlockInput
		want bool
	}{
		{"not started", UnlockInput{}, false},
		{"completed but failed", UnlockInput{Completed: true, Passed: false}, false},
		{"passed without completion flag", UnlockInput{Completed: false, Passed: true}, false},
		{"completed and passed", UnlockInput{Completed: true, Passed: true}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveUnlocks([]UnlockInput{tc.prev, {}})
			require.True(t, got[0])
			require.Equal(t, tc.want, got[1])
		})
	}
}

func TestResolveUnlocks_ResourceModulesAlwaysUnlocked(t *testing.T) {
	got := ResolveUnlocks([]UnlockInput{
		{},                      // index 0, untouched
		{ResourceModule: true},  // unlocked despite locked predecessor
		{},                      // gated by the (incomplete) resource module
	})
	require.Equal(t, []bool{true, true, false}, got)
}

func TestResolveUnlocks_SequentialChain(t *testing.T) {
	got := ResolveUnlocks([]UnlockInput{
		{Completed: true, Passed: true},
		{Completed: true, Passed: true},
		{Completed: true, Passed: false},
		{},
		{},
	})
	require.Equal(t, []bool{true, true, true, false, false}, got)
}
