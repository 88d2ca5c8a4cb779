package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/sysctl-control/internal/sysctl"
)

func names(params []*sysctl.Parameter) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}
	return out
}

func TestSetFilterNarrowsAndRestores(t *testing.T) {
	l := newTestList("kernel.hostname", "vm.stat_interval", "vm.swappiness")
	l.Cursor = 2
	l.SetFilter("stat")

	assert.Equal(t, []string{"vm.stat_interval"}, names(l.Items))
	assert.Equal(t, 0, l.Cursor)
	assert.Equal(t, 2, l.LastCursor, "cursor remembered when the filter starts")

	l.SetFilter("")
	current, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, "vm.stat_interval", current.Name, "filtered selection kept after clearing")
	assert.Equal(t, -1, l.LastCursor)
}

func TestSetFilterNoMatches(t *testing.T) {
	l := newTestList("kernel.hostname")
	l.SetFilter("zzzz")
	assert.Empty(t, l.Items)
	assert.Equal(t, -1, l.Cursor)

	l.SetFilter("")
	assert.Equal(t, 0, l.Cursor)
}

func TestFilterParametersFuzzyThenSubstring(t *testing.T) {
	params := []*sysctl.Parameter{
		{Name: "net.ipv4.ip_forward", Value: "0"},
		{Name: "vm.swappiness", Value: "60"},
	}
	assert.Equal(t, []string{"net.ipv4.ip_forward"}, names(FilterParameters(params, "ipfwd")))
	assert.Equal(t, []string{"vm.swappiness"}, names(FilterParameters(params, "60")))
	assert.Len(t, FilterParameters(params, "  "), 2)
}

func TestBestMatchIndexPrefersExactName(t *testing.T) {
	params := []*sysctl.Parameter{
		{Name: "vm.stat_interval_extra"},
		{Name: "vm.stat_interval"},
	}
	assert.Equal(t, 1, BestMatchIndex(params, "vm.stat_interval"))
	assert.Equal(t, 0, BestMatchIndex(params, "stat"))
	assert.Equal(t, -1, BestMatchIndex(nil, "x"))
}
