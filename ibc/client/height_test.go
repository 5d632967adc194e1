package client_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tendermint/ics07/ibc/client"
)

func TestHeightCompare(t *testing.T) {
	testCases := []struct {
		name     string
		h1, h2   client.Height
		expected int
	}{
		{"revision number decides", client.NewHeight(1, 1), client.NewHeight(0, 100), 1},
		{"same revision, lower height", client.NewHeight(3, 5), client.NewHeight(3, 6), -1},
		{"equal", client.NewHeight(2, 7), client.NewHeight(2, 7), 0},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.h1.Compare(tc.h2))
			assert.Equal(t, -tc.expected, tc.h2.Compare(tc.h1))
			assert.Equal(t, tc.expected < 0, tc.h1.LT(tc.h2))
			assert.Equal(t, tc.expected >= 0, tc.h1.GTE(tc.h2))
			assert.Equal(t, tc.expected == 0, tc.h1.EQ(tc.h2))
		})
	}
	assert.True(t, client.Height{}.IsZero())
}

func TestHeightStringRoundTrip(t *testing.T) {
	h := client.NewHeight(4, 1234)
	assert.Equal(t, "4-1234", h.String())

	parsed, err := client.ParseHeight("4-1234")
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	for _, bad := range []string{"", "4", "4-", "-4", "a-1", "1-2-3"} {
		_, err := client.ParseHeight(bad)
		assert.Error(t, err, bad)
	}

	bz, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"revision_number":"4","revision_height":"1234"}`, string(bz))
}

func TestHeightOrderingLaws(t *testing.T) {
	gen := rapid.Custom(func(t *rapid.T) client.Height {
		return client.NewHeight(
			rapid.Uint64Range(0, 3).Draw(t, "number").(uint64),
			rapid.Uint64Range(0, 3).Draw(t, "height").(uint64),
		)
	})

	rapid.Check(t, func(t *rapid.T) {
		a := gen.Draw(t, "a").(client.Height)
		b := gen.Draw(t, "b").(client.Height)
		c := gen.Draw(t, "c").(client.Height)

		if a.Compare(b) != -b.Compare(a) {
			t.Fatalf("compare is not antisymmetric for %v, %v", a, b)
		}
		if a.LTE(b) && b.LTE(c) && !a.LTE(c) {
			t.Fatalf("ordering is not transitive for %v, %v, %v", a, b, c)
		}
		if a.LT(b) == a.GTE(b) {
			t.Fatalf("LT and GTE disagree for %v, %v", a, b)
		}
		parsed, err := client.ParseHeight(a.String())
		if err != nil || parsed != a {
			t.Fatalf("string round trip failed for %v: %v", a, err)
		}
	})
}
