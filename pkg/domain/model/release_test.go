package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/domain/types"
)

func TestLatestOf(t *testing.T) {
	releases := []*model.ReleaseEntry{
		{TagName: "v2.1.0-rc1", Prerelease: true},
		{TagName: "v2.0.0"},
		{TagName: "v2.0.0-rc2", Prerelease: true},
		{TagName: "v1.9.0"},
	}

	t.Run("stable picks first non-prerelease", func(t *testing.T) {
		r := model.LatestOf(releases, types.ChannelStable)
		gt.Value(t, r).NotNil()
		gt.V(t, r.TagName).Equal("v2.0.0")
	})

	t.Run("prerelease picks first prerelease", func(t *testing.T) {
		r := model.LatestOf(releases, types.ChannelPrerelease)
		gt.Value(t, r).NotNil()
		gt.V(t, r.TagName).Equal("v2.1.0-rc1")
	})

	t.Run("no entry of the kind", func(t *testing.T) {
		stableOnly := []*model.ReleaseEntry{{TagName: "v1.0.0"}}
		gt.Value(t, model.LatestOf(stableOnly, types.ChannelPrerelease)).Nil()
	})

	t.Run("empty list", func(t *testing.T) {
		gt.Value(t, model.LatestOf(nil, types.ChannelStable)).Nil()
	})

	// The list order is trusted as-is: an older entry listed first wins.
	t.Run("list order is not validated", func(t *testing.T) {
		unordered := []*model.ReleaseEntry{
			{TagName: "v1.0.0"},
			{TagName: "v3.0.0"},
		}
		gt.V(t, model.LatestOf(unordered, types.ChannelStable).TagName).Equal("v1.0.0")
	})
}

func TestAddressPair_Content(t *testing.T) {
	p := model.AddressPair{IPv4: "203.0.113.7", IPv6: "2001:db8::1"}
	gt.V(t, p.Content()).Equal("203.0.113.7;2001:db8::1")
}
