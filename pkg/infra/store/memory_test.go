package store_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relmon/pkg/infra/store"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	seed := map[string]string{"owner/name": "v1"}
	s := store.NewMemory(seed)

	seed["owner/name"] = "mutated"
	tag, found, err := s.Get(ctx, "owner/name")
	gt.NoError(t, err)
	gt.V(t, found).Equal(true)
	gt.V(t, tag).Equal("v1")

	gt.NoError(t, s.Put(ctx, "other/repo", "v3"))

	list, err := s.List(ctx)
	gt.NoError(t, err)
	gt.V(t, list).Equal(map[string]string{"owner/name": "v1", "other/repo": "v3"})

	list["owner/name"] = "changed outside"
	tag, _, _ = s.Get(ctx, "owner/name")
	gt.V(t, tag).Equal("v1")
}
