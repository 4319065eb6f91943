package collateral

import (
	"context"
	"fmt"
	"time"

	"rwalend/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache read-through cache over a collateral store. Mutations write
// through and refresh the cached row.
func Cache(store core.ICollateralStore, exp time.Duration) core.ICollateralStore {
	return &cacheCollateralStore{
		ICollateralStore: store,
		cache:            gcache.New(2048).LRU().Expiration(exp).Build(),
		sf:               &singleflight.Group{},
	}
}

type cacheCollateralStore struct {
	core.ICollateralStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheCollateralStore) Create(ctx context.Context, collateral *core.Collateral) error {
	if err := s.ICollateralStore.Create(ctx, collateral); err != nil {
		return err
	}

	s.cacheItem(collateral)
	return nil
}

func (s *cacheCollateralStore) Find(ctx context.Context, itemID string) (*core.Collateral, error) {
	if v, err := s.cache.Get(s.itemKey(itemID)); err == nil {
		if collateral, ok := v.(*core.Collateral); ok {
			return collateral, nil
		}
	}

	v, err, _ := s.sf.Do(s.itemKey(itemID), func() (interface{}, error) {
		collateral, err := s.ICollateralStore.Find(ctx, itemID)
		if err != nil {
			return nil, err
		}

		if collateral.ID > 0 {
			s.cacheItem(collateral)
		}

		return collateral, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Collateral), nil
}

func (s *cacheCollateralStore) Update(ctx context.Context, collateral *core.Collateral) error {
	if err := s.ICollateralStore.Update(ctx, collateral); err != nil {
		return err
	}

	s.cacheItem(collateral)
	return nil
}

func (s *cacheCollateralStore) cacheItem(collateral *core.Collateral) {
	item := *collateral
	s.cache.Set(s.itemKey(collateral.ItemID), &item)
}

func (s *cacheCollateralStore) itemKey(itemID string) string {
	return fmt.Sprintf("collateral:item:%s", itemID)
}
