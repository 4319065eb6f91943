package auction

import (
	"context"

	"rwalend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type auctionStore struct {
	db *db.DB
}

// New new auction store
func New(db *db.DB) core.IAuctionStore {
	return &auctionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Auction{})
		if err := tx.AutoMigrate(core.Auction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *auctionStore) Create(ctx context.Context, auction *core.Auction) error {
	return s.db.Update().Where("item_id=?", auction.ItemID).FirstOrCreate(auction).Error
}

func (s *auctionStore) Find(ctx context.Context, itemID string) (*core.Auction, error) {
	var auction core.Auction
	if err := s.db.View().Where("item_id=?", itemID).First(&auction).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Auction{}, nil
		}

		return nil, err
	}

	return &auction, nil
}

func (s *auctionStore) ListActive(ctx context.Context) ([]*core.Auction, error) {
	var auctions []*core.Auction
	if err := s.db.View().Where("active=?", true).Find(&auctions).Error; err != nil {
		return nil, err
	}

	return auctions, nil
}

func (s *auctionStore) All(ctx context.Context) ([]*core.Auction, error) {
	var auctions []*core.Auction
	if err := s.db.View().Find(&auctions).Error; err != nil {
		return nil, err
	}

	return auctions, nil
}

func (s *auctionStore) Update(ctx context.Context, auction *core.Auction) error {
	version := auction.Version
	auction.Version++

	return s.db.Update().Model(core.Auction{}).
		Where("item_id=? and version=?", auction.ItemID, version).
		Updates(map[string]interface{}{
			"active":         auction.Active,
			"owner":          auction.Owner,
			"original_debt":  auction.OriginalDebt,
			"highest_bid":    auction.HighestBid,
			"highest_bidder": auction.HighestBidder,
			"end_time":       auction.EndTime,
			"version":        auction.Version,
		}).Error
}
