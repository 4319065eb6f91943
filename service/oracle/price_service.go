package oracle

import (
	"context"
	"fmt"
	"time"

	"rwalend/core"
	"rwalend/pkg/number"
	"rwalend/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// PriceService oracle price service
type PriceService struct {
	cfg        *core.Config
	priceStore core.IPriceStore
}

// New new oracle price service
func New(cfg *core.Config, priceStore core.IPriceStore) core.IPriceOracleService {
	return &PriceService{
		cfg:        cfg,
		priceStore: priceStore,
	}
}

// GetPrice current valuation of the collateral item
func (s *PriceService) GetPrice(ctx context.Context, itemID string) (decimal.Decimal, error) {
	price, err := s.priceStore.Find(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}

	if price.ID == 0 || !price.Price.IsPositive() {
		return decimal.Zero, core.ErrPriceNotAvailable
	}

	return price.Price, nil
}

// IsPriceSet whether a positive valuation exists for the item
func (s *PriceService) IsPriceSet(ctx context.Context, itemID string) (bool, error) {
	price, err := s.priceStore.Find(ctx, itemID)
	if err != nil {
		return false, err
	}

	return price.ID > 0 && price.Price.IsPositive(), nil
}

// SetPrice write a valuation, admin gated
func (s *PriceService) SetPrice(ctx context.Context, caller, itemID string, value decimal.Decimal) error {
	if !s.cfg.IsAdmin(caller) {
		return core.ErrUnauthorized
	}

	if !number.IsAmount(value) {
		return core.ErrInvalidAmount
	}

	logger.FromContext(ctx).
		WithField("service", "oracle").
		Infof("set price of %s to %s", itemID, value)

	price := &core.Price{
		ItemID:  itemID,
		Price:   value,
		Content: types.JSONText(fmt.Sprintf(`{"source":"admin","updated_by":%q}`, caller)),
	}
	return s.priceStore.Save(ctx, price)
}

// PullPriceTicker pull an appraisal from the price feed
func (s *PriceService) PullPriceTicker(ctx context.Context, itemID string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/appraisals/%s?ts=%d", s.cfg.Oracle.EndPoint, itemID, t.UTC().Unix())
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	return &ticker, nil
}
