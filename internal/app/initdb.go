package app

import (
	"context"
	_ "embed"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/bistrostack/gastropanel/internal/domain"
)

//go:embed seed.json
var seedData []byte

type catalogSeed struct {
	Categories []domain.Category `json:"categories"`
	Products   []domain.Product  `json:"products"`
	MenuItems  []domain.MenuItem `json:"menuItems"`
}

// checkCatalog loads the starter catalog on first boot. Every entry is
// upserted by name, so running it against a populated database changes
// nothing and never produces duplicates.
func (a *Application) checkCatalog(ctx context.Context) {
	if n, err := a.store.CountProducts(ctx); err != nil {
		zap.L().Error("catalog seed check skipped", zap.Error(err))
		return
	} else if n > 0 {
		return
	}

	var seed catalogSeed
	if err := json.Unmarshal(seedData, &seed); err != nil {
		zap.L().Error("failed to parse embedded seed data", zap.Error(err))
		return
	}

	for i := range seed.Categories {
		if err := a.store.UpsertCategoryByName(ctx, &seed.Categories[i]); err != nil {
			zap.L().Error("failed to seed category",
				zap.String("name", seed.Categories[i].Name), zap.Error(err))
		}
	}
	for i := range seed.Products {
		if err := a.store.UpsertProductByName(ctx, &seed.Products[i]); err != nil {
			zap.L().Error("failed to seed product",
				zap.String("name", seed.Products[i].Name), zap.Error(err))
		}
	}
	for i := range seed.MenuItems {
		if err := a.store.UpsertMenuItemByName(ctx, &seed.MenuItems[i]); err != nil {
			zap.L().Error("failed to seed menu item",
				zap.String("name", seed.MenuItems[i].Name), zap.Error(err))
		}
	}

	zap.L().Info("catalog seed check complete",
		zap.Int("categories", len(seed.Categories)),
		zap.Int("products", len(seed.Products)),
		zap.Int("menuItems", len(seed.MenuItems)))
}
