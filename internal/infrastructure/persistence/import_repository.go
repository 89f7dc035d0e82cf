package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/backend/internal/domain/catalog"
)

// GormImportRepository implements catalog.ImportRepository using GORM.
// The whole replacement runs in a single transaction: either the shop's
// catalog reflects the new document completely, or nothing changes.
type GormImportRepository struct {
	db *gorm.DB
}

// NewGormImportRepository creates a new GormImportRepository
func NewGormImportRepository(db *gorm.DB) *GormImportRepository {
	return &GormImportRepository{db: db}
}

// ReplaceShopCatalog upserts the shop and categories, purges the shop's
// existing listings and inserts the new ones from the document.
func (r *GormImportRepository) ReplaceShopCatalog(ctx context.Context, ownerUserID uuid.UUID, doc *catalog.PriceList) (*catalog.ImportStats, error) {
	stats := &catalog.ImportStats{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shop, err := r.upsertShop(tx, ownerUserID, doc.Shop)
		if err != nil {
			return err
		}
		stats.ShopID = shop.ID

		categoryByExternalID := make(map[int]*catalog.Category, len(doc.Categories))
		for _, entry := range doc.Categories {
			cat, created, err := r.upsertCategory(tx, entry, shop)
			if err != nil {
				return err
			}
			if created {
				stats.CategoriesCreated++
			}
			categoryByExternalID[entry.ID] = cat
		}

		// Listings are replaced wholesale, parameter values first.
		if err := tx.Where(
			"product_info_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).
				Model(&catalog.ProductInfo{}).
				Select("id").
				Where("shop_id = ?", shop.ID),
		).Delete(&catalog.ProductParameter{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shop_id = ?", shop.ID).
			Delete(&catalog.ProductInfo{}).Error; err != nil {
			return err
		}

		for _, good := range doc.Goods {
			cat := categoryByExternalID[good.Category]

			product, created, err := r.getOrCreateProduct(tx, good.Name, cat.ID)
			if err != nil {
				return err
			}
			if created {
				stats.ProductsCreated++
			}

			listing, err := catalog.NewProductInfo(
				product.ID, shop.ID, good.ID, good.Model,
				good.Price, good.PriceRRC, good.Quantity,
			)
			if err != nil {
				return err
			}

			for name, value := range good.Parameters {
				param, err := r.getOrCreateParameter(tx, name)
				if err != nil {
					return err
				}
				if err := listing.AddParameter(param.ID, value); err != nil {
					return err
				}
			}

			if err := tx.Create(listing).Error; err != nil {
				return err
			}
			stats.ListingsCreated++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *GormImportRepository) upsertShop(tx *gorm.DB, ownerUserID uuid.UUID, name string) (*catalog.Shop, error) {
	var shop catalog.Shop
	err := tx.Where("user_id = ?", ownerUserID).First(&shop).Error
	if err == nil {
		if shop.Name != name {
			shop.Name = name
			if err := tx.Save(&shop).Error; err != nil {
				return nil, err
			}
		}
		return &shop, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh, err := catalog.NewShop(name, ownerUserID)
	if err != nil {
		return nil, err
	}
	if err := tx.Create(fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}

func (r *GormImportRepository) upsertCategory(tx *gorm.DB, entry catalog.PriceListCategory, shop *catalog.Shop) (*catalog.Category, bool, error) {
	var cat catalog.Category
	created := false

	err := tx.Where("external_id = ?", entry.ID).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fresh, derr := catalog.NewCategory(entry.ID, entry.Name)
		if derr != nil {
			return nil, false, derr
		}
		if cerr := tx.Create(fresh).Error; cerr != nil {
			return nil, false, cerr
		}
		cat = *fresh
		created = true
	} else if err != nil {
		return nil, false, err
	} else if cat.Name != entry.Name {
		cat.Name = entry.Name
		if uerr := tx.Save(&cat).Error; uerr != nil {
			return nil, false, uerr
		}
	}

	// Link the category to the supplying shop; duplicate links are no-ops.
	if err := tx.Model(&cat).Association("Shops").Append(shop); err != nil {
		return nil, false, err
	}

	return &cat, created, nil
}

func (r *GormImportRepository) getOrCreateProduct(tx *gorm.DB, name string, categoryID uuid.UUID) (*catalog.Product, bool, error) {
	var product catalog.Product
	err := tx.Where("name = ? AND category_id = ?", name, categoryID).First(&product).Error
	if err == nil {
		return &product, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	fresh, err := catalog.NewProduct(name, categoryID)
	if err != nil {
		return nil, false, err
	}
	if err := tx.Create(fresh).Error; err != nil {
		return nil, false, err
	}
	return fresh, true, nil
}

func (r *GormImportRepository) getOrCreateParameter(tx *gorm.DB, name string) (*catalog.Parameter, error) {
	var param catalog.Parameter
	err := tx.Where("name = ?", name).First(&param).Error
	if err == nil {
		return &param, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh, err := catalog.NewParameter(name)
	if err != nil {
		return nil, err
	}
	if err := tx.Create(fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}

var _ catalog.ImportRepository = (*GormImportRepository)(nil)
