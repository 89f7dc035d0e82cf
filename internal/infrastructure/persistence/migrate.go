package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/orderhub/backend/internal/domain/bulk"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/partner"
	"github.com/orderhub/backend/internal/domain/trade"
)

// Migrate creates or updates the database schema for all domain models.
func Migrate(db *gorm.DB) error {
	models := []any{
		&identity.User{},
		&identity.ConfirmEmailToken{},
		&identity.PasswordResetToken{},
		&catalog.Shop{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.Parameter{},
		&catalog.ProductInfo{},
		&catalog.ProductParameter{},
		&partner.Contact{},
		&trade.Order{},
		&trade.OrderItem{},
		&bulk.ImportHistory{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	// A user may hold at most one open basket. Enforced with a partial
	// unique index, which AutoMigrate cannot express.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_basket_per_user
		 ON orders (user_id) WHERE status = 'basket'`,
	).Error; err != nil {
		return fmt.Errorf("failed to create basket uniqueness index: %w", err)
	}

	return nil
}
