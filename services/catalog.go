package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/econursery/nursery-app/models"
)

// lookupCatalogItem resolves a tagged catalog reference through one query
// path, whichever table it points at.
func lookupCatalogItem(tx *gorm.DB, ref models.CatalogRef) (*models.CatalogInfo, error) {
	if !ref.Kind.Valid() {
		return nil, ErrNotFound
	}

	var info models.CatalogInfo
	err := tx.Table(ref.Kind.TableName()).
		Select("id, name, price, stock").
		Where("id = ?", ref.ID).
		Take(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageError(err)
	}
	return &info, nil
}

// deductStock performs the atomic conditional decrement that makes checkout
// safe under concurrent requests: the WHERE clause rejects the update when
// stock would go negative, and zero affected rows aborts the transaction.
func deductStock(tx *gorm.DB, ref models.CatalogRef, qty int, itemName string) error {
	res := tx.Table(ref.Kind.TableName()).
		Where("id = ? AND stock >= ?", ref.ID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return storageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return &InsufficientStockError{ItemName: itemName}
	}
	return nil
}

// restoreStock puts quantity back after a cancellation. A vanished catalog
// row is not an error; the stock simply has nowhere to go.
func restoreStock(tx *gorm.DB, ref models.CatalogRef, qty int) error {
	res := tx.Table(ref.Kind.TableName()).
		Where("id = ?", ref.ID).
		Update("stock", gorm.Expr("stock + ?", qty))
	if res.Error != nil {
		return storageError(res.Error)
	}
	return nil
}
