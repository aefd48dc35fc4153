package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/econursery/nursery-app/models"
	"github.com/econursery/nursery-app/services"
)

func TestAddItemRejectsQuantityBeyondStock(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "shopper", models.RoleUser)
	plant := createPlant(t, db, "Mint (Pudina)", 80.00, 3)

	carts := services.NewCartService(db)

	_, err := carts.AddItem(user.ID, plantRef(plant.ID), 5)
	assert.ErrorIs(t, err, services.ErrOutOfStock)

	n, err := carts.Count(user.ID)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "merger", models.RoleUser)
	plant := createPlant(t, db, "Coriander (Dhania)", 50.00, 4)

	carts := services.NewCartService(db)

	_, err := carts.AddItem(user.ID, plantRef(plant.ID), 2)
	assert.NoError(t, err)
	line, err := carts.AddItem(user.ID, plantRef(plant.ID), 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, line.Quantity)

	n, err := carts.Count(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// The cumulative quantity is what gets checked against stock.
	_, err = carts.AddItem(user.ID, plantRef(plant.ID), 2)
	assert.ErrorIs(t, err, services.ErrOutOfStock)

	var reloaded models.CartItem
	assert.NoError(t, db.First(&reloaded, line.ID).Error)
	assert.Equal(t, 3, reloaded.Quantity)
}

func TestAddItemUnknownCatalogItem(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ghosthunter", models.RoleUser)

	carts := services.NewCartService(db)
	_, err := carts.AddItem(user.ID, plantRef(42), 1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpdateQuantity(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, "quantowner", models.RoleUser)
	other := createUser(t, db, "quantother", models.RoleUser)
	fertilizer := createIngredient(t, db, "Bone Meal Fertilizer (2kg)", 200.00, 6)

	carts := services.NewCartService(db)

	line, err := carts.AddItem(owner.ID, ingredientRef(fertilizer.ID), 2)
	assert.NoError(t, err)

	updated, err := carts.UpdateQuantity(owner.ID, line.ID, 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	_, err = carts.UpdateQuantity(owner.ID, line.ID, 7)
	assert.ErrorIs(t, err, services.ErrOutOfStock)

	_, err = carts.UpdateQuantity(other.ID, line.ID, 1)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = carts.UpdateQuantity(owner.ID, 9999, 1)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Carting never touches the shelf.
	assert.Equal(t, 6, ingredientStock(t, db, fertilizer.ID))
}

func TestRemoveLineOwnership(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, "remover", models.RoleUser)
	other := createUser(t, db, "intruder", models.RoleUser)
	plant := createPlant(t, db, "Papaya Plant", 150.00, 5)

	carts := services.NewCartService(db)

	line, err := carts.AddItem(owner.ID, plantRef(plant.ID), 1)
	assert.NoError(t, err)

	assert.ErrorIs(t, carts.RemoveLine(other.ID, line.ID), services.ErrUnauthorized)
	assert.NoError(t, carts.RemoveLine(owner.ID, line.ID))
	assert.ErrorIs(t, carts.RemoveLine(owner.ID, line.ID), services.ErrNotFound)
}

func TestSummaryTotals(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "summer", models.RoleUser)
	plant := createPlant(t, db, "Rose Plant (Desi Gulab)", 200.00, 10)
	soil := createIngredient(t, db, "Cocopeat Block (5kg)", 150.00, 20)

	carts := services.NewCartService(db)

	_, err := carts.AddItem(user.ID, plantRef(plant.ID), 2)
	assert.NoError(t, err)
	_, err = carts.AddItem(user.ID, ingredientRef(soil.ID), 3)
	assert.NoError(t, err)

	summary, err := carts.Summary(user.ID)
	assert.NoError(t, err)
	assert.Len(t, summary.Lines, 2)
	assert.InDelta(t, 850.00, summary.Subtotal, 0.001)
	assert.InDelta(t, 850.00*services.TaxRate, summary.Tax, 0.001)
	assert.InDelta(t, 850.00*1.18, summary.Total, 0.001)
}

func TestSummarySkipsDeletedCatalogItems(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "orphaned", models.RoleUser)
	plant := createPlant(t, db, "Bougainvillea", 220.00, 10)
	gone := createPlant(t, db, "Discontinued Fern", 99.00, 10)

	carts := services.NewCartService(db)

	_, err := carts.AddItem(user.ID, plantRef(plant.ID), 1)
	assert.NoError(t, err)
	_, err = carts.AddItem(user.ID, plantRef(gone.ID), 1)
	assert.NoError(t, err)

	assert.NoError(t, db.Delete(&models.Plant{}, gone.ID).Error)

	summary, err := carts.Summary(user.ID)
	assert.NoError(t, err)
	assert.Len(t, summary.Lines, 1)
	assert.InDelta(t, 220.00, summary.Subtotal, 0.001)
}
