package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
	"github.com/pioneercards/storefront/internal/domains/checkout/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists carts and orders in PostgreSQL using GORM-mapped
// columns. Per-entity write serialization comes from the database itself.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB
// lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&cartRecord{}, &itemRecord{}, &customerRecord{}, &addressRecord{}, &orderRecord{}); err != nil {
			log.Printf("postgres repository migration failed: %v", err)
		}
	}
	return repo
}

type cartRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	PersonID  *string   `gorm:"column:person_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartRecord) TableName() string { return "carts" }

type itemRecord struct {
	CartID   string          `gorm:"primaryKey;column:cart_id;size:64"`
	ID       int64           `gorm:"primaryKey;column:id;autoIncrement:false"`
	Position int             `gorm:"column:position"`
	Name     string          `gorm:"column:name"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity int             `gorm:"column:quantity"`
}

func (itemRecord) TableName() string { return "cart_items" }

type customerRecord struct {
	ID        int64  `gorm:"primaryKey;column:id"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
	Email     string `gorm:"column:email"`
}

func (customerRecord) TableName() string { return "customers" }

type addressRecord struct {
	ID           int64  `gorm:"primaryKey;column:id"`
	AddressLine1 string `gorm:"column:address_line1"`
	AddressLine2 string `gorm:"column:address_line2"`
	City         string `gorm:"column:city"`
	State        string `gorm:"column:state"`
	ZipCode      string `gorm:"column:zip_code"`
	Country      string `gorm:"column:country"`
}

func (addressRecord) TableName() string { return "addresses" }

type orderRecord struct {
	ID               int64           `gorm:"primaryKey;column:id"`
	CartID           string          `gorm:"column:cart_id;size:64;index"`
	CustomerID       *int64          `gorm:"column:customer_id"`
	AddressID        *int64          `gorm:"column:address_id"`
	OrderDate        time.Time       `gorm:"column:order_date"`
	ConfirmationSent bool            `gorm:"column:confirmation_sent"`
	ShipMethod       string          `gorm:"column:ship_method"`
	OrderNotes       *string         `gorm:"column:order_notes"`
	Subtotal         decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2)"`
	Tax              decimal.Decimal `gorm:"column:tax;type:numeric(12,2)"`
	Total            decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "card_orders" }

// SaveCart upserts the cart row and rewrites its item rows in one
// transaction, preserving item order through the position column.
func (r *Repository) SaveCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if cart == nil || cart.ID == "" {
		return nil, errors.New("cart id is required")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := cartRecord{ID: cart.ID, PersonID: cart.PersonID}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"person_id":  record.PersonID,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&itemRecord{}).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return nil
		}
		items := make([]itemRecord, 0, len(cart.Items))
		for position, item := range cart.Items {
			items = append(items, itemRecord{
				CartID:   cart.ID,
				ID:       item.ID,
				Position: position,
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetCart(ctx, cart.ID)
}

// GetCart fetches a cart with its items in stored order.
func (r *Repository) GetCart(ctx context.Context, id string) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	items, err := r.loadItems(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return toCart(record, items[id]), nil
}

// RemoveCart deletes the cart and its items. A missing id is ErrNotFound.
func (r *Repository) RemoveCart(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&itemRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&cartRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

// FindCartsWithoutOrders runs the set difference store-side: one query with a
// NOT IN subselect over the order table, ordered by cart id.
func (r *Repository) FindCartsWithoutOrders(ctx context.Context) ([]*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	sub := r.db.Model(&orderRecord{}).Select("cart_id")
	var records []cartRecord
	if err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", sub).
		Order("id asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	carts := make([]*domain.Cart, 0, len(records))
	for _, record := range records {
		carts = append(carts, toCart(record, items[record.ID]))
	}
	return carts, nil
}

// SaveOrder persists the order with its customer and address rows. The cart
// reference was already resolved by the service layer; only its id lands in
// the order row.
func (r *Repository) SaveOrder(ctx context.Context, order *domain.CardOrder) (*domain.CardOrder, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil || order.Cart == nil || order.Cart.ID == "" {
		return nil, ports.ErrMissingCart
	}
	saved := order.Clone()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := orderRecord{
			ID:               saved.ID,
			CartID:           saved.Cart.ID,
			OrderDate:        saved.OrderDate,
			ConfirmationSent: saved.ConfirmationSent,
			ShipMethod:       saved.ShipMethod,
			OrderNotes:       saved.OrderNotes,
			Subtotal:         saved.Subtotal,
			Tax:              saved.Tax,
			Total:            saved.Total,
		}
		if saved.Customer != nil {
			customer := customerRecord{
				ID:        saved.Customer.ID,
				FirstName: saved.Customer.FirstName,
				LastName:  saved.Customer.LastName,
				Email:     saved.Customer.Email,
			}
			if err := tx.Save(&customer).Error; err != nil {
				return err
			}
			saved.Customer.ID = customer.ID
			record.CustomerID = &customer.ID
		}
		if saved.ShippingAddress != nil {
			address := addressRecord{
				ID:           saved.ShippingAddress.ID,
				AddressLine1: saved.ShippingAddress.AddressLine1,
				AddressLine2: saved.ShippingAddress.AddressLine2,
				City:         saved.ShippingAddress.City,
				State:        saved.ShippingAddress.State,
				ZipCode:      saved.ShippingAddress.ZipCode,
				Country:      saved.ShippingAddress.Country,
			}
			if err := tx.Save(&address).Error; err != nil {
				return err
			}
			saved.ShippingAddress.ID = address.ID
			record.AddressID = &address.ID
		}
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		saved.ID = record.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetOrder returns (nil, nil) when the order does not exist.
func (r *Repository) GetOrder(ctx context.Context, id int64) (*domain.CardOrder, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	order := &domain.CardOrder{
		ID:               record.ID,
		OrderDate:        record.OrderDate,
		ConfirmationSent: record.ConfirmationSent,
		ShipMethod:       record.ShipMethod,
		OrderNotes:       record.OrderNotes,
		Subtotal:         record.Subtotal,
		Tax:              record.Tax,
		Total:            record.Total,
	}
	if record.CustomerID != nil {
		var customer customerRecord
		if err := r.db.WithContext(ctx).First(&customer, "id = ?", *record.CustomerID).Error; err == nil {
			order.Customer = &domain.Customer{
				ID:        customer.ID,
				FirstName: customer.FirstName,
				LastName:  customer.LastName,
				Email:     customer.Email,
			}
		}
	}
	if record.AddressID != nil {
		var address addressRecord
		if err := r.db.WithContext(ctx).First(&address, "id = ?", *record.AddressID).Error; err == nil {
			order.ShippingAddress = &domain.Address{
				ID:           address.ID,
				AddressLine1: address.AddressLine1,
				AddressLine2: address.AddressLine2,
				City:         address.City,
				State:        address.State,
				ZipCode:      address.ZipCode,
				Country:      address.Country,
			}
		}
	}
	cart, err := r.GetCart(ctx, record.CartID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	order.Cart = cart
	return order, nil
}

func (r *Repository) loadItems(ctx context.Context, cartIDs []string) (map[string][]domain.Item, error) {
	grouped := make(map[string][]domain.Item, len(cartIDs))
	if len(cartIDs) == 0 {
		return grouped, nil
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).
		Where("cart_id IN ?", cartIDs).
		Order("cart_id, position").
		Find(&records).Error; err != nil {
		return nil, err
	}
	for _, record := range records {
		grouped[record.CartID] = append(grouped[record.CartID], domain.Item{
			ID:       record.ID,
			Name:     record.Name,
			Price:    record.Price,
			Quantity: record.Quantity,
		})
	}
	return grouped, nil
}

func toCart(record cartRecord, items []domain.Item) *domain.Cart {
	cart := &domain.Cart{ID: record.ID, PersonID: record.PersonID}
	if record.PersonID != nil {
		person := *record.PersonID
		cart.PersonID = &person
	}
	cart.Items = items
	return cart
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
