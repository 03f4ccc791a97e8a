package dataset

import (
	"github.com/shoplytics/shoplytics/internal/table"
)

// Snapshot is an immutable view of the full dataset: the seven source tables
// plus the derived joins the dashboard views consume. It is constructed
// explicitly and passed to the pipeline; nothing here is a process-wide
// global.
type Snapshot struct {
	Orders      *table.Table
	OrderItems  *table.Table
	Payments    *table.Table
	Customers   *table.Table
	Sellers     *table.Table
	Geolocation *table.Table
	Products    *table.Table

	// OrderItemRows is orders joined with order_items on order_id; one row
	// per (order, item) pair.
	OrderItemRows *table.Table
	// CustomerGeo and SellerGeo join each party with geolocation on the
	// zip-code prefix. Prefixes are not unique in geolocation, so these are
	// fan-out joins and the row counts legitimately exceed the inputs.
	CustomerGeo *table.Table
	SellerGeo   *table.Table
}

// NewSnapshot loads every source through the loader and precomputes the
// derived joins.
func NewSnapshot(loader *Loader) (*Snapshot, error) {
	snap := &Snapshot{}

	var err error
	if snap.Orders, err = loader.Load(SourceOrders); err != nil {
		return nil, err
	}
	if snap.OrderItems, err = loader.Load(SourceOrderItems); err != nil {
		return nil, err
	}
	if snap.Payments, err = loader.Load(SourcePayments); err != nil {
		return nil, err
	}
	if snap.Customers, err = loader.Load(SourceCustomers); err != nil {
		return nil, err
	}
	if snap.Sellers, err = loader.Load(SourceSellers); err != nil {
		return nil, err
	}
	if snap.Geolocation, err = loader.Load(SourceGeolocation); err != nil {
		return nil, err
	}
	if snap.Products, err = loader.Load(SourceProducts); err != nil {
		return nil, err
	}

	if snap.OrderItemRows, err = OrdersWithItems(snap.Orders, snap.OrderItems); err != nil {
		return nil, err
	}
	if snap.CustomerGeo, err = CustomersWithGeo(snap.Customers, snap.Geolocation); err != nil {
		return nil, err
	}
	if snap.SellerGeo, err = SellersWithGeo(snap.Sellers, snap.Geolocation); err != nil {
		return nil, err
	}

	return snap, nil
}

// OrdersWithItems inner-joins orders with order items on the order
// identifier. Orders without items and items without a matching order drop.
func OrdersWithItems(orders, items *table.Table) (*table.Table, error) {
	return table.InnerJoin(orders, items, ColOrderID, ColOrderID)
}

// CustomersWithGeo inner-joins customers with geolocation points on the
// zip-code prefix. The result is a multiset, not deduplicated; downstream
// exact-coordinate grouping absorbs the duplicates.
func CustomersWithGeo(customers, geo *table.Table) (*table.Table, error) {
	return table.InnerJoin(customers, geo, ColCustomerZip, ColGeoZip)
}

// SellersWithGeo inner-joins sellers with geolocation points on the zip-code
// prefix, with the same multiset semantics as CustomersWithGeo.
func SellersWithGeo(sellers, geo *table.Table) (*table.Table, error) {
	return table.InnerJoin(sellers, geo, ColSellerZip, ColGeoZip)
}
