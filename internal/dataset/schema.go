// Package dataset declares the seven tabular sources of the e-commerce
// dataset, loads them into memoized typed tables, and derives the joined
// views the aggregation pipeline consumes.
package dataset

import (
	"github.com/shoplytics/shoplytics/internal/io"
)

// Source names.
const (
	SourceOrders      = "orders"
	SourceOrderItems  = "order_items"
	SourcePayments    = "payments"
	SourceCustomers   = "customers"
	SourceSellers     = "sellers"
	SourceGeolocation = "geolocation"
	SourceProducts    = "products"
)

// Column names shared between the loader, join engine and pipeline.
const (
	ColOrderID           = "order_id"
	ColOrderStatus       = "order_status"
	ColEstimatedDelivery = "order_estimated_delivery_date"
	ColDeliveredDate     = "order_delivered_customer_date"
	ColOrderItemID       = "order_item_id"
	ColPaymentType       = "payment_type"
	ColCustomerID        = "customer_id"
	ColCustomerZip       = "customer_zip_code_prefix"
	ColCustomerCity      = "customer_city"
	ColSellerID          = "seller_id"
	ColSellerZip         = "seller_zip_code_prefix"
	ColGeoZip            = "geolocation_zip_code_prefix"
	ColGeoLat            = "geolocation_lat"
	ColGeoLng            = "geolocation_lng"
	ColProductID         = "product_id"
)

// StatusDelivered is the order status the late-delivery analysis keys on.
const StatusDelivered = "delivered"

// schemas holds the required-column contract per source. Zip-code prefixes
// and identifiers load as strings; dates load as nullable timestamps.
var schemas = map[string]io.Schema{
	SourceOrders: {
		Source: SourceOrders,
		Columns: []io.ColumnSpec{
			{Name: ColOrderID, Kind: io.KindString},
			{Name: ColOrderStatus, Kind: io.KindString},
			{Name: ColEstimatedDelivery, Kind: io.KindTimestamp},
			{Name: ColDeliveredDate, Kind: io.KindTimestamp},
		},
	},
	SourceOrderItems: {
		Source: SourceOrderItems,
		Columns: []io.ColumnSpec{
			{Name: ColOrderID, Kind: io.KindString},
			{Name: ColOrderItemID, Kind: io.KindInt64},
		},
	},
	SourcePayments: {
		Source: SourcePayments,
		Columns: []io.ColumnSpec{
			{Name: ColOrderID, Kind: io.KindString},
			{Name: ColPaymentType, Kind: io.KindString},
		},
	},
	SourceCustomers: {
		Source: SourceCustomers,
		Columns: []io.ColumnSpec{
			{Name: ColCustomerID, Kind: io.KindString},
			{Name: ColCustomerZip, Kind: io.KindString},
			{Name: ColCustomerCity, Kind: io.KindString},
		},
	},
	SourceSellers: {
		Source: SourceSellers,
		Columns: []io.ColumnSpec{
			{Name: ColSellerID, Kind: io.KindString},
			{Name: ColSellerZip, Kind: io.KindString},
		},
	},
	SourceGeolocation: {
		Source: SourceGeolocation,
		Columns: []io.ColumnSpec{
			{Name: ColGeoZip, Kind: io.KindString},
			{Name: ColGeoLat, Kind: io.KindFloat64},
			{Name: ColGeoLng, Kind: io.KindFloat64},
		},
	},
	// Products is loaded but not consumed by any aggregation; it stays part
	// of the loader contract for collaborators.
	SourceProducts: {
		Source: SourceProducts,
		Columns: []io.ColumnSpec{
			{Name: ColProductID, Kind: io.KindString},
		},
	},
}

// Sources returns all source names in a stable order.
func Sources() []string {
	return []string{
		SourceCustomers,
		SourceGeolocation,
		SourceOrders,
		SourceOrderItems,
		SourcePayments,
		SourceProducts,
		SourceSellers,
	}
}

// DefaultFileNames maps each source to its conventional file name.
func DefaultFileNames() map[string]string {
	return map[string]string{
		SourceCustomers:   "customer_dataset.csv",
		SourceGeolocation: "geolocation_dataset.csv",
		SourceOrders:      "order_dataset.csv",
		SourceOrderItems:  "order_items_dataset.csv",
		SourcePayments:    "order_payments_dataset.csv",
		SourceProducts:    "product_dataset.csv",
		SourceSellers:     "seller_dataset.csv",
	}
}
