package datatypes

import "encoding/json"

// Reference is a bare {"id": n} object reference used inside order payloads.
type Reference struct {
	ID int `json:"id"`
}

// ProductItem is a catalog entry from SoftLayer_Product_Package::getItems.
type ProductItem struct {
	ID          *int               `json:"id,omitempty"`
	Description *string            `json:"description,omitempty"`
	Prices      []ProductItemPrice `json:"prices,omitempty"`
}

// ProductItemPrice is one price on a catalog item. Ordering uses the first
// price of the first matching item.
type ProductItemPrice struct {
	ID *int `json:"id,omitempty"`
}

// FirewallOrder is the product-order container for standard and dedicated
// firewalls. The complexType strings and attachment keys are an API
// contract; do not reword them.
type FirewallOrder struct {
	ComplexType string `json:"complexType"`
	Quantity    int    `json:"quantity"`
	PackageID   int    `json:"packageId"`

	VirtualGuests []Reference `json:"virtualGuests,omitempty"`
	Hardware      []Reference `json:"hardware,omitempty"`
	VlanID        *int        `json:"vlanId,omitempty"`

	Prices []Reference `json:"prices"`
}

// Order container complexType tags.
const (
	OrderTypeFirewall          = "SoftLayer_Container_Product_Order_Network_Protection_Firewall"
	OrderTypeFirewallDedicated = "SoftLayer_Container_Product_Order_Network_Protection_Firewall_Dedicated"
)

// OrderReceipt is the result of SoftLayer_Product_Order::placeOrder. The
// full placed-order document is kept raw; callers mostly care about the id.
type OrderReceipt struct {
	OrderID     *int            `json:"orderId,omitempty"`
	OrderDate   *string         `json:"orderDate,omitempty"`
	PlacedOrder json.RawMessage `json:"placedOrder,omitempty"`
}

// BillingItem is the chargeable unit backing a service instance.
type BillingItem struct {
	ID           *int    `json:"id,omitempty"`
	CategoryCode *string `json:"categoryCode,omitempty"`

	ActiveChildren []BillingItem `json:"activeChildren,omitempty"`
}
