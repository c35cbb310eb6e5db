package models

import "time"

// Order is the immutable snapshot captured at checkout. Only the status,
// tracking fields and the one-time stock flag change after creation.
type Order struct {
	OrderID             string              `json:"orderId" bson:"orderId"`
	OrderPaymentID      string              `json:"orderPaymentId" bson:"orderPaymentId"`
	OrderPaymentGateway string              `json:"orderPaymentGateway" bson:"orderPaymentGateway"`
	OrderPaymentMessage string              `json:"orderPaymentMessage" bson:"orderPaymentMessage"`
	OrderTotal          float64             `json:"orderTotal" bson:"orderTotal"`
	OrderShipping       float64             `json:"orderShipping" bson:"orderShipping"`
	OrderItemCount      int                 `json:"orderItemCount" bson:"orderItemCount"`
	OrderProductCount   int                 `json:"orderProductCount" bson:"orderProductCount"`
	OrderCustomer       string              `json:"orderCustomer" bson:"orderCustomer"`
	OrderEmail          string              `json:"orderEmail" bson:"orderEmail"`
	OrderCompany        string              `json:"orderCompany" bson:"orderCompany"`
	OrderFirstname      string              `json:"orderFirstname" bson:"orderFirstname"`
	OrderLastname       string              `json:"orderLastname" bson:"orderLastname"`
	OrderAddr1          string              `json:"orderAddr1" bson:"orderAddr1"`
	OrderAddr2          string              `json:"orderAddr2" bson:"orderAddr2"`
	OrderCountry        string              `json:"orderCountry" bson:"orderCountry"`
	OrderState          string              `json:"orderState" bson:"orderState"`
	OrderPostcode       string              `json:"orderPostcode" bson:"orderPostcode"`
	OrderPhoneNumber    string              `json:"orderPhoneNumber" bson:"orderPhoneNumber"`
	OrderComment        string              `json:"orderComment" bson:"orderComment"`
	OrderStatus         string              `json:"orderStatus" bson:"orderStatus"`
	OrderTrackingNumber string              `json:"orderTrackingNumber,omitempty" bson:"orderTrackingNumber,omitempty"`
	TrackingCompany     string              `json:"trackingCompany,omitempty" bson:"trackingCompany,omitempty"`
	TrackingURL         string              `json:"trackingURL,omitempty" bson:"trackingURL,omitempty"`
	OrderDate           time.Time           `json:"orderDate" bson:"orderDate"`
	OrderProducts       map[string]CartLine `json:"orderProducts" bson:"orderProducts"`
	OrderType           string              `json:"orderType" bson:"orderType"`

	// Set once when stock is decremented on payment confirmation so a
	// repeated view of the payment page cannot double-decrement.
	ProductStockUpdated bool `json:"productStockUpdated" bson:"productStockUpdated"`
}

// Order statuses written by the core. Free-form strings on the wire.
const (
	OrderStatusPending   = "Pending"
	OrderStatusPaid      = "Paid"
	OrderStatusShipped   = "Shipped"
	OrderStatusCancelled = "Cancelled"
)
