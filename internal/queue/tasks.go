package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskOrderReceipt asks a worker to issue the receipt of a placed order.
const TaskOrderReceipt = "order:receipt"

// OrderReceiptPayload is the body of a TaskOrderReceipt task.
type OrderReceiptPayload struct {
	OrderID int64 `json:"orderId"`
}

// NewOrderReceiptTask encodes a receipt task.
func NewOrderReceiptTask(payload OrderReceiptPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderReceipt, body), nil
}

// ParseOrderReceipt decodes the body of a receipt task.
func ParseOrderReceipt(task *asynq.Task) (OrderReceiptPayload, error) {
	var payload OrderReceiptPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
