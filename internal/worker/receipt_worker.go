package worker

import (
	"github.com/spec-kit/cafe-pos/internal/service"
)

// StartReceiptWorker registers receipt and shift-audit handlers.
func StartReceiptWorker(receiptService *service.ReceiptService) {
	if receiptService == nil {
		return
	}
	receiptService.RegisterHandlers()
}
