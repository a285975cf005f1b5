package commands

import (
	"context"

	"shipping/internal/core/application/quoting"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// Quote cache interfaces used by command handlers. The concrete
// implementation lives in the quoting package; commands only need the
// narrow slices below.
type (
	// QuoteInvalidator drops cached rate quotes for a shipment. Called after
	// any physical edit, since cached rates no longer describe the parcel.
	QuoteInvalidator interface {
		Invalidate(shipmentID kernel.UUID)
	}

	// QuoteSource serves rate quotes for a shipment, cached or fresh.
	QuoteSource interface {
		GetQuotes(
			ctx context.Context,
			shipmentID kernel.UUID,
			shipFrom, destination kernel.Address,
			parcel ports.ParcelSpec,
			forceRefresh bool,
		) (quoting.Result, error)
		Peek(shipmentID kernel.UUID) (quoting.Result, bool)
		Invalidate(shipmentID kernel.UUID)
	}
)
